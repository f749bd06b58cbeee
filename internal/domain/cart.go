package domain

// CartItem is one exclusive selection in the user's cart. A product has at
// most one entry; the entry carries either a quantity tier (Sets > 0) or a
// free-text note, never a priced combination of both.
type CartItem struct {
	ProductId   string  `json:"productId"`
	ProductName string  `json:"productName"`
	GroupName   string  `json:"groupName"`
	Rate        float64 `json:"rate"`
	Sets        int     `json:"sets"`
	Note        string  `json:"note"`
	ImageUrl    string  `json:"imageUrl"`
}

// LineTotal returns the priced amount for the entry. Note-only selections
// have no priced quantity and total zero.
func (i CartItem) LineTotal() float64 {
	if i.Sets <= 0 {
		return 0
	}
	return float64(i.Sets) * i.Rate
}
