package domain

// RawProduct is a single product entry exactly as delivered by the remote
// catalog source, before any identifier is attached.
type RawProduct struct {
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
	ImageUrl    string  `json:"imageUrl"`
}

// RawGroup is the remote JSON's top-level grouping unit.
type RawGroup struct {
	GroupName string       `json:"groupName"`
	Products  []RawProduct `json:"products"`
}

// Product is the flat, addressable catalog record derived from a RawProduct.
// ID is a deterministic function of (GroupName, ProductName); SearchString is
// the lowercase concatenation of both, regenerated on every normalization.
type Product struct {
	ID           string  `json:"id"`
	GroupName    string  `json:"groupName"`
	ProductName  string  `json:"productName"`
	Quantity     int     `json:"quantity"`
	Rate         float64 `json:"rate"`
	Amount       float64 `json:"amount"`
	ImageUrl     string  `json:"imageUrl"`
	SearchString string  `json:"searchString"`
}

// GroupSummary is a per-group rollup used by the catalog group listing.
type GroupSummary struct {
	GroupName    string `json:"groupName"`
	ProductCount int    `json:"productCount"`
}
