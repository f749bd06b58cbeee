package domain

import "time"

// Order records one exported cart snapshot. Orders live in the local store
// only; there is no server-side order processing.
type Order struct {
	ID        int64      `json:"id,string"`
	Customer  string     `json:"customer"`
	Place     string     `json:"place"`
	Items     []CartItem `json:"items"`
	Total     float64    `json:"total"`
	Channel   string     `json:"channel"` // "xlsx" or "whatsapp"
	CreatedAt time.Time  `json:"created_at"`
}
