package models

// CartLine is one selected item in a cart. DisplayName and PriceCents are
// captured from the catalog when the line is created.
type CartLine struct {
	ItemID      string `json:"itemId"`
	DisplayName string `json:"displayName"`
	PriceCents  int64  `json:"priceCents"`
	Quantity    int    `json:"quantity"`
}

// LineTotalCents returns quantity * price.
func (l CartLine) LineTotalCents() int64 {
	return int64(l.Quantity) * l.PriceCents
}
