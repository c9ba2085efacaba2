package domain

// Product is a catalog listing. Quantity carries the buyer-selected amount
// on detail pages; catalog listings leave it at the seller-entered default.
type Product struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Quantity    int    `json:"quantity"`
	Color       string `json:"color"`
	Description string `json:"description"`
	ImageURL    string `json:"image"`
}

// LineItemOf converts a product into a cart line-item, capturing the
// quantity chosen at add time. The catalog id becomes the line-item's
// product reference, not its entry id.
func LineItemOf(p Product, quantity int) LineItem {
	return LineItem{
		ProductID:   p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Quantity:    quantity,
		Color:       p.Color,
		Description: p.Description,
		ImageURL:    p.ImageURL,
	}
}
