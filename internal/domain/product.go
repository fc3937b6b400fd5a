package domain

// Product mirrors the catalog entries served by the product API.
type Product struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	Price              float64  `json:"price"`
	Image              string   `json:"image"`
	Category           string   `json:"category"`
	Rating             float64  `json:"rating"`
	Features           []string `json:"features"`
	SystemRequirements []string `json:"systemRequirements"`
	IsFeatured         bool     `json:"isFeatured"`
}

// Summary trims a product down to the fields the cart stores.
func (p Product) Summary() ProductSummary {
	return ProductSummary{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Image:    p.Image,
		Category: p.Category,
	}
}
