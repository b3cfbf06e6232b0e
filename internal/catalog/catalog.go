// Package catalog holds the static product list. Nothing here is persisted
// or mutated; orders snapshot the name and price at creation time.
package catalog

type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	PriceSUI    float64 `json:"price_sui"`
	PricePHP    int     `json:"price_php"`
	Image       string  `json:"image"`
	Seller      string  `json:"seller"`
}

// Testnet-friendly prices (0.01-0.05 SUI).
var products = []Product{
	{
		ID:          "prod_1",
		Name:        "Fresh Mangoes (1kg)",
		Description: "Sweet Philippine mangoes from Guimaras",
		PriceSUI:    0.01,
		PricePHP:    50,
		Image:       "https://images.unsplash.com/photo-1553279768-865429fa0078?w=400",
		Seller:      "Juan's Farm",
	},
	{
		ID:          "prod_2",
		Name:        "Dried Fish Bundle",
		Description: "Assorted dried fish - Tuyo, Dilis, Danggit",
		PriceSUI:    0.02,
		PricePHP:    100,
		Image:       "https://images.unsplash.com/photo-1510130387422-82bed34b37e9?w=400",
		Seller:      "Visayan Seafoods",
	},
	{
		ID:          "prod_3",
		Name:        "Ube Halaya Jar",
		Description: "Homemade purple yam jam, 500g",
		PriceSUI:    0.03,
		PricePHP:    150,
		Image:       "https://images.unsplash.com/photo-1563805042-7684c019e1cb?w=400",
		Seller:      "Nanay's Kitchen",
	},
	{
		ID:          "prod_4",
		Name:        "Calamansi Juice (1L)",
		Description: "Fresh squeezed calamansi concentrate",
		PriceSUI:    0.02,
		PricePHP:    80,
		Image:       "https://images.unsplash.com/photo-1621506289937-a8e4df240d0b?w=400",
		Seller:      "Citrus Grove PH",
	},
	{
		ID:          "prod_5",
		Name:        "Pili Nuts (250g)",
		Description: "Roasted pili nuts from Bicol",
		PriceSUI:    0.05,
		PricePHP:    250,
		Image:       "https://images.unsplash.com/photo-1536816579748-4ecb3f03d72a?w=400",
		Seller:      "Bicol Delights",
	},
	{
		ID:          "prod_6",
		Name:        "Banana Chips Pack",
		Description: "Crispy banana chips, sweet & savory mix",
		PriceSUI:    0.01,
		PricePHP:    45,
		Image:       "https://images.unsplash.com/photo-1528825871115-3581a5387919?w=400",
		Seller:      "Davao Snacks",
	},
}

func List() []Product {
	out := make([]Product, len(products))
	copy(out, products)
	return out
}

func Find(id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
