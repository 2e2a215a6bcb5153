package domain

// CartLine is one product in a session cart. Quantity is always >= 1.
type CartLine struct {
	ProductID string  `json:"product_id" bson:"product_id"`
	Name      string  `json:"name" bson:"name"`
	NameAm    string  `json:"name_am" bson:"name_am"`
	Price     float64 `json:"price" bson:"price"`
	ImageURL  string  `json:"image_url" bson:"image_url"`
	Quantity  int     `json:"quantity" bson:"quantity"`
}

func LineFromProduct(p Product) CartLine {
	return CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		NameAm:    p.NameAm,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
		Quantity:  1,
	}
}
