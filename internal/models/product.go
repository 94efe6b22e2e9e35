package models

// Product is a catalog entry. ID is the only field clients use to address a
// product; the storage engines' own keys never leave the repository layer.
type Product struct {
	ID          int     `json:"id" bson:"id"`
	Name        string  `json:"name" bson:"name"`
	Price       float64 `json:"price" bson:"price"`
	Description string  `json:"description" bson:"description"`
	Image       string  `json:"image,omitempty" bson:"image,omitempty"`
	Category    string  `json:"category,omitempty" bson:"category,omitempty"`
	Brand       string  `json:"brand,omitempty" bson:"brand,omitempty"`
}
