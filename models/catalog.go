package models

// Service is a catalog entry for a bookable service.
type Service struct {
	ID          string  `bson:"id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	Description string  `bson:"description" json:"description"`
	Price       float64 `bson:"price" json:"price"`
	Duration    int     `bson:"duration" json:"duration"` // minutes
	Icon        string  `bson:"icon,omitempty" json:"icon,omitempty"`
}

// Barber is a roster entry for a bookable professional.
type Barber struct {
	ID        string  `bson:"id" json:"id"`
	Name      string  `bson:"name" json:"name"`
	Rating    float64 `bson:"rating" json:"rating"`
	Reviews   int     `bson:"reviews" json:"reviews"`
	Image     string  `bson:"image,omitempty" json:"image,omitempty"`
	Specialty string  `bson:"specialty,omitempty" json:"specialty,omitempty"`
}

// ShopSettings holds the shop's working-hours configuration, stored as a
// single document in the "settings" collection.
type ShopSettings struct {
	Open       string `bson:"open" json:"open"`
	Close      string `bson:"close" json:"close"`
	LunchStart string `bson:"lunch_start" json:"lunch_start"`
	LunchEnd   string `bson:"lunch_end" json:"lunch_end"`
}
