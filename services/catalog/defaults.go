package catalog

import "barberbook/models"

// defaultServices seeds an empty catalog so a fresh deployment is bookable
// out of the box.
var defaultServices = []models.Service{
	{
		ID:          "1",
		Name:        "Haircut",
		Description: "Classic or modern cut with scissors and clippers. Wash included.",
		Price:       50.00,
		Duration:    45,
		Icon:        "content_cut",
	},
	{
		ID:          "2",
		Name:        "Beard & Mustache",
		Description: "Full shaping with hot towel and hydrating balm.",
		Price:       35.00,
		Duration:    30,
		Icon:        "face",
	},
	{
		ID:          "3",
		Name:        "Full Combo",
		Description: "Haircut + beard + eyebrows. The VIP treatment.",
		Price:       75.00,
		Duration:    75,
		Icon:        "diamond",
	},
	{
		ID:          "4",
		Name:        "Neckline Touch-up",
		Description: "Outline and neck cleanup only.",
		Price:       15.00,
		Duration:    15,
		Icon:        "straighten",
	},
}

// defaultBarbers seeds an empty roster.
var defaultBarbers = []models.Barber{
	{ID: "1", Name: `Carlos "The Fade"`, Rating: 4.9, Reviews: 124, Specialty: "Fade Master"},
	{ID: "2", Name: "André Santos", Rating: 4.8, Reviews: 98, Specialty: "Classic Cuts"},
	{ID: "3", Name: "Lucas Oliveira", Rating: 4.7, Reviews: 85, Specialty: "Beard Design"},
}

// defaultShopSettings are the working hours used until the admin saves
// their own.
var defaultShopSettings = models.ShopSettings{
	Open:       "09:00",
	Close:      "19:00",
	LunchStart: "12:00",
	LunchEnd:   "13:00",
}
