package models

import "time"

// Product is a rentable scooter.
type Product struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	ProductType  string  `json:"productType"`
	ProductModel string  `json:"productModel"`
	Lat          float64 `gorm:"column:current_location_lat" json:"currentLocationLat"`
	Long         float64 `gorm:"column:current_location_long" json:"currentLocationLong"`
	Battery      int     `gorm:"not null;default:100;check:battery >= 0 AND battery <= 100" json:"battery"`
	IsAvailable  bool    `gorm:"not null;default:true;index" json:"isAvailable"`
}

// NearbyProduct is a product as seen from a query point.
type NearbyProduct struct {
	ID       uint    `json:"id"`
	Model    string  `json:"model"`
	Battery  int     `json:"battery"`
	Distance float64 `json:"distance"`
}
