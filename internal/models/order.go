package models

import "time"

// Order is a point-in-time copy of who rented what. Rows are never updated.
type Order struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint   `gorm:"column:user_id;not null;index" json:"userID"`
	UserFN string `gorm:"column:user_fn" json:"userFN"`
	UserLN string `gorm:"column:user_ln" json:"userLN"`

	ProductID    uint   `gorm:"column:product_id;not null;index" json:"productID"`
	ProductType  string `json:"productType"`
	ProductModel string `json:"productModel"`

	CreatedAt time.Time `json:"createdAt"`
}
