package models

import "time"

type Order struct {
	ID             int       `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	RestaurantName string    `db:"restaurant_name" json:"restaurant_name"`
	FoodOrderItems string    `db:"food_order_items" json:"food_order_items"`
	Phone          string    `db:"phone" json:"phone"`
	Address        string    `db:"address" json:"address"`
	LocationURL    string    `db:"location_url" json:"location_url"`
	TotalAmount    float64   `db:"total_amount" json:"total_amount"`
	OrderStatus    string    `db:"order_status" json:"order_status"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// PendingLogin holds the single live OTP for a phone number. A new request
// overwrites the row; successful verification deletes it.
type PendingLogin struct {
	Phone     string    `db:"phone" json:"phone"`
	OTP       string    `db:"otp" json:"otp"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
