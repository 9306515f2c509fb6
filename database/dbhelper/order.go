package dbhelper

import (
	"database/sql"

	"github.com/konaseemakart/backend/database"
	"github.com/konaseemakart/backend/models"
)

const orderColumns = `id, name, restaurant_name, food_order_items, phone, address, location_url, total_amount, order_status, created_at`

// CreateOrder appends one order row and returns it with the generated id,
// default status and timestamp filled in.
func CreateOrder(o models.Order) (models.Order, error) {
	err := database.Kart.QueryRow(`
		INSERT INTO orders (name, restaurant_name, food_order_items, phone, address, location_url, total_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+orderColumns,
		o.Name, o.RestaurantName, o.FoodOrderItems, o.Phone, o.Address, o.LocationURL, o.TotalAmount).
		Scan(&o.ID, &o.Name, &o.RestaurantName, &o.FoodOrderItems, &o.Phone, &o.Address, &o.LocationURL, &o.TotalAmount, &o.OrderStatus, &o.CreatedAt)
	return o, err
}

// OrdersByPhone returns the phone's orders, most recent first.
func OrdersByPhone(phone string) ([]models.Order, error) {
	rows, err := database.Kart.Query(`SELECT `+orderColumns+` FROM orders WHERE phone = $1 ORDER BY created_at DESC`, phone)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

// OrdersByDate returns the calendar date's orders, oldest first. The ordering
// is deliberately the reverse of OrdersByPhone.
func OrdersByDate(date string) ([]models.Order, error) {
	rows, err := database.Kart.Query(`SELECT `+orderColumns+` FROM orders WHERE created_at::date = $1::date ORDER BY created_at ASC`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

// UpdateOrderStatus applies the status transition only if every field the
// caller supplied still matches the stored row. A stale view matches zero
// rows and is rejected as ErrOrderNotFound.
func UpdateOrderStatus(o models.Order, newStatus string) (models.Order, error) {
	var updated models.Order
	err := database.Kart.QueryRow(`
		UPDATE orders SET order_status = $10
		WHERE id = $1 AND name = $2 AND restaurant_name = $3 AND food_order_items = $4
		  AND phone = $5 AND address = $6 AND location_url = $7 AND total_amount = $8
		  AND order_status = $9
		RETURNING `+orderColumns,
		o.ID, o.Name, o.RestaurantName, o.FoodOrderItems, o.Phone, o.Address, o.LocationURL, o.TotalAmount, o.OrderStatus, newStatus).
		Scan(&updated.ID, &updated.Name, &updated.RestaurantName, &updated.FoodOrderItems, &updated.Phone, &updated.Address, &updated.LocationURL, &updated.TotalAmount, &updated.OrderStatus, &updated.CreatedAt)
	if err == sql.ErrNoRows {
		return updated, ErrOrderNotFound
	}
	return updated, err
}

func scanOrders(rows *sql.Rows) ([]models.Order, error) {
	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.Name, &o.RestaurantName, &o.FoodOrderItems, &o.Phone, &o.Address, &o.LocationURL, &o.TotalAmount, &o.OrderStatus, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
