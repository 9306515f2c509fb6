package handlers

import (
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func orderBody() map[string]interface{} {
	return map[string]interface{}{
		"name":             "Ravi",
		"restaurant_name":  "Tony's",
		"food_order_items": `[{"dish":"Margherita","qty":2}]`,
		"phone":            "9876543210",
		"address":          "12 Beach Road",
		"location_url":     "https://maps.example/abc",
		"total_amount":     498.0,
	}
}

func TestAddOrderMissingField(t *testing.T) {
	body := orderBody()
	delete(body, "address")

	rec := postJSON(t, AddOrder, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddOrderCreated(t *testing.T) {
	mock := setupMock(t)

	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs("Ravi", "Tony's", `[{"dish":"Margherita","qty":2}]`, "9876543210",
			"12 Beach Road", "https://maps.example/abc", 498.0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "restaurant_name", "food_order_items", "phone",
			"address", "location_url", "total_amount", "order_status", "created_at",
		}).AddRow(11, "Ravi", "Tony's", `[{"dish":"Margherita","qty":2}]`, "9876543210",
			"12 Beach Road", "https://maps.example/abc", 498.0, "pending", time.Now()))

	rec := postJSON(t, AddOrder, orderBody())
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrderStatusRequiresEverything(t *testing.T) {
	body := orderBody()
	body["id"] = 11
	body["new_status"] = "delivered"
	// current order_status deliberately missing

	rec := postJSON(t, UpdateOrderStatus, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateOrderStatusStaleIs404(t *testing.T) {
	mock := setupMock(t)

	body := orderBody()
	body["id"] = 11
	body["order_status"] = "pending"
	body["new_status"] = "delivered"

	mock.ExpectQuery(`UPDATE orders SET order_status`).
		WillReturnError(sql.ErrNoRows)

	rec := postJSON(t, UpdateOrderStatus, body)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrdersByPhoneRequiresPhone(t *testing.T) {
	rec := postJSON(t, OrdersByPhone, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
