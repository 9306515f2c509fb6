package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/konaseemakart/backend/database/dbhelper"
	"github.com/konaseemakart/backend/models"
	"github.com/konaseemakart/backend/utils"
)

type orderRequest struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	RestaurantName string   `json:"restaurant_name"`
	FoodOrderItems string   `json:"food_order_items"`
	Phone          string   `json:"phone"`
	Address        string   `json:"address"`
	LocationURL    string   `json:"location_url"`
	TotalAmount    *float64 `json:"total_amount"`
	OrderStatus    string   `json:"order_status"`
	NewStatus      string   `json:"new_status"`
}

func (o orderRequest) missingFields() bool {
	return o.Name == "" || o.RestaurantName == "" || o.FoodOrderItems == "" ||
		o.Phone == "" || o.Address == "" || o.LocationURL == "" || o.TotalAmount == nil
}

func (o orderRequest) toModel() models.Order {
	return models.Order{
		ID:             o.ID,
		Name:           o.Name,
		RestaurantName: o.RestaurantName,
		FoodOrderItems: o.FoodOrderItems,
		Phone:          o.Phone,
		Address:        o.Address,
		LocationURL:    o.LocationURL,
		TotalAmount:    *o.TotalAmount,
		OrderStatus:    o.OrderStatus,
	}
}

func AddOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.missingFields() {
		utils.RespondMessage(w, http.StatusBadRequest, "All order fields are required")
		return
	}

	order, err := dbhelper.CreateOrder(req.toModel())
	if err != nil {
		logrus.WithError(err).Error("failed to create order")
		utils.RespondMessage(w, http.StatusInternalServerError, "Error adding order")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, order)
}

func OrdersByPhone(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Phone == "" {
		utils.RespondMessage(w, http.StatusBadRequest, "Phone is required")
		return
	}

	orders, err := dbhelper.OrdersByPhone(req.Phone)
	if err != nil {
		logrus.WithError(err).Error("failed to list orders by phone")
		utils.RespondMessage(w, http.StatusInternalServerError, "Error fetching orders")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

func OrdersByDate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Date == "" {
		utils.RespondMessage(w, http.StatusBadRequest, "Date is required")
		return
	}

	orders, err := dbhelper.OrdersByDate(req.Date)
	if err != nil {
		logrus.WithError(err).Error("failed to list orders by date")
		utils.RespondMessage(w, http.StatusInternalServerError, "Error fetching orders")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

// UpdateOrderStatus applies the transition only when the caller's copy of the
// whole record still matches the stored row; a drifted copy is rejected.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.ID <= 0 || req.missingFields() || req.OrderStatus == "" || req.NewStatus == "" {
		utils.RespondMessage(w, http.StatusBadRequest, "Order id, all order fields and new status are required")
		return
	}

	order, err := dbhelper.UpdateOrderStatus(req.toModel(), req.NewStatus)
	if errors.Is(err, dbhelper.ErrOrderNotFound) {
		utils.RespondMessage(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		logrus.WithError(err).Error("failed to update order status")
		utils.RespondMessage(w, http.StatusInternalServerError, "Error updating order status")
		return
	}
	utils.RespondJSON(w, http.StatusOK, order)
}
