package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/konaseemakart/backend/database/dbhelper"
	"github.com/konaseemakart/backend/utils"
)

// catalogError maps the dbhelper sentinel set onto the HTTP taxonomy;
// anything unrecognized is logged and reported as a 500 with the fallback
// message.
func catalogError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, dbhelper.ErrRestaurantNotFound),
		errors.Is(err, dbhelper.ErrCategoryNotFound),
		errors.Is(err, dbhelper.ErrDishNotFound):
		utils.RespondMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, dbhelper.ErrCategoryNotLinked):
		utils.RespondMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, dbhelper.ErrRestaurantExists):
		utils.RespondMessage(w, http.StatusConflict, err.Error())
	default:
		logrus.WithError(err).Error(fallback)
		utils.RespondMessage(w, http.StatusInternalServerError, fallback)
	}
}

func ListRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := dbhelper.ListRestaurants()
	if err != nil {
		catalogError(w, err, "Error fetching restaurants")
		return
	}
	utils.RespondJSON(w, http.StatusOK, restaurants)
}

func AddRestaurant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		utils.RespondMessage(w, http.StatusBadRequest, "Name is required")
		return
	}

	restaurant, err := dbhelper.CreateRestaurant(req.Name)
	if err != nil {
		catalogError(w, err, "Error adding restaurant")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, restaurant)
}

func RemoveRestaurant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		utils.RespondMessage(w, http.StatusBadRequest, "Restaurant name is required")
		return
	}

	deleted, err := dbhelper.DeleteRestaurant(req.Name)
	if err != nil {
		catalogError(w, err, "Error removing restaurant")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Restaurant removed successfully",
		"deleted": deleted,
	})
}

func ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := dbhelper.ListCategories()
	if err != nil {
		catalogError(w, err, "Error fetching categories")
		return
	}
	utils.RespondJSON(w, http.StatusOK, categories)
}

func CategoriesByRestaurant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RestaurantName string `json:"restaurant_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RestaurantName == "" {
		utils.RespondMessage(w, http.StatusBadRequest, "Restaurant name is required")
		return
	}

	categories, err := dbhelper.CategoriesByRestaurant(req.RestaurantName)
	if err != nil {
		catalogError(w, err, "Error fetching categories")
		return
	}
	utils.RespondJSON(w, http.StatusOK, categories)
}

func AddCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name           string `json:"name"`
		RestaurantName string `json:"restaurant_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.RestaurantName == "" {
		utils.RespondMessage(w, http.StatusBadRequest, "Name and Restaurant Name are required")
		return
	}

	restaurantID, categoryID, err := dbhelper.AddCategory(req.RestaurantName, req.Name)
	if err != nil {
		catalogError(w, err, "Error adding category")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":       "Category added and linked to restaurant",
		"restaurant_id": restaurantID,
		"category_id":   categoryID,
	})
}

func RemoveCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name           string `json:"name"`
		RestaurantName string `json:"restaurant_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.RestaurantName == "" {
		utils.RespondMessage(w, http.StatusBadRequest, "Category Name and Restaurant Name are required")
		return
	}

	restaurantID, categoryID, err := dbhelper.RemoveCategory(req.RestaurantName, req.Name)
	if err != nil {
		catalogError(w, err, "Error removing category")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message":       "Category removed successfully",
		"restaurant_id": restaurantID,
		"category_id":   categoryID,
	})
}

func GetDishes(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Restaurant string `json:"restaurant"`
		Category   string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Restaurant == "" || req.Category == "" {
		utils.RespondMessage(w, http.StatusBadRequest, "Restaurant and category are required")
		return
	}

	dishes, err := dbhelper.GetDishes(req.Restaurant, req.Category)
	if err != nil {
		catalogError(w, err, "Error fetching dishes")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"dishes": dishes})
}

func SearchDish(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SearchTerm string `json:"search_term"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SearchTerm == "" {
		utils.RespondMessage(w, http.StatusBadRequest, "Search term is required")
		return
	}

	results, err := dbhelper.SearchCatalog(req.SearchTerm)
	if err != nil {
		catalogError(w, err, "Error fetching results")
		return
	}
	utils.RespondJSON(w, http.StatusOK, results)
}

type dishRequest struct {
	RestaurantName string `json:"restaurant_name"`
	CategoryName   string `json:"category_name"`
	DishName       string `json:"dish_name"`
}

func (d dishRequest) incomplete() bool {
	return d.RestaurantName == "" || d.CategoryName == "" || d.DishName == ""
}

func AddDish(w http.ResponseWriter, r *http.Request) {
	var req dishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.incomplete() {
		utils.RespondMessage(w, http.StatusBadRequest, "Restaurant name, category name and dish name are required")
		return
	}

	created, err := dbhelper.AddDish(req.RestaurantName, req.CategoryName, req.DishName)
	if err != nil {
		catalogError(w, err, "Error adding dish")
		return
	}
	if !created {
		utils.RespondMessage(w, http.StatusOK, "Dish already listed for this restaurant and category")
		return
	}
	utils.RespondMessage(w, http.StatusCreated, "Dish added successfully")
}

func RemoveDish(w http.ResponseWriter, r *http.Request) {
	var req dishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.incomplete() {
		utils.RespondMessage(w, http.StatusBadRequest, "Restaurant name, category name and dish name are required")
		return
	}

	if err := dbhelper.RemoveDish(req.RestaurantName, req.CategoryName, req.DishName); err != nil {
		catalogError(w, err, "Error removing dish")
		return
	}
	utils.RespondMessage(w, http.StatusOK, "Dish removed successfully")
}

func AddDishImage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		dishRequest
		Image string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.incomplete() || req.Image == "" {
		utils.RespondMessage(w, http.StatusBadRequest, "Restaurant name, category name, dish name and image are required")
		return
	}

	if err := dbhelper.SetDishImage(req.RestaurantName, req.CategoryName, req.DishName, req.Image); err != nil {
		catalogError(w, err, "Error updating dish image")
		return
	}
	utils.RespondMessage(w, http.StatusOK, "Dish image updated successfully")
}

func RemoveDishImage(w http.ResponseWriter, r *http.Request) {
	var req dishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.incomplete() {
		utils.RespondMessage(w, http.StatusBadRequest, "Restaurant name, category name and dish name are required")
		return
	}

	if err := dbhelper.ClearDishImage(req.RestaurantName, req.CategoryName, req.DishName); err != nil {
		catalogError(w, err, "Error removing dish image")
		return
	}
	utils.RespondMessage(w, http.StatusOK, "Dish image removed successfully")
}

func UpdateDishPrice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		dishRequest
		Price *float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.incomplete() || req.Price == nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Restaurant name, category name, dish name and price are required")
		return
	}

	if err := dbhelper.SetDishPrice(req.RestaurantName, req.CategoryName, req.DishName, *req.Price); err != nil {
		catalogError(w, err, "Error updating dish price")
		return
	}
	utils.RespondMessage(w, http.StatusOK, "Dish price updated successfully")
}
