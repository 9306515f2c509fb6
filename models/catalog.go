package models

type Restaurant struct {
	ID   int    `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type Category struct {
	ID   int    `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Dish is a menu item as listed by one restaurant under one category,
// joined out of restaurant_category_dish and menu_items.
type Dish struct {
	MenuItemID int     `db:"menu_item_id" json:"menu_item_id"`
	Name       string  `db:"dish_name" json:"dish_name"`
	Price      float64 `db:"price" json:"price"`
	Image      *string `db:"image" json:"image,omitempty"`
}

// SearchResult is one name match from the catalog search, tagged with the
// table it came from.
type SearchResult struct {
	ID        int    `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	TableName string `db:"table_name" json:"table_name"`
}
