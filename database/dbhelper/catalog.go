package dbhelper

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/lib/pq"

	"github.com/konaseemakart/backend/database"
	"github.com/konaseemakart/backend/models"
)

// querier is satisfied by both *sql.DB and *sql.Tx so resolvers can run
// inside or outside a transaction.
type querier interface {
	QueryRow(query string, args ...interface{}) *sql.Row
	Query(query string, args ...interface{}) (*sql.Rows, error)
	Exec(query string, args ...interface{}) (sql.Result, error)
}

const uniqueViolation = "23505"

func ListRestaurants() ([]models.Restaurant, error) {
	rows, err := database.Kart.Query(`SELECT id, name FROM restaurants ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []models.Restaurant
	for rows.Next() {
		var r models.Restaurant
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, r)
	}
	return restaurants, rows.Err()
}

func CreateRestaurant(name string) (models.Restaurant, error) {
	var r models.Restaurant
	err := database.Kart.QueryRow(`INSERT INTO restaurants (name) VALUES ($1) RETURNING id, name`, name).
		Scan(&r.ID, &r.Name)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return r, ErrRestaurantExists
	}
	return r, err
}

// DeleteRestaurant removes the restaurant by exact name. Link and placement
// rows go with it via FK cascade; categories and menu items that lost their
// last reference are garbage-collected in the same transaction.
func DeleteRestaurant(name string) (models.Restaurant, error) {
	var r models.Restaurant
	err := database.Tx(func(tx *sql.Tx) error {
		err := tx.QueryRow(`DELETE FROM restaurants WHERE name = $1 RETURNING id, name`, name).
			Scan(&r.ID, &r.Name)
		if err == sql.ErrNoRows {
			return ErrRestaurantNotFound
		}
		if err != nil {
			return err
		}

		if _, err := tx.Exec(`DELETE FROM categories c WHERE NOT EXISTS (SELECT 1 FROM restaurant_categories rc WHERE rc.category_id = c.id)`); err != nil {
			return err
		}
		_, err = tx.Exec(`DELETE FROM menu_items mi WHERE NOT EXISTS (SELECT 1 FROM restaurant_category_dish rcd WHERE rcd.menu_item_id = mi.id)`)
		return err
	})
	return r, err
}

func ListCategories() ([]models.Category, error) {
	rows, err := database.Kart.Query(`SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCategories(rows)
}

func CategoriesByRestaurant(restaurantName string) ([]models.Category, error) {
	rows, err := database.Kart.Query(`
		SELECT DISTINCT c.id, c.name
		FROM restaurant_categories rc
		JOIN categories c ON rc.category_id = c.id
		JOIN restaurants r ON rc.restaurant_id = r.id
		WHERE r.name = $1
		ORDER BY c.id`, restaurantName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCategories(rows)
}

func scanCategories(rows *sql.Rows) ([]models.Category, error) {
	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// AddCategory find-or-creates the category by exact name and links it to the
// restaurant. Both the category insert and the link insert are idempotent;
// the ON CONFLICT path re-reads the winning row so a concurrent identical
// request cannot produce a duplicate.
func AddCategory(restaurantName, categoryName string) (int, int, error) {
	var restaurantID, categoryID int
	err := database.Tx(func(tx *sql.Tx) error {
		var err error
		restaurantID, err = restaurantIDByName(tx, restaurantName)
		if err != nil {
			return err
		}

		err = tx.QueryRow(`INSERT INTO categories (name) VALUES ($1) ON CONFLICT (name) DO NOTHING RETURNING id`, categoryName).
			Scan(&categoryID)
		if err == sql.ErrNoRows {
			err = tx.QueryRow(`SELECT id FROM categories WHERE name = $1`, categoryName).Scan(&categoryID)
		}
		if err != nil {
			return err
		}

		_, err = tx.Exec(`INSERT INTO restaurant_categories (restaurant_id, category_id) VALUES ($1, $2) ON CONFLICT (restaurant_id, category_id) DO NOTHING`,
			restaurantID, categoryID)
		return err
	})
	return restaurantID, categoryID, err
}

// RemoveCategory unlinks the category from the restaurant and deletes the
// category row once nothing references it. Runs as one transaction; any
// failure mid-sequence leaves no partial mutation behind.
func RemoveCategory(restaurantName, categoryName string) (int, int, error) {
	var restaurantID, categoryID int
	err := database.Tx(func(tx *sql.Tx) error {
		var err error
		restaurantID, err = restaurantIDByName(tx, restaurantName)
		if err != nil {
			return err
		}
		categoryID, err = categoryIDByName(tx, categoryName)
		if err != nil {
			return err
		}

		res, err := tx.Exec(`DELETE FROM restaurant_categories WHERE restaurant_id = $1 AND category_id = $2`,
			restaurantID, categoryID)
		if err != nil {
			return err
		}
		deleted, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if deleted == 0 {
			return ErrCategoryNotLinked
		}

		var one int
		err = tx.QueryRow(`SELECT 1 FROM restaurant_categories WHERE category_id = $1 LIMIT 1`, categoryID).Scan(&one)
		if err == sql.ErrNoRows {
			_, err = tx.Exec(`DELETE FROM categories WHERE id = $1`, categoryID)
		}
		return err
	})
	return restaurantID, categoryID, err
}

func GetDishes(restaurantName, categoryName string) ([]models.Dish, error) {
	restaurantID, err := restaurantIDByName(database.Kart, restaurantName)
	if err != nil {
		return nil, err
	}
	categoryID, err := categoryIDByName(database.Kart, categoryName)
	if err != nil {
		return nil, err
	}

	rows, err := database.Kart.Query(`
		SELECT rcd.menu_item_id, mi.name AS dish_name, rcd.price, rcd.image
		FROM restaurant_category_dish rcd
		JOIN menu_items mi ON rcd.menu_item_id = mi.id
		WHERE rcd.restaurant_id = $1 AND rcd.category_id = $2
		ORDER BY mi.name`, restaurantID, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dishes []models.Dish
	for rows.Next() {
		var d models.Dish
		var image sql.NullString
		if err := rows.Scan(&d.MenuItemID, &d.Name, &d.Price, &image); err != nil {
			return nil, err
		}
		if image.Valid {
			d.Image = &image.String
		}
		dishes = append(dishes, d)
	}
	return dishes, rows.Err()
}

// AddDish lists a dish under a restaurant+category. Restaurant and category
// must already exist (matched case-insensitively, never auto-created); the
// menu item is find-or-created by case-insensitive name. Returns false when
// the placement already existed.
func AddDish(restaurantName, categoryName, dishName string) (bool, error) {
	var created bool
	err := database.Tx(func(tx *sql.Tx) error {
		restaurantID, err := restaurantIDByNameFold(tx, restaurantName)
		if err != nil {
			return err
		}
		categoryID, err := categoryIDByNameFold(tx, categoryName)
		if err != nil {
			return err
		}

		var menuItemID int
		err = tx.QueryRow(`SELECT id FROM menu_items WHERE LOWER(name) = LOWER($1) LIMIT 1`, dishName).Scan(&menuItemID)
		if err == sql.ErrNoRows {
			err = tx.QueryRow(`INSERT INTO menu_items (name) VALUES ($1) RETURNING id`, dishName).Scan(&menuItemID)
		}
		if err != nil {
			return err
		}

		res, err := tx.Exec(`INSERT INTO restaurant_category_dish (restaurant_id, category_id, menu_item_id, price, image) VALUES ($1, $2, $3, 0, NULL) ON CONFLICT (restaurant_id, category_id, menu_item_id) DO NOTHING`,
			restaurantID, categoryID, menuItemID)
		if err != nil {
			return err
		}
		inserted, err := res.RowsAffected()
		if err != nil {
			return err
		}
		created = inserted > 0
		return nil
	})
	return created, err
}

// RemoveDish deletes the placement resolved by a case-insensitive join over
// all three names, then garbage-collects the menu item if no other placement
// references it.
func RemoveDish(restaurantName, categoryName, dishName string) error {
	return database.Tx(func(tx *sql.Tx) error {
		p, err := placementByNames(tx, restaurantName, categoryName, dishName)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(`DELETE FROM restaurant_category_dish WHERE restaurant_id = $1 AND category_id = $2 AND menu_item_id = $3`,
			p.restaurantID, p.categoryID, p.menuItemID); err != nil {
			return err
		}

		var one int
		err = tx.QueryRow(`SELECT 1 FROM restaurant_category_dish WHERE menu_item_id = $1 LIMIT 1`, p.menuItemID).Scan(&one)
		if err == sql.ErrNoRows {
			_, err = tx.Exec(`DELETE FROM menu_items WHERE id = $1`, p.menuItemID)
		}
		return err
	})
}

func SetDishImage(restaurantName, categoryName, dishName, image string) error {
	return updatePlacement(restaurantName, categoryName, dishName,
		`UPDATE restaurant_category_dish SET image = $4 WHERE restaurant_id = $1 AND category_id = $2 AND menu_item_id = $3`, image)
}

func ClearDishImage(restaurantName, categoryName, dishName string) error {
	return updatePlacement(restaurantName, categoryName, dishName,
		`UPDATE restaurant_category_dish SET image = NULL WHERE restaurant_id = $1 AND category_id = $2 AND menu_item_id = $3`)
}

func SetDishPrice(restaurantName, categoryName, dishName string, price float64) error {
	return updatePlacement(restaurantName, categoryName, dishName,
		`UPDATE restaurant_category_dish SET price = $4 WHERE restaurant_id = $1 AND category_id = $2 AND menu_item_id = $3`, price)
}

func updatePlacement(restaurantName, categoryName, dishName, query string, extra ...interface{}) error {
	return database.Tx(func(tx *sql.Tx) error {
		p, err := placementByNames(tx, restaurantName, categoryName, dishName)
		if err != nil {
			return err
		}
		args := append([]interface{}{p.restaurantID, p.categoryID, p.menuItemID}, extra...)
		_, err = tx.Exec(query, args...)
		return err
	})
}

// searchTables is the fixed allow-list of name-searchable tables. Never
// accept table names from the request.
var searchTables = []string{"categories", "menu_items", "restaurants"}

// SearchCatalog matches term as a case-insensitive regex against names in
// every allow-listed table, returning rows sorted by (table_name, id).
func SearchCatalog(term string) ([]models.SearchResult, error) {
	var results []models.SearchResult
	for _, table := range searchTables {
		query := fmt.Sprintf(`SELECT id, name, '%s' AS table_name FROM %s WHERE name ~* $1 ORDER BY id`, table, table)
		rows, err := database.Kart.Query(query, term)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			var sr models.SearchResult
			if err := rows.Scan(&sr.ID, &sr.Name, &sr.TableName); err != nil {
				rows.Close()
				return nil, err
			}
			results = append(results, sr)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].TableName != results[j].TableName {
			return results[i].TableName < results[j].TableName
		}
		return results[i].ID < results[j].ID
	})
	return results, nil
}

func restaurantIDByName(q querier, name string) (int, error) {
	var id int
	err := q.QueryRow(`SELECT id FROM restaurants WHERE name = $1`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrRestaurantNotFound
	}
	return id, err
}

func categoryIDByName(q querier, name string) (int, error) {
	var id int
	err := q.QueryRow(`SELECT id FROM categories WHERE name = $1`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrCategoryNotFound
	}
	return id, err
}

func restaurantIDByNameFold(q querier, name string) (int, error) {
	var id int
	err := q.QueryRow(`SELECT id FROM restaurants WHERE LOWER(name) = LOWER($1)`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrRestaurantNotFound
	}
	return id, err
}

func categoryIDByNameFold(q querier, name string) (int, error) {
	var id int
	err := q.QueryRow(`SELECT id FROM categories WHERE LOWER(name) = LOWER($1)`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrCategoryNotFound
	}
	return id, err
}

type placement struct {
	restaurantID int
	categoryID   int
	menuItemID   int
}

func placementByNames(q querier, restaurantName, categoryName, dishName string) (placement, error) {
	var p placement
	err := q.QueryRow(`
		SELECT rcd.restaurant_id, rcd.category_id, rcd.menu_item_id
		FROM restaurant_category_dish rcd
		JOIN restaurants r ON rcd.restaurant_id = r.id
		JOIN categories c ON rcd.category_id = c.id
		JOIN menu_items mi ON rcd.menu_item_id = mi.id
		WHERE LOWER(r.name) = LOWER($1) AND LOWER(c.name) = LOWER($2) AND LOWER(mi.name) = LOWER($3)`,
		restaurantName, categoryName, dishName).
		Scan(&p.restaurantID, &p.categoryID, &p.menuItemID)
	if err == sql.ErrNoRows {
		return p, ErrDishNotFound
	}
	return p, err
}
