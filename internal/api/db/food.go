package db

import (
	"context"
	"database/sql"
)

const foodListingColumns = `id, name, description, cuisine, tags, address, phone, timing,
	price_range, rating, review_count, image_url, location, university_name, created_at`

const menuItemColumns = `id, restaurant_id, name, description, price, category, image_url,
	is_veg, is_available, rating, review_count, created_at`

// scanFoodListing は1行をFoodListingに読み込む共通処理。
func scanFoodListing(row interface{ Scan(...any) error }) (FoodListing, error) {
	var f FoodListing
	err := row.Scan(
		&f.ID, &f.Name, &f.Description, &f.Cuisine, &f.Tags, &f.Address, &f.Phone,
		&f.Timing, &f.PriceRange, &f.Rating, &f.ReviewCount, &f.ImageURL,
		&f.Location, &f.UniversityName, &f.CreatedAt,
	)
	return f, err
}

// scanMenuItem は1行をMenuItemに読み込む共通処理。
func scanMenuItem(row interface{ Scan(...any) error }) (MenuItem, error) {
	var m MenuItem
	err := row.Scan(
		&m.ID, &m.RestaurantID, &m.Name, &m.Description, &m.Price, &m.Category,
		&m.ImageURL, &m.IsVeg, &m.IsAvailable, &m.Rating, &m.ReviewCount, &m.CreatedAt,
	)
	return m, err
}

// CountFoodListingsParams はCountFoodListingsのパラメータ。
// Cuisineが空文字列の場合は料理ジャンルで絞り込まない。
type CountFoodListingsParams struct {
	UniversityName string
	Cuisine        string
}

// CountFoodListings は大学（と料理ジャンル）で絞り込んだレストラン数を返す。
func (q *Queries) CountFoodListings(ctx context.Context, arg CountFoodListingsParams) (int64, error) {
	query := `SELECT COUNT(*) FROM food_listings WHERE university_name = ?`
	args := []any{arg.UniversityName}
	if arg.Cuisine != "" {
		query += ` AND cuisine = ?`
		args = append(args, arg.Cuisine)
	}

	var count int64
	err := q.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// ListFoodListingsParams はListFoodListingsのパラメータ。
type ListFoodListingsParams struct {
	UniversityName string
	Cuisine        string
	Limit          int64
	Offset         int64
}

// ListFoodListings はレストランを評価の高い順にページングして返す。
func (q *Queries) ListFoodListings(ctx context.Context, arg ListFoodListingsParams) ([]FoodListing, error) {
	query := `SELECT ` + foodListingColumns + ` FROM food_listings WHERE university_name = ?`
	args := []any{arg.UniversityName}
	if arg.Cuisine != "" {
		query += ` AND cuisine = ?`
		args = append(args, arg.Cuisine)
	}
	query += ` ORDER BY rating DESC LIMIT ? OFFSET ?`
	args = append(args, arg.Limit, arg.Offset)

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []FoodListing
	for rows.Next() {
		f, err := scanFoodListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, f)
	}
	return listings, rows.Err()
}

// GetFoodListingByID はレストランを1行取得する。
func (q *Queries) GetFoodListingByID(ctx context.Context, id string) (FoodListing, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+foodListingColumns+` FROM food_listings WHERE id = ?`, id)
	return scanFoodListing(row)
}

// ListMenuItemsParams はListMenuItemsのパラメータ。
// Categoryが空文字列の場合はカテゴリで絞り込まない。
type ListMenuItemsParams struct {
	RestaurantID string
	Category     string
}

// ListMenuItems はレストランのメニューをカテゴリ順・評価の高い順に返す。
func (q *Queries) ListMenuItems(ctx context.Context, arg ListMenuItemsParams) ([]MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE restaurant_id = ?`
	args := []any{arg.RestaurantID}
	if arg.Category != "" {
		query += ` AND category = ?`
		args = append(args, arg.Category)
	}
	query += ` ORDER BY category, rating DESC`

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []MenuItem
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// CreateFoodListingParams はCreateFoodListingのパラメータ。
type CreateFoodListingParams struct {
	ID             string
	Name           string
	Description    string
	Cuisine        string
	Tags           string
	Address        string
	Phone          string
	Timing         string
	PriceRange     string
	Rating         float64
	ReviewCount    int64
	ImageURL       string
	Location       string
	UniversityName string
}

// CreateFoodListing はレストランを作成する。シードとテストで使用する。
func (q *Queries) CreateFoodListing(ctx context.Context, arg CreateFoodListingParams) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO food_listings (
			id, name, description, cuisine, tags, address, phone, timing,
			price_range, rating, review_count, image_url, location, university_name
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.ID, arg.Name, arg.Description, arg.Cuisine, arg.Tags, arg.Address,
		arg.Phone, arg.Timing, arg.PriceRange, arg.Rating, arg.ReviewCount,
		arg.ImageURL, arg.Location, arg.UniversityName,
	)
	return err
}

// CreateMenuItemParams はCreateMenuItemのパラメータ。
type CreateMenuItemParams struct {
	ID           string
	RestaurantID string
	Name         string
	Description  string
	Price        float64
	Category     string
	ImageURL     string
	IsVeg        bool
	IsAvailable  bool
	Rating       float64
	ReviewCount  int64
}

// CreateMenuItem はメニュー項目を作成する。シードとテストで使用する。
func (q *Queries) CreateMenuItem(ctx context.Context, arg CreateMenuItemParams) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO menu_items (
			id, restaurant_id, name, description, price, category, image_url,
			is_veg, is_available, rating, review_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.ID, arg.RestaurantID, arg.Name, arg.Description, arg.Price, arg.Category,
		arg.ImageURL, arg.IsVeg, arg.IsAvailable, arg.Rating, arg.ReviewCount,
	)
	return err
}

// MenuItemWithRestaurant はメニュー項目と所属レストランの概要を結合した結果。
type MenuItemWithRestaurant struct {
	Item               MenuItem
	RestaurantFound    bool
	RestaurantName     string
	RestaurantLocation string
}

// GetMenuItemWithRestaurant はメニュー項目とレストラン概要をLEFT JOINで取得する。
func (q *Queries) GetMenuItemWithRestaurant(ctx context.Context, id string) (MenuItemWithRestaurant, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT
			m.id, m.restaurant_id, m.name, m.description, m.price, m.category,
			m.image_url, m.is_veg, m.is_available, m.rating, m.review_count, m.created_at,
			f.id, f.name, f.location
		FROM menu_items m
		LEFT JOIN food_listings f ON m.restaurant_id = f.id
		WHERE m.id = ?`, id)

	var result MenuItemWithRestaurant
	var restaurantID, restaurantName, restaurantLocation sql.NullString
	m := &result.Item
	if err := row.Scan(
		&m.ID, &m.RestaurantID, &m.Name, &m.Description, &m.Price, &m.Category,
		&m.ImageURL, &m.IsVeg, &m.IsAvailable, &m.Rating, &m.ReviewCount, &m.CreatedAt,
		&restaurantID, &restaurantName, &restaurantLocation,
	); err != nil {
		return MenuItemWithRestaurant{}, err
	}

	result.RestaurantFound = restaurantID.Valid
	result.RestaurantName = restaurantName.String
	result.RestaurantLocation = restaurantLocation.String
	return result, nil
}
