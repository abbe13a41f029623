package db

import (
	"context"
	"database/sql"
)

const marketplaceItemColumns = `id, seller_id, title, description, price, category, condition,
	manufactured_year, is_negotiable, image_url, university_name, created_at, updated_at`

// scanMarketplaceItem は1行をMarketplaceItemに読み込む共通処理。
func scanMarketplaceItem(row interface{ Scan(...any) error }) (MarketplaceItem, error) {
	var m MarketplaceItem
	err := row.Scan(
		&m.ID, &m.SellerID, &m.Title, &m.Description, &m.Price, &m.Category,
		&m.Condition, &m.ManufacturedYear, &m.IsNegotiable, &m.ImageURL,
		&m.UniversityName, &m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

// CountMarketplaceItemsParams はCountMarketplaceItemsのパラメータ。
// Categoryが空文字列の場合はカテゴリで絞り込まない。
type CountMarketplaceItemsParams struct {
	UniversityName string
	Category       string
}

// CountMarketplaceItems は大学（とカテゴリ）で絞り込んだ出品数を返す。
func (q *Queries) CountMarketplaceItems(ctx context.Context, arg CountMarketplaceItemsParams) (int64, error) {
	query := `SELECT COUNT(*) FROM marketplace_items WHERE university_name = ?`
	args := []any{arg.UniversityName}
	if arg.Category != "" {
		query += ` AND category = ?`
		args = append(args, arg.Category)
	}

	var count int64
	err := q.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// ListMarketplaceItemsParams はListMarketplaceItemsのパラメータ。
type ListMarketplaceItemsParams struct {
	UniversityName string
	Category       string
	Limit          int64
	Offset         int64
}

// ListMarketplaceItems は大学で絞り込んだ出品を新しい順にページングして返す。
func (q *Queries) ListMarketplaceItems(ctx context.Context, arg ListMarketplaceItemsParams) ([]MarketplaceItem, error) {
	query := `SELECT ` + marketplaceItemColumns + ` FROM marketplace_items WHERE university_name = ?`
	args := []any{arg.UniversityName}
	if arg.Category != "" {
		query += ` AND category = ?`
		args = append(args, arg.Category)
	}
	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, arg.Limit, arg.Offset)

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []MarketplaceItem
	for rows.Next() {
		m, err := scanMarketplaceItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// CreateMarketplaceItemParams はCreateMarketplaceItemのパラメータ。
type CreateMarketplaceItemParams struct {
	ID               string
	SellerID         string
	Title            string
	Description      string
	Price            float64
	Category         string
	Condition        string
	ManufacturedYear string
	IsNegotiable     bool
	ImageURL         string
	UniversityName   string
}

// CreateMarketplaceItem は出品を作成する。
func (q *Queries) CreateMarketplaceItem(ctx context.Context, arg CreateMarketplaceItemParams) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO marketplace_items (
			id, seller_id, title, description, price, category, condition,
			manufactured_year, is_negotiable, image_url, university_name
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.ID, arg.SellerID, arg.Title, arg.Description, arg.Price, arg.Category,
		arg.Condition, arg.ManufacturedYear, arg.IsNegotiable, arg.ImageURL,
		arg.UniversityName,
	)
	return err
}

// GetMarketplaceItemByID は出品を1行取得する。
func (q *Queries) GetMarketplaceItemByID(ctx context.Context, id string) (MarketplaceItem, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+marketplaceItemColumns+` FROM marketplace_items WHERE id = ?`, id)
	return scanMarketplaceItem(row)
}

// MarketplaceItemWithSeller は出品と出品者プロファイルを結合した結果。
// 出品者の行が無い場合はSellerFoundがfalseになる。
type MarketplaceItemWithSeller struct {
	Item               MarketplaceItem
	SellerFound        bool
	SellerFullName     string
	SellerMobileNumber string
	SellerDepartment   string
	SellerIsVerified   bool
}

// GetMarketplaceItemWithSeller は出品と出品者情報をLEFT JOINで取得する。
func (q *Queries) GetMarketplaceItemWithSeller(ctx context.Context, id string) (MarketplaceItemWithSeller, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT
			m.id, m.seller_id, m.title, m.description, m.price, m.category, m.condition,
			m.manufactured_year, m.is_negotiable, m.image_url, m.university_name,
			m.created_at, m.updated_at,
			p.id, p.full_name, p.mobile_number, p.department, p.is_verified
		FROM marketplace_items m
		LEFT JOIN profiles p ON m.seller_id = p.id
		WHERE m.id = ?`, id)

	var result MarketplaceItemWithSeller
	var sellerID, fullName, mobileNumber, department sql.NullString
	var isVerified sql.NullBool
	m := &result.Item
	if err := row.Scan(
		&m.ID, &m.SellerID, &m.Title, &m.Description, &m.Price, &m.Category,
		&m.Condition, &m.ManufacturedYear, &m.IsNegotiable, &m.ImageURL,
		&m.UniversityName, &m.CreatedAt, &m.UpdatedAt,
		&sellerID, &fullName, &mobileNumber, &department, &isVerified,
	); err != nil {
		return MarketplaceItemWithSeller{}, err
	}

	result.SellerFound = sellerID.Valid
	result.SellerFullName = fullName.String
	result.SellerMobileNumber = mobileNumber.String
	result.SellerDepartment = department.String
	result.SellerIsVerified = isVerified.Bool
	return result, nil
}
