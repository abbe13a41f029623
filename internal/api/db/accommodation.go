package db

import "context"

const accommodationColumns = `id, name, type, description, address, phone, amenities, images,
	min_price, max_price, rent_range, rating, review_count, location, contact,
	university_name, created_at`

// scanAccommodation は1行をAccommodationListingに読み込む共通処理。
func scanAccommodation(row interface{ Scan(...any) error }) (AccommodationListing, error) {
	var a AccommodationListing
	err := row.Scan(
		&a.ID, &a.Name, &a.Type, &a.Description, &a.Address, &a.Phone, &a.Amenities,
		&a.Images, &a.MinPrice, &a.MaxPrice, &a.RentRange, &a.Rating, &a.ReviewCount,
		&a.Location, &a.Contact, &a.UniversityName, &a.CreatedAt,
	)
	return a, err
}

// CountAccommodationsParams はCountAccommodationsのパラメータ。
// Typeが空文字列の場合は種別で絞り込まない。
type CountAccommodationsParams struct {
	UniversityName string
	Type           string
}

// CountAccommodations は大学（と種別）で絞り込んだ物件数を返す。
func (q *Queries) CountAccommodations(ctx context.Context, arg CountAccommodationsParams) (int64, error) {
	query := `SELECT COUNT(*) FROM accommodation_listings WHERE university_name = ?`
	args := []any{arg.UniversityName}
	if arg.Type != "" {
		query += ` AND type = ?`
		args = append(args, arg.Type)
	}

	var count int64
	err := q.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// ListAccommodationsParams はListAccommodationsのパラメータ。
type ListAccommodationsParams struct {
	UniversityName string
	Type           string
	Limit          int64
	Offset         int64
}

// ListAccommodations は物件を評価の高い順にページングして返す。
func (q *Queries) ListAccommodations(ctx context.Context, arg ListAccommodationsParams) ([]AccommodationListing, error) {
	query := `SELECT ` + accommodationColumns + ` FROM accommodation_listings WHERE university_name = ?`
	args := []any{arg.UniversityName}
	if arg.Type != "" {
		query += ` AND type = ?`
		args = append(args, arg.Type)
	}
	query += ` ORDER BY rating DESC LIMIT ? OFFSET ?`
	args = append(args, arg.Limit, arg.Offset)

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []AccommodationListing
	for rows.Next() {
		a, err := scanAccommodation(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, a)
	}
	return listings, rows.Err()
}

// GetAccommodationByID は物件を1行取得する。
func (q *Queries) GetAccommodationByID(ctx context.Context, id string) (AccommodationListing, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+accommodationColumns+` FROM accommodation_listings WHERE id = ?`, id)
	return scanAccommodation(row)
}

// CreateAccommodationParams はCreateAccommodationのパラメータ。
type CreateAccommodationParams struct {
	ID             string
	Name           string
	Type           string
	Description    string
	Address        string
	Phone          string
	Amenities      string
	Images         string
	MinPrice       float64
	MaxPrice       float64
	RentRange      string
	Rating         float64
	ReviewCount    int64
	Location       string
	Contact        string
	UniversityName string
}

// CreateAccommodation は物件を作成する。シードとテストで使用する。
func (q *Queries) CreateAccommodation(ctx context.Context, arg CreateAccommodationParams) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO accommodation_listings (
			id, name, type, description, address, phone, amenities, images,
			min_price, max_price, rent_range, rating, review_count, location,
			contact, university_name
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.ID, arg.Name, arg.Type, arg.Description, arg.Address, arg.Phone,
		arg.Amenities, arg.Images, arg.MinPrice, arg.MaxPrice, arg.RentRange,
		arg.Rating, arg.ReviewCount, arg.Location, arg.Contact, arg.UniversityName,
	)
	return err
}
