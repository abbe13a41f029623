package db

import (
	"context"
	"database/sql"
)

const lostFoundColumns = `id, reporter_id, item_name, description, type, location,
	image_url, status, university_name, created_at, updated_at`

// scanLostFoundItem は1行をLostFoundItemに読み込む共通処理。
func scanLostFoundItem(row interface{ Scan(...any) error }) (LostFoundItem, error) {
	var l LostFoundItem
	err := row.Scan(
		&l.ID, &l.ReporterID, &l.ItemName, &l.Description, &l.Type, &l.Location,
		&l.ImageURL, &l.Status, &l.UniversityName, &l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

// CountLostFoundItemsParams はCountLostFoundItemsのパラメータ。
// Typeが空文字列の場合は種別で絞り込まない。
type CountLostFoundItemsParams struct {
	UniversityName string
	Type           string
}

// CountLostFoundItems は大学（と種別）で絞り込んだ報告数を返す。
func (q *Queries) CountLostFoundItems(ctx context.Context, arg CountLostFoundItemsParams) (int64, error) {
	query := `SELECT COUNT(*) FROM lost_found WHERE university_name = ?`
	args := []any{arg.UniversityName}
	if arg.Type != "" {
		query += ` AND type = ?`
		args = append(args, arg.Type)
	}

	var count int64
	err := q.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// LostFoundItemWithReporter は報告と報告者の表示名を結合した結果。
type LostFoundItemWithReporter struct {
	Item             LostFoundItem
	ReporterFullName string
}

// ListLostFoundItemsParams はListLostFoundItemsのパラメータ。
type ListLostFoundItemsParams struct {
	UniversityName string
	Type           string
	Limit          int64
	Offset         int64
}

// ListLostFoundItems は報告を報告者名付きで新しい順にページングして返す。
func (q *Queries) ListLostFoundItems(ctx context.Context, arg ListLostFoundItemsParams) ([]LostFoundItemWithReporter, error) {
	query := `
		SELECT
			l.id, l.reporter_id, l.item_name, l.description, l.type, l.location,
			l.image_url, l.status, l.university_name, l.created_at, l.updated_at,
			p.full_name
		FROM lost_found l
		LEFT JOIN profiles p ON l.reporter_id = p.id
		WHERE l.university_name = ?`
	args := []any{arg.UniversityName}
	if arg.Type != "" {
		query += ` AND l.type = ?`
		args = append(args, arg.Type)
	}
	query += ` ORDER BY l.created_at DESC LIMIT ? OFFSET ?`
	args = append(args, arg.Limit, arg.Offset)

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []LostFoundItemWithReporter
	for rows.Next() {
		var item LostFoundItemWithReporter
		var fullName sql.NullString
		l := &item.Item
		if err := rows.Scan(
			&l.ID, &l.ReporterID, &l.ItemName, &l.Description, &l.Type, &l.Location,
			&l.ImageURL, &l.Status, &l.UniversityName, &l.CreatedAt, &l.UpdatedAt,
			&fullName,
		); err != nil {
			return nil, err
		}
		item.ReporterFullName = fullName.String
		items = append(items, item)
	}
	return items, rows.Err()
}

// CreateLostFoundItemParams はCreateLostFoundItemのパラメータ。
type CreateLostFoundItemParams struct {
	ID             string
	ReporterID     string
	ItemName       string
	Description    string
	Type           string
	Location       string
	ImageURL       string
	Status         string
	UniversityName string
}

// CreateLostFoundItem は忘れ物・拾得物の報告を作成する。
func (q *Queries) CreateLostFoundItem(ctx context.Context, arg CreateLostFoundItemParams) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO lost_found (
			id, reporter_id, item_name, description, type, location,
			image_url, status, university_name
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.ID, arg.ReporterID, arg.ItemName, arg.Description, arg.Type,
		arg.Location, arg.ImageURL, arg.Status, arg.UniversityName,
	)
	return err
}

// GetLostFoundItemByID は報告を1行取得する。
func (q *Queries) GetLostFoundItemByID(ctx context.Context, id string) (LostFoundItem, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+lostFoundColumns+` FROM lost_found WHERE id = ?`, id)
	return scanLostFoundItem(row)
}

// LostFoundItemWithReporterDetail は報告と報告者の連絡先情報を結合した結果。
type LostFoundItemWithReporterDetail struct {
	Item                 LostFoundItem
	ReporterFound        bool
	ReporterFullName     string
	ReporterMobileNumber string
	ReporterDepartment   string
}

// GetLostFoundItemWithReporter は報告と報告者情報をLEFT JOINで取得する。
func (q *Queries) GetLostFoundItemWithReporter(ctx context.Context, id string) (LostFoundItemWithReporterDetail, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT
			l.id, l.reporter_id, l.item_name, l.description, l.type, l.location,
			l.image_url, l.status, l.university_name, l.created_at, l.updated_at,
			p.id, p.full_name, p.mobile_number, p.department
		FROM lost_found l
		LEFT JOIN profiles p ON l.reporter_id = p.id
		WHERE l.id = ?`, id)

	var result LostFoundItemWithReporterDetail
	var reporterID, fullName, mobileNumber, department sql.NullString
	l := &result.Item
	if err := row.Scan(
		&l.ID, &l.ReporterID, &l.ItemName, &l.Description, &l.Type, &l.Location,
		&l.ImageURL, &l.Status, &l.UniversityName, &l.CreatedAt, &l.UpdatedAt,
		&reporterID, &fullName, &mobileNumber, &department,
	); err != nil {
		return LostFoundItemWithReporterDetail{}, err
	}

	result.ReporterFound = reporterID.Valid
	result.ReporterFullName = fullName.String
	result.ReporterMobileNumber = mobileNumber.String
	result.ReporterDepartment = department.String
	return result, nil
}
