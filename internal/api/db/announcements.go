package db

import "context"

const announcementColumns = `id, title, content, university_name, created_at`

// scanAnnouncement は1行をAnnouncementに読み込む共通処理。
func scanAnnouncement(row interface{ Scan(...any) error }) (Announcement, error) {
	var a Announcement
	err := row.Scan(&a.ID, &a.Title, &a.Content, &a.UniversityName, &a.CreatedAt)
	return a, err
}

// ListAnnouncementsByUniversity は大学で絞り込んだお知らせを新しい順にすべて返す。
func (q *Queries) ListAnnouncementsByUniversity(ctx context.Context, universityName string) ([]Announcement, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+announcementColumns+` FROM announcements
		 WHERE university_name = ? ORDER BY created_at DESC`, universityName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var announcements []Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		announcements = append(announcements, a)
	}
	return announcements, rows.Err()
}

// ListLatestAnnouncementsParams はListLatestAnnouncementsのパラメータ。
type ListLatestAnnouncementsParams struct {
	UniversityName string
	Limit          int64
}

// ListLatestAnnouncements は大学で絞り込んだ最新のお知らせを指定件数だけ返す。
func (q *Queries) ListLatestAnnouncements(ctx context.Context, arg ListLatestAnnouncementsParams) ([]Announcement, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+announcementColumns+` FROM announcements
		 WHERE university_name = ? ORDER BY created_at DESC LIMIT ?`,
		arg.UniversityName, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var announcements []Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		announcements = append(announcements, a)
	}
	return announcements, rows.Err()
}

// CreateAnnouncementParams はCreateAnnouncementのパラメータ。
type CreateAnnouncementParams struct {
	ID             string
	Title          string
	Content        string
	UniversityName string
}

// CreateAnnouncement はお知らせを作成する。
func (q *Queries) CreateAnnouncement(ctx context.Context, arg CreateAnnouncementParams) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO announcements (id, title, content, university_name)
		VALUES (?, ?, ?, ?)`,
		arg.ID, arg.Title, arg.Content, arg.UniversityName,
	)
	return err
}

// GetAnnouncementByID はお知らせを1行取得する。
func (q *Queries) GetAnnouncementByID(ctx context.Context, id string) (Announcement, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+announcementColumns+` FROM announcements WHERE id = ?`, id)
	return scanAnnouncement(row)
}
