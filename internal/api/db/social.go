package db

import "context"

const socialPostColumns = `id, author_id, content, likes_count, university_name, created_at, updated_at`

// scanSocialPost は1行をSocialPostに読み込む共通処理。
func scanSocialPost(row interface{ Scan(...any) error }) (SocialPost, error) {
	var p SocialPost
	err := row.Scan(
		&p.ID, &p.AuthorID, &p.Content, &p.LikesCount,
		&p.UniversityName, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// ListSocialPostsByUniversity は大学で絞り込んだ投稿を新しい順にすべて返す。
func (q *Queries) ListSocialPostsByUniversity(ctx context.Context, universityName string) ([]SocialPost, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+socialPostColumns+` FROM social_posts
		 WHERE university_name = ? ORDER BY created_at DESC`, universityName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []SocialPost
	for rows.Next() {
		p, err := scanSocialPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ListLatestSocialPostsParams はListLatestSocialPostsのパラメータ。
type ListLatestSocialPostsParams struct {
	UniversityName string
	Limit          int64
}

// ListLatestSocialPosts は大学で絞り込んだ最新の投稿を指定件数だけ返す。
func (q *Queries) ListLatestSocialPosts(ctx context.Context, arg ListLatestSocialPostsParams) ([]SocialPost, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+socialPostColumns+` FROM social_posts
		 WHERE university_name = ? ORDER BY created_at DESC LIMIT ?`,
		arg.UniversityName, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []SocialPost
	for rows.Next() {
		p, err := scanSocialPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// CreateSocialPostParams はCreateSocialPostのパラメータ。
type CreateSocialPostParams struct {
	ID             string
	AuthorID       string
	Content        string
	UniversityName string
}

// CreateSocialPost は投稿を作成する。
func (q *Queries) CreateSocialPost(ctx context.Context, arg CreateSocialPostParams) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO social_posts (id, author_id, content, university_name)
		VALUES (?, ?, ?, ?)`,
		arg.ID, arg.AuthorID, arg.Content, arg.UniversityName,
	)
	return err
}

// GetSocialPostByID は投稿を1行取得する。
func (q *Queries) GetSocialPostByID(ctx context.Context, id string) (SocialPost, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+socialPostColumns+` FROM social_posts WHERE id = ?`, id)
	return scanSocialPost(row)
}
