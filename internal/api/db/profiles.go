package db

import "context"

const profileColumns = `id, full_name, university_name, department, class, mobile_number,
	id_card_url, is_verified, onboarding_completed, created_at, updated_at`

// scanProfile は1行をProfileに読み込む共通処理。
func scanProfile(row interface{ Scan(...any) error }) (Profile, error) {
	var p Profile
	err := row.Scan(
		&p.ID, &p.FullName, &p.UniversityName, &p.Department, &p.Class,
		&p.MobileNumber, &p.IDCardURL, &p.IsVerified, &p.OnboardingCompleted,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// GetProfileByID はサブジェクトIDでプロファイルを1行取得する。
func (q *Queries) GetProfileByID(ctx context.Context, id string) (Profile, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id)
	return scanProfile(row)
}

// CreateProfileParams はCreateProfileのパラメータ。
type CreateProfileParams struct {
	ID                  string
	FullName            string
	UniversityName      string
	Department          string
	Class               string
	MobileNumber        string
	OnboardingCompleted bool
}

// CreateProfile はプロファイル行を作成する。
func (q *Queries) CreateProfile(ctx context.Context, arg CreateProfileParams) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO profiles (id, full_name, university_name, department, class, mobile_number, onboarding_completed)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		arg.ID, arg.FullName, arg.UniversityName, arg.Department, arg.Class,
		arg.MobileNumber, arg.OnboardingCompleted,
	)
	return err
}

// CompleteOnboardingParams はCompleteOnboardingのパラメータ。
type CompleteOnboardingParams struct {
	UniversityName string
	ID             string
}

// CompleteOnboarding は大学名を設定し、オンボーディング完了フラグを立てる。
func (q *Queries) CompleteOnboarding(ctx context.Context, arg CompleteOnboardingParams) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE profiles
		SET university_name = ?, onboarding_completed = 1, updated_at = datetime('now')
		WHERE id = ?`,
		arg.UniversityName, arg.ID,
	)
	return err
}

// UpdateProfileContactParams はUpdateProfileContactのパラメータ。
type UpdateProfileContactParams struct {
	Department   string
	Class        string
	MobileNumber string
	ID           string
}

// UpdateProfileContact は連絡先系フィールド（学部・クラス・携帯番号）を更新する。
func (q *Queries) UpdateProfileContact(ctx context.Context, arg UpdateProfileContactParams) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE profiles
		SET department = ?, class = ?, mobile_number = ?, updated_at = datetime('now')
		WHERE id = ?`,
		arg.Department, arg.Class, arg.MobileNumber, arg.ID,
	)
	return err
}

// MarkProfileVerifiedParams はMarkProfileVerifiedのパラメータ。
type MarkProfileVerifiedParams struct {
	IDCardURL string
	ID        string
}

// MarkProfileVerified は学生証URLを記録し、本人確認済みフラグを立てる。
func (q *Queries) MarkProfileVerified(ctx context.Context, arg MarkProfileVerifiedParams) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE profiles
		SET is_verified = 1, id_card_url = ?, updated_at = datetime('now')
		WHERE id = ?`,
		arg.IDCardURL, arg.ID,
	)
	return err
}
