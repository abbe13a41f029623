package migration

import (
	"database/sql"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

// openTestDB はテスト用のインメモリSQLiteデータベースを開く。
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("インメモリDBの作成に失敗: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// TestRun はマイグレーションの適用と冪等性を検証する。
func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("バージョン順にすべて適用される", func(t *testing.T) {
		t.Parallel()
		db := openTestDB(t)
		fsys := fstest.MapFS{
			"migrations/000002_add_column.up.sql": &fstest.MapFile{
				Data: []byte(`ALTER TABLE items ADD COLUMN name TEXT NOT NULL DEFAULT '';`),
			},
			"migrations/000001_init.up.sql": &fstest.MapFile{
				Data: []byte(`CREATE TABLE items (id TEXT PRIMARY KEY);`),
			},
		}

		if err := Run(db, fsys, "migrations"); err != nil {
			t.Fatalf("マイグレーション適用に失敗: %v", err)
		}

		// 2番目のマイグレーションで追加されたカラムに書き込めること
		if _, err := db.Exec(`INSERT INTO items (id, name) VALUES ('i-1', 'test')`); err != nil {
			t.Errorf("マイグレーション後のテーブルへの書き込みに失敗: %v", err)
		}

		var count int
		if err := db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count); err != nil {
			t.Fatalf("schema_migrationsの読み取りに失敗: %v", err)
		}
		if count != 2 {
			t.Errorf("適用済みバージョン数: got %d, want 2", count)
		}
	})

	t.Run("2回実行しても適用済みのものはスキップされる", func(t *testing.T) {
		t.Parallel()
		db := openTestDB(t)
		fsys := fstest.MapFS{
			"migrations/000001_init.up.sql": &fstest.MapFile{
				Data: []byte(`CREATE TABLE items (id TEXT PRIMARY KEY);`),
			},
		}

		if err := Run(db, fsys, "migrations"); err != nil {
			t.Fatalf("1回目の適用に失敗: %v", err)
		}
		// CREATE TABLEにIF NOT EXISTSが無いため、再実行されればエラーになる
		if err := Run(db, fsys, "migrations"); err != nil {
			t.Fatalf("2回目の適用に失敗: %v", err)
		}
	})

	t.Run("バージョン番号として解釈できないファイルは無視される", func(t *testing.T) {
		t.Parallel()
		db := openTestDB(t)
		fsys := fstest.MapFS{
			"migrations/000001_init.up.sql": &fstest.MapFile{
				Data: []byte(`CREATE TABLE items (id TEXT PRIMARY KEY);`),
			},
			"migrations/README.md": &fstest.MapFile{
				Data: []byte(`migration notes`),
			},
			"migrations/broken.up.sql": &fstest.MapFile{
				Data: []byte(`THIS IS NOT SQL`),
			},
		}

		if err := Run(db, fsys, "migrations"); err != nil {
			t.Fatalf("マイグレーション適用に失敗: %v", err)
		}

		var count int
		if err := db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count); err != nil {
			t.Fatalf("schema_migrationsの読み取りに失敗: %v", err)
		}
		if count != 1 {
			t.Errorf("適用済みバージョン数: got %d, want 1", count)
		}
	})

	t.Run("SQLが不正な場合はエラーを返す", func(t *testing.T) {
		t.Parallel()
		db := openTestDB(t)
		fsys := fstest.MapFS{
			"migrations/000001_broken.up.sql": &fstest.MapFile{
				Data: []byte(`CREATE BROKEN SYNTAX`),
			},
		}

		if err := Run(db, fsys, "migrations"); err == nil {
			t.Error("エラーが返りませんでした")
		}
	})
}
