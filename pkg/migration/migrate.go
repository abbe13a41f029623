// Package migration はSQLiteデータベースのスキーママイグレーションを適用する。
// embed.FSに含まれるSQLファイルをバージョン順に実行し、
// 適用済みバージョンをschema_migrationsテーブルで追跡する。
package migration

import (
	"database/sql"
	"fmt"
	"io/fs"
	"log"
	"sort"
	"strconv"
	"strings"
)

// upSuffix はマイグレーションファイル名の接尾辞。
// ファイル名形式: 000001_init.up.sql
const upSuffix = ".up.sql"

// Run はdir配下の未適用マイグレーションをバージョン順にすべて適用する。
// 各マイグレーションは個別のトランザクションで実行され、
// 途中で失敗した場合は適用済みの分だけが残る。
func Run(db *sql.DB, fsys fs.FS, dir string) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME NOT NULL DEFAULT (datetime('now'))
		)`); err != nil {
		return fmt.Errorf("schema_migrationsテーブルの作成に失敗: %w", err)
	}

	applied, err := appliedVersions(db)
	if err != nil {
		return fmt.Errorf("適用済みバージョンの読み取りに失敗: %w", err)
	}

	files, err := listUpFiles(fsys, dir)
	if err != nil {
		return fmt.Errorf("マイグレーションファイルの列挙に失敗: %w", err)
	}

	for _, f := range files {
		if _, ok := applied[f.version]; ok {
			continue
		}
		if err := apply(db, fsys, f); err != nil {
			return fmt.Errorf("マイグレーション %06d_%s の適用に失敗: %w", f.version, f.name, err)
		}
		log.Printf("[migration] %06d_%s を適用", f.version, f.name)
	}
	return nil
}

// upFile は1つのマイグレーションファイル。
type upFile struct {
	version int
	name    string
	path    string
}

// appliedVersions は適用済みバージョンの集合を返す。
func appliedVersions(db *sql.DB) (map[int]struct{}, error) {
	rows, err := db.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	applied := make(map[int]struct{})
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		applied[v] = struct{}{}
	}
	return applied, rows.Err()
}

// listUpFiles はdir配下のup.sqlファイルをバージョン昇順で返す。
// バージョン番号として解釈できないファイルは無視する。
func listUpFiles(fsys fs.FS, dir string) ([]upFile, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	var files []upFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), upSuffix) {
			continue
		}
		prefix, rest, ok := strings.Cut(entry.Name(), "_")
		if !ok {
			continue
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			continue
		}
		files = append(files, upFile{
			version: version,
			name:    strings.TrimSuffix(rest, upSuffix),
			path:    dir + "/" + entry.Name(),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].version < files[j].version })
	return files, nil
}

// apply は1つのマイグレーションをトランザクション内で実行し、バージョンを記録する。
func apply(db *sql.DB, fsys fs.FS, f upFile) error {
	content, err := fs.ReadFile(fsys, f.path)
	if err != nil {
		return fmt.Errorf("ファイルの読み取りに失敗: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("トランザクションの開始に失敗: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(string(content)); err != nil {
		return fmt.Errorf("SQLの実行に失敗: %w", err)
	}
	if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, f.version); err != nil {
		return fmt.Errorf("バージョンの記録に失敗: %w", err)
	}
	return tx.Commit()
}
