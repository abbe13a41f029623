// Package db はcampus APIのデータアクセス層を提供する。
// Queriesは1クエリ1メソッドの形でパラメータ化SQLを実行する。
package db

import "database/sql"

// Queries はクエリ実行オブジェクト。パラメータ化SQLのみを発行する。
type Queries struct {
	db *sql.DB
}

// New は新しいQueriesを生成する。
func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}
