// Package middleware はGinベースのHTTP APIで使用する共通ミドルウェアを提供する。
//
// Bearerトークンの検証とテナント（大学）コンテキストの付与、
// パニックリカバリ、CORS設定など、API全体で共通して使用するミドルウェアを含む。
package middleware
