// Package httpclient は外部エンドポイントからJSONを取得するための
// タイムアウト付きHTTPクライアントを提供する。
package httpclient
