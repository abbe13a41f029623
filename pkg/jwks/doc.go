// Package jwks は外部の認証基盤が公開する鍵セット（JSON Web Key Set）から
// トークン署名検証用の公開鍵を解決する。
//
// 解決済みの鍵はプロセス内のLRUキャッシュに保持され、鍵ローテーションで
// 新しいkidが現れたときのみネットワーク取得が発生する。
package jwks
