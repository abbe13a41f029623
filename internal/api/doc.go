// Package api はキャンパスアプリのHTTP APIサーバーを実装する。
//
// フリマ・忘れ物掲示板・学内SNS・飲食店/住居ディレクトリの各機能を
// 1つのGinサーバーとして提供する。/api/v1配下のすべてのルートは
// ES256署名のBearerトークン検証とテナント（大学）スコープの付与を
// 行う認可ミドルウェアを通過する。
package api
