package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// デフォルトのページングパラメータ。
const (
	defaultLimit = 20
	maxLimit     = 100
)

// pagedResponse はページング付き一覧のJSONレスポンス構造。
// itemsは常に配列（該当なしの場合は空配列）を返す。
type pagedResponse struct {
	// Items は現在のページの要素。
	Items any `json:"items"`
	// HasMore は次のページが存在するかどうか。
	HasMore bool `json:"hasMore"`
	// Total は絞り込み後の総件数。
	Total int64 `json:"total"`
}

// emptyPage は0件のページングレスポンスを返す。
// テナント（大学）コンテキストが無い縮退許可リクエストに使用する。
func emptyPage() pagedResponse {
	return pagedResponse{Items: []any{}, HasMore: false, Total: 0}
}

// pageParams はクエリ文字列から件数上限と読み飛ばし件数を読み取る。
// クライアントはlimitとoffsetでページングする。不正な値はデフォルトにフォールバックする。
func pageParams(c *gin.Context) (limit, offset int64) {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", ""), 10, 64)
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset, err = strconv.ParseInt(c.DefaultQuery("offset", ""), 10, 64)
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
