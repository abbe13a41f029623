package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// newCORSRouter はCORSミドルウェアを適用したテスト用ルーターを構築する。
func newCORSRouter(allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(CORS(allowedOrigins))
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return router
}

// TestCORS はCORSミドルウェアのヘッダー付与を検証する。
func TestCORS(t *testing.T) {
	t.Parallel()

	t.Run("許可されたオリジンにはCORSヘッダーを付与する", func(t *testing.T) {
		t.Parallel()
		router := newCORSRouter([]string{"http://localhost:5173"})

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
			t.Errorf("Access-Control-Allow-Origin: got %s, want http://localhost:5173", got)
		}
		if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
			t.Errorf("Access-Control-Allow-Credentials: got %s, want true", got)
		}
	})

	t.Run("許可されていないオリジンにはヘッダーを付与しない", func(t *testing.T) {
		t.Parallel()
		router := newCORSRouter([]string{"http://localhost:5173"})

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "http://evil.example.com")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Access-Control-Allow-Origin: got %s, want 空文字列", got)
		}
		// 許可の有無にかかわらずVaryは付与される
		if got := w.Header().Get("Vary"); got != "Origin" {
			t.Errorf("Vary: got %s, want Origin", got)
		}
	})

	t.Run("プリフライトリクエストはNoContentで終了する", func(t *testing.T) {
		t.Parallel()
		router := newCORSRouter([]string{"http://localhost:5173"})

		req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("ステータスコード: got %d, want %d", w.Code, http.StatusNoContent)
		}
		if got := w.Header().Get("Access-Control-Allow-Methods"); got == "" {
			t.Error("Access-Control-Allow-Methodsが設定されていません")
		}
	})
}
