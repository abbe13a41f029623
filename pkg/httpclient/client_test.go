package httpclient

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// TestGetJSON はGetJSONの正常系と異常系を検証する。
func TestGetJSON(t *testing.T) {
	t.Parallel()

	t.Run("JSONレスポンスをデシリアライズできる", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/keys" {
				t.Errorf("パス: got %s, want /keys", r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"name":"test","count":3}`))
		}))
		t.Cleanup(server.Close)

		client := New(server.URL, time.Second)
		var result struct {
			Name  string `json:"name"`
			Count int    `json:"count"`
		}
		if err := client.GetJSON(t.Context(), "/keys", &result); err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if result.Name != "test" {
			t.Errorf("name: got %s, want test", result.Name)
		}
		if result.Count != 3 {
			t.Errorf("count: got %d, want 3", result.Count)
		}
	})

	t.Run("パスが空の場合はベースURLをそのまま使用する", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/" {
				t.Errorf("パス: got %s, want /", r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{}`))
		}))
		t.Cleanup(server.Close)

		client := New(server.URL, time.Second)
		if err := client.GetJSON(t.Context(), "", &struct{}{}); err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
	})

	t.Run("2xx以外のステータスはエラーになる", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		t.Cleanup(server.Close)

		client := New(server.URL, time.Second)
		if err := client.GetJSON(t.Context(), "", nil); err == nil {
			t.Error("エラーが返りませんでした")
		}
	})

	t.Run("不正なJSONはエラーになる", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`not-json`))
		}))
		t.Cleanup(server.Close)

		client := New(server.URL, time.Second)
		var result map[string]any
		if err := client.GetJSON(t.Context(), "", &result); err == nil {
			t.Error("エラーが返りませんでした")
		}
	})

	t.Run("タイムアウトを超えるレスポンスはエラーになる", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte(`{}`))
		}))
		t.Cleanup(server.Close)

		client := New(server.URL, 50*time.Millisecond)
		if err := client.GetJSON(t.Context(), "", nil); err == nil {
			t.Error("エラーが返りませんでした")
		}
	})
}
