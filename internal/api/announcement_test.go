package api

import (
	"net/http"
	"testing"

	"github.com/nao1215/unmarky/internal/api/db"
)

// createTestAnnouncement はテスト用にお知らせをDBに直接挿入するヘルパー関数。
func createTestAnnouncement(t *testing.T, s *Server, id, title, universityName string) {
	t.Helper()
	if err := s.queries.CreateAnnouncement(t.Context(), db.CreateAnnouncementParams{
		ID:             id,
		Title:          title,
		Content:        "本文",
		UniversityName: universityName,
	}); err != nil {
		t.Fatalf("テスト用お知らせの作成に失敗: %v", err)
	}
}

// TestHandleListAnnouncements はお知らせ一覧取得ハンドラのテスト。
func TestHandleListAnnouncements(t *testing.T) {
	t.Parallel()

	t.Run("自大学のお知らせのみ取得できる", func(t *testing.T) {
		t.Parallel()
		s, router := setupTestServer(t)
		createTestAnnouncement(t, s, "ann-1", "休講情報", "Demo University")
		// 他大学のお知らせは含まれないことを確認するため
		createTestAnnouncement(t, s, "ann-2", "他大学のお知らせ", "Other University")

		w := doRequest(router, http.MethodGet, "/api/v1/announcements", "user-1", "Demo University", nil)

		if w.Code != http.StatusOK {
			t.Errorf("ステータスコード: got %d, want %d", w.Code, http.StatusOK)
		}

		result := parseJSONArray(t, w)
		if len(result) != 1 {
			t.Fatalf("件数: got %d, want 1", len(result))
		}
		if result[0]["title"] != "休講情報" {
			t.Errorf("title: got %v, want 休講情報", result[0]["title"])
		}
	})

	t.Run("テナントコンテキストが無い場合はBadRequest", func(t *testing.T) {
		t.Parallel()
		s, router := setupTestServer(t)
		createTestAnnouncement(t, s, "ann-1", "休講情報", "Demo University")

		w := doRequest(router, http.MethodGet, "/api/v1/announcements", "user-1", "", nil)

		if w.Code != http.StatusBadRequest {
			t.Errorf("ステータスコード: got %d, want %d", w.Code, http.StatusBadRequest)
		}
		result := parseJSON(t, w)
		if result["error"] != "University required" {
			t.Errorf("error: got %v, want University required", result["error"])
		}
	})
}

// TestHandleCreateAnnouncement はお知らせ作成ハンドラのテスト。
func TestHandleCreateAnnouncement(t *testing.T) {
	t.Parallel()

	t.Run("正常にお知らせを作成できる", func(t *testing.T) {
		t.Parallel()
		_, router := setupTestServer(t)

		body := map[string]string{"title": "期末試験の日程", "content": "来週掲示板で発表します。"}
		w := doRequest(router, http.MethodPost, "/api/v1/announcements", "user-1", "Demo University", body)

		if w.Code != http.StatusCreated {
			t.Errorf("ステータスコード: got %d, want %d, body=%s", w.Code, http.StatusCreated, w.Body.String())
		}

		result := parseJSON(t, w)
		if result["title"] != "期末試験の日程" {
			t.Errorf("title: got %v, want 期末試験の日程", result["title"])
		}
		if result["universityName"] != "Demo University" {
			t.Errorf("universityName: got %v, want Demo University", result["universityName"])
		}
	})

	t.Run("タイトルまたは本文が未指定の場合はBadRequest", func(t *testing.T) {
		t.Parallel()
		_, router := setupTestServer(t)

		body := map[string]string{"title": "タイトルのみ"}
		w := doRequest(router, http.MethodPost, "/api/v1/announcements", "user-1", "Demo University", body)

		if w.Code != http.StatusBadRequest {
			t.Errorf("ステータスコード: got %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}
