package api

import (
	"net/http"
	"testing"

	"github.com/nao1215/unmarky/internal/api/db"
)

// createTestLostFoundItem はテスト用に報告をDBに直接挿入するヘルパー関数。
func createTestLostFoundItem(t *testing.T, s *Server, id, reporterID, itemName, itemType, universityName string) {
	t.Helper()
	if err := s.queries.CreateLostFoundItem(t.Context(), db.CreateLostFoundItemParams{
		ID:             id,
		ReporterID:     reporterID,
		ItemName:       itemName,
		Type:           itemType,
		Location:       "Library",
		Status:         "open",
		UniversityName: universityName,
	}); err != nil {
		t.Fatalf("テスト用報告の作成に失敗: %v", err)
	}
}

// TestHandleListLostFoundItems は報告一覧取得ハンドラのテスト。
func TestHandleListLostFoundItems(t *testing.T) {
	t.Parallel()

	t.Run("自大学の報告を報告者名付きで取得できる", func(t *testing.T) {
		t.Parallel()
		s, router := setupTestServer(t)
		createTestProfile(t, s, "user-1", "山田太郎", "Demo University")
		createTestLostFoundItem(t, s, "lf-1", "user-1", "財布", "lost", "Demo University")
		// 他大学の報告は含まれないことを確認するため
		createTestLostFoundItem(t, s, "lf-2", "user-1", "他大学の報告", "lost", "Other University")

		w := doRequest(router, http.MethodGet, "/api/v1/lostfound", "user-1", "Demo University", nil)

		if w.Code != http.StatusOK {
			t.Errorf("ステータスコード: got %d, want %d", w.Code, http.StatusOK)
		}

		result := parseJSON(t, w)
		items := pagedItems(t, result)
		if len(items) != 1 {
			t.Fatalf("件数: got %d, want 1", len(items))
		}
		item := items[0].(map[string]any)
		if item["reporterName"] != "山田太郎" {
			t.Errorf("reporterName: got %v, want 山田太郎", item["reporterName"])
		}
	})

	t.Run("報告者のプロファイルが無い場合はAnonymous", func(t *testing.T) {
		t.Parallel()
		s, router := setupTestServer(t)
		createTestLostFoundItem(t, s, "lf-1", "ghost-user", "財布", "lost", "Demo University")

		w := doRequest(router, http.MethodGet, "/api/v1/lostfound", "user-1", "Demo University", nil)

		result := parseJSON(t, w)
		items := pagedItems(t, result)
		if len(items) != 1 {
			t.Fatalf("件数: got %d, want 1", len(items))
		}
		item := items[0].(map[string]any)
		if item["reporterName"] != "Anonymous" {
			t.Errorf("reporterName: got %v, want Anonymous", item["reporterName"])
		}
	})

	t.Run("typeで絞り込める", func(t *testing.T) {
		t.Parallel()
		s, router := setupTestServer(t)
		createTestProfile(t, s, "user-1", "山田太郎", "Demo University")
		createTestLostFoundItem(t, s, "lf-1", "user-1", "財布", "lost", "Demo University")
		createTestLostFoundItem(t, s, "lf-2", "user-1", "傘", "found", "Demo University")

		w := doRequest(router, http.MethodGet, "/api/v1/lostfound?type=found", "user-1", "Demo University", nil)

		result := parseJSON(t, w)
		items := pagedItems(t, result)
		if len(items) != 1 {
			t.Fatalf("件数: got %d, want 1", len(items))
		}
		item := items[0].(map[string]any)
		if item["itemName"] != "傘" {
			t.Errorf("itemName: got %v, want 傘", item["itemName"])
		}
	})

	t.Run("テナントコンテキストが無い場合は空ページを返す", func(t *testing.T) {
		t.Parallel()
		s, router := setupTestServer(t)
		createTestLostFoundItem(t, s, "lf-1", "user-1", "財布", "lost", "Demo University")

		w := doRequest(router, http.MethodGet, "/api/v1/lostfound", "user-1", "", nil)

		result := parseJSON(t, w)
		if len(pagedItems(t, result)) != 0 {
			t.Errorf("件数: got %d, want 0", len(pagedItems(t, result)))
		}
	})
}

// TestHandleCreateLostFoundItem は報告作成ハンドラのテスト。
func TestHandleCreateLostFoundItem(t *testing.T) {
	t.Parallel()

	t.Run("正常に報告を作成できる", func(t *testing.T) {
		t.Parallel()
		s, router := setupTestServer(t)
		createTestProfile(t, s, "user-1", "山田太郎", "Demo University")

		body := map[string]string{
			"itemName":    "学生証",
			"description": "青いケース入り",
			"type":        "found",
			"location":    "Cafeteria",
		}
		w := doRequest(router, http.MethodPost, "/api/v1/lostfound", "user-1", "Demo University", body)

		if w.Code != http.StatusCreated {
			t.Errorf("ステータスコード: got %d, want %d, body=%s", w.Code, http.StatusCreated, w.Body.String())
		}

		result := parseJSON(t, w)
		if result["itemName"] != "学生証" {
			t.Errorf("itemName: got %v, want 学生証", result["itemName"])
		}
		if result["status"] != "open" {
			t.Errorf("status: got %v, want open", result["status"])
		}
		if result["reporterName"] != "山田太郎" {
			t.Errorf("reporterName: got %v, want 山田太郎", result["reporterName"])
		}
	})

	t.Run("typeが不正な場合はBadRequest", func(t *testing.T) {
		t.Parallel()
		_, router := setupTestServer(t)

		body := map[string]string{"itemName": "学生証", "type": "stolen"}
		w := doRequest(router, http.MethodPost, "/api/v1/lostfound", "user-1", "Demo University", body)

		if w.Code != http.StatusBadRequest {
			t.Errorf("ステータスコード: got %d, want %d", w.Code, http.StatusBadRequest)
		}

		result := parseJSON(t, w)
		if result["error"] != "Type must be 'lost' or 'found'" {
			t.Errorf("error: got %v", result["error"])
		}
	})

	t.Run("テナントコンテキストが無い場合はUnauthorized", func(t *testing.T) {
		t.Parallel()
		_, router := setupTestServer(t)

		body := map[string]string{"itemName": "学生証", "type": "found"}
		w := doRequest(router, http.MethodPost, "/api/v1/lostfound", "user-1", "", body)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("ステータスコード: got %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})
}

// TestHandleGetLostFoundItem は報告詳細取得ハンドラのテスト。
func TestHandleGetLostFoundItem(t *testing.T) {
	t.Parallel()

	t.Run("報告者情報付きで詳細を取得できる", func(t *testing.T) {
		t.Parallel()
		s, router := setupTestServer(t)
		createTestProfile(t, s, "user-1", "山田太郎", "Demo University")
		createTestLostFoundItem(t, s, "lf-1", "user-1", "財布", "lost", "Demo University")

		w := doRequest(router, http.MethodGet, "/api/v1/lostfound/lf-1", "user-2", "Demo University", nil)

		if w.Code != http.StatusOK {
			t.Errorf("ステータスコード: got %d, want %d", w.Code, http.StatusOK)
		}

		result := parseJSON(t, w)
		reporter, ok := result["reporter"].(map[string]any)
		if !ok {
			t.Fatalf("reporterがオブジェクトではありません: %v", result["reporter"])
		}
		if reporter["fullName"] != "山田太郎" {
			t.Errorf("reporter.fullName: got %v, want 山田太郎", reporter["fullName"])
		}
	})

	t.Run("報告者のプロファイルが無い場合はreporterがnull", func(t *testing.T) {
		t.Parallel()
		s, router := setupTestServer(t)
		createTestLostFoundItem(t, s, "lf-1", "ghost-user", "財布", "lost", "Demo University")

		w := doRequest(router, http.MethodGet, "/api/v1/lostfound/lf-1", "user-1", "Demo University", nil)

		result := parseJSON(t, w)
		if result["reporter"] != nil {
			t.Errorf("reporter: got %v, want nil", result["reporter"])
		}
		if result["reporterName"] != "Anonymous" {
			t.Errorf("reporterName: got %v, want Anonymous", result["reporterName"])
		}
	})

	t.Run("存在しないIDの場合はNotFound", func(t *testing.T) {
		t.Parallel()
		_, router := setupTestServer(t)

		w := doRequest(router, http.MethodGet, "/api/v1/lostfound/no-such-item", "user-1", "Demo University", nil)

		if w.Code != http.StatusNotFound {
			t.Errorf("ステータスコード: got %d, want %d", w.Code, http.StatusNotFound)
		}
	})
}
