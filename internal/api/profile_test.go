package api

import (
	"net/http"
	"testing"
)

// TestHandleGetMyProfile は自分のプロファイル取得ハンドラのテスト。
func TestHandleGetMyProfile(t *testing.T) {
	t.Parallel()

	t.Run("自分のプロファイルを取得できる", func(t *testing.T) {
		t.Parallel()
		s, router := setupTestServer(t)
		createTestProfile(t, s, "user-1", "山田太郎", "Demo University")

		w := doRequest(router, http.MethodGet, "/api/v1/profiles/me", "user-1", "Demo University", nil)

		if w.Code != http.StatusOK {
			t.Errorf("ステータスコード: got %d, want %d, body=%s", w.Code, http.StatusOK, w.Body.String())
		}

		result := parseJSON(t, w)
		if result["id"] != "user-1" {
			t.Errorf("id: got %v, want user-1", result["id"])
		}
		if result["fullName"] != "山田太郎" {
			t.Errorf("fullName: got %v, want 山田太郎", result["fullName"])
		}
		if result["universityName"] != "Demo University" {
			t.Errorf("universityName: got %v, want Demo University", result["universityName"])
		}
	})

	t.Run("プロファイル行が無い場合はNotFound", func(t *testing.T) {
		t.Parallel()
		_, router := setupTestServer(t)

		w := doRequest(router, http.MethodGet, "/api/v1/profiles/me", "user-1", "", nil)

		if w.Code != http.StatusNotFound {
			t.Errorf("ステータスコード: got %d, want %d", w.Code, http.StatusNotFound)
		}
	})

	t.Run("ユーザーIDが未設定の場合はUnauthorized", func(t *testing.T) {
		t.Parallel()
		_, router := setupTestServer(t)

		w := doRequest(router, http.MethodGet, "/api/v1/profiles/me", "", "", nil)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("ステータスコード: got %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})
}

// TestHandleCompleteOnboarding はオンボーディング完了ハンドラのテスト。
func TestHandleCompleteOnboarding(t *testing.T) {
	t.Parallel()

	t.Run("既存プロファイルのオンボーディングを完了できる", func(t *testing.T) {
		t.Parallel()
		s, router := setupTestServer(t)
		createTestProfile(t, s, "user-1", "山田太郎", "")

		body := map[string]string{"universityName": "Demo University"}
		w := doRequest(router, http.MethodPatch, "/api/v1/profiles/onboarding", "user-1", "", body)

		if w.Code != http.StatusOK {
			t.Errorf("ステータスコード: got %d, want %d, body=%s", w.Code, http.StatusOK, w.Body.String())
		}

		result := parseJSON(t, w)
		if result["universityName"] != "Demo University" {
			t.Errorf("universityName: got %v, want Demo University", result["universityName"])
		}
		if result["onboardingCompleted"] != true {
			t.Errorf("onboardingCompleted: got %v, want true", result["onboardingCompleted"])
		}
	})

	t.Run("プロファイル行が無い場合は作成して完了する", func(t *testing.T) {
		t.Parallel()
		_, router := setupTestServer(t)

		body := map[string]string{"universityName": "Demo University"}
		w := doRequest(router, http.MethodPatch, "/api/v1/profiles/onboarding", "fresh-user", "", body)

		if w.Code != http.StatusOK {
			t.Errorf("ステータスコード: got %d, want %d, body=%s", w.Code, http.StatusOK, w.Body.String())
		}

		result := parseJSON(t, w)
		if result["id"] != "fresh-user" {
			t.Errorf("id: got %v, want fresh-user", result["id"])
		}
		if result["onboardingCompleted"] != true {
			t.Errorf("onboardingCompleted: got %v, want true", result["onboardingCompleted"])
		}
	})

	t.Run("大学名が未指定の場合はBadRequest", func(t *testing.T) {
		t.Parallel()
		_, router := setupTestServer(t)

		w := doRequest(router, http.MethodPatch, "/api/v1/profiles/onboarding", "user-1", "", map[string]string{})

		if w.Code != http.StatusBadRequest {
			t.Errorf("ステータスコード: got %d, want %d", w.Code, http.StatusBadRequest)
		}

		result := parseJSON(t, w)
		if result["error"] != "University Name is required" {
			t.Errorf("error: got %v, want University Name is required", result["error"])
		}
	})
}

// TestHandleGetProfile はプロファイル取得ハンドラのテスト。
func TestHandleGetProfile(t *testing.T) {
	t.Parallel()

	t.Run("他ユーザーのプロファイルを取得できる", func(t *testing.T) {
		t.Parallel()
		s, router := setupTestServer(t)
		createTestProfile(t, s, "user-2", "佐藤花子", "Demo University")

		w := doRequest(router, http.MethodGet, "/api/v1/profiles/user-2", "user-1", "Demo University", nil)

		if w.Code != http.StatusOK {
			t.Errorf("ステータスコード: got %d, want %d", w.Code, http.StatusOK)
		}

		result := parseJSON(t, w)
		if result["fullName"] != "佐藤花子" {
			t.Errorf("fullName: got %v, want 佐藤花子", result["fullName"])
		}
	})

	t.Run("存在しないIDの場合はNotFound", func(t *testing.T) {
		t.Parallel()
		_, router := setupTestServer(t)

		w := doRequest(router, http.MethodGet, "/api/v1/profiles/no-such-user", "user-1", "Demo University", nil)

		if w.Code != http.StatusNotFound {
			t.Errorf("ステータスコード: got %d, want %d", w.Code, http.StatusNotFound)
		}

		result := parseJSON(t, w)
		if result["error"] != "Profile not found" {
			t.Errorf("error: got %v, want Profile not found", result["error"])
		}
	})
}

// TestHandleUpdateProfile はプロファイル更新ハンドラのテスト。
func TestHandleUpdateProfile(t *testing.T) {
	t.Parallel()

	t.Run("自分のプロファイルを更新できる", func(t *testing.T) {
		t.Parallel()
		s, router := setupTestServer(t)
		createTestProfile(t, s, "user-1", "山田太郎", "Demo University")

		body := map[string]string{"department": "Economics", "mobileNumber": "8888888888"}
		w := doRequest(router, http.MethodPatch, "/api/v1/profiles/user-1", "user-1", "Demo University", body)

		if w.Code != http.StatusOK {
			t.Errorf("ステータスコード: got %d, want %d, body=%s", w.Code, http.StatusOK, w.Body.String())
		}

		result := parseJSON(t, w)
		if result["department"] != "Economics" {
			t.Errorf("department: got %v, want Economics", result["department"])
		}
		if result["mobileNumber"] != "8888888888" {
			t.Errorf("mobileNumber: got %v, want 8888888888", result["mobileNumber"])
		}
		// 未指定のフィールドは維持される
		if result["class"] != "2nd Year" {
			t.Errorf("class: got %v, want 2nd Year", result["class"])
		}
	})

	t.Run("他ユーザーのプロファイルは更新できない", func(t *testing.T) {
		t.Parallel()
		s, router := setupTestServer(t)
		createTestProfile(t, s, "user-2", "佐藤花子", "Demo University")

		body := map[string]string{"department": "Economics"}
		w := doRequest(router, http.MethodPatch, "/api/v1/profiles/user-2", "user-1", "Demo University", body)

		if w.Code != http.StatusForbidden {
			t.Errorf("ステータスコード: got %d, want %d", w.Code, http.StatusForbidden)
		}

		result := parseJSON(t, w)
		if result["error"] != "Unauthorized - can only update your own profile" {
			t.Errorf("error: got %v", result["error"])
		}
	})

	t.Run("更新対象フィールドが無い場合はBadRequest", func(t *testing.T) {
		t.Parallel()
		s, router := setupTestServer(t)
		createTestProfile(t, s, "user-1", "山田太郎", "Demo University")

		w := doRequest(router, http.MethodPatch, "/api/v1/profiles/user-1", "user-1", "Demo University", map[string]string{})

		if w.Code != http.StatusBadRequest {
			t.Errorf("ステータスコード: got %d, want %d", w.Code, http.StatusBadRequest)
		}

		result := parseJSON(t, w)
		if result["error"] != "No valid fields to update" {
			t.Errorf("error: got %v, want No valid fields to update", result["error"])
		}
	})
}

// TestHandleVerifyProfile は本人確認ハンドラのテスト。
func TestHandleVerifyProfile(t *testing.T) {
	t.Parallel()

	t.Run("学生証URLを登録して本人確認できる", func(t *testing.T) {
		t.Parallel()
		s, router := setupTestServer(t)
		createTestProfile(t, s, "user-1", "山田太郎", "Demo University")

		body := map[string]string{"idCardUrl": "https://example.com/idcard.jpg"}
		w := doRequest(router, http.MethodPost, "/api/v1/profiles/user-1/verify", "user-1", "Demo University", body)

		if w.Code != http.StatusOK {
			t.Errorf("ステータスコード: got %d, want %d, body=%s", w.Code, http.StatusOK, w.Body.String())
		}

		result := parseJSON(t, w)
		if result["message"] != "Profile verified successfully" {
			t.Errorf("message: got %v, want Profile verified successfully", result["message"])
		}

		p, err := s.queries.GetProfileByID(t.Context(), "user-1")
		if err != nil {
			t.Fatalf("プロファイル取得に失敗: %v", err)
		}
		if !p.IsVerified {
			t.Error("IsVerifiedがfalseです")
		}
		if p.IDCardURL != "https://example.com/idcard.jpg" {
			t.Errorf("IDCardURL: got %s", p.IDCardURL)
		}
	})

	t.Run("学生証URLが未指定の場合はBadRequest", func(t *testing.T) {
		t.Parallel()
		s, router := setupTestServer(t)
		createTestProfile(t, s, "user-1", "山田太郎", "Demo University")

		w := doRequest(router, http.MethodPost, "/api/v1/profiles/user-1/verify", "user-1", "Demo University", map[string]string{})

		if w.Code != http.StatusBadRequest {
			t.Errorf("ステータスコード: got %d, want %d", w.Code, http.StatusBadRequest)
		}

		result := parseJSON(t, w)
		if result["error"] != "ID Card URL required" {
			t.Errorf("error: got %v, want ID Card URL required", result["error"])
		}
	})

	t.Run("他ユーザーのプロファイルは本人確認できない", func(t *testing.T) {
		t.Parallel()
		s, router := setupTestServer(t)
		createTestProfile(t, s, "user-2", "佐藤花子", "Demo University")

		body := map[string]string{"idCardUrl": "https://example.com/idcard.jpg"}
		w := doRequest(router, http.MethodPost, "/api/v1/profiles/user-2/verify", "user-1", "Demo University", body)

		if w.Code != http.StatusForbidden {
			t.Errorf("ステータスコード: got %d, want %d", w.Code, http.StatusForbidden)
		}
	})
}
