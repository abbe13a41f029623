package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nao1215/unmarky/internal/api/db"
	"github.com/nao1215/unmarky/pkg/middleware"
)

// onboardingRequest はオンボーディング完了リクエストのJSON構造。
type onboardingRequest struct {
	// UniversityName は選択した大学名。
	UniversityName string `json:"universityName"`
}

// updateProfileRequest はプロファイル更新リクエストのJSON構造。
// nilのフィールドは更新しない。
type updateProfileRequest struct {
	// Department は学部。
	Department *string `json:"department"`
	// Class はクラス・学年。
	Class *string `json:"class"`
	// MobileNumber は携帯番号。
	MobileNumber *string `json:"mobileNumber"`
}

// verifyProfileRequest は本人確認リクエストのJSON構造。
type verifyProfileRequest struct {
	// IDCardURL はアップロード済み学生証画像のURL。
	IDCardURL string `json:"idCardUrl"`
}

// profileResponse はプロファイルのJSONレスポンス構造。
type profileResponse struct {
	// ID はサブジェクトID。
	ID string `json:"id"`
	// FullName は氏名。
	FullName string `json:"fullName"`
	// UniversityName は所属大学名。
	UniversityName string `json:"universityName"`
	// Department は学部。
	Department string `json:"department"`
	// Class はクラス・学年。
	Class string `json:"class"`
	// MobileNumber は携帯番号。
	MobileNumber string `json:"mobileNumber"`
	// IDCardURL は学生証画像のURL。
	IDCardURL string `json:"idCardUrl"`
	// IsVerified は本人確認済みフラグ。
	IsVerified bool `json:"isVerified"`
	// OnboardingCompleted はオンボーディング完了フラグ。
	OnboardingCompleted bool `json:"onboardingCompleted"`
	// CreatedAt は作成日時。
	CreatedAt string `json:"createdAt"`
	// UpdatedAt は更新日時。
	UpdatedAt string `json:"updatedAt"`
}

// toProfileResponse はDB行をJSONレスポンスに変換する。
func toProfileResponse(p db.Profile) profileResponse {
	return profileResponse{
		ID:                  p.ID,
		FullName:            p.FullName,
		UniversityName:      p.UniversityName,
		Department:          p.Department,
		Class:               p.Class,
		MobileNumber:        p.MobileNumber,
		IDCardURL:           p.IDCardURL,
		IsVerified:          p.IsVerified,
		OnboardingCompleted: p.OnboardingCompleted,
		CreatedAt:           p.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:           p.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// handleGetMyProfile は認証済みユーザー自身のプロファイル取得を処理するハンドラを返す。
func (s *Server) handleGetMyProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		p, err := s.queries.GetProfileByID(c.Request.Context(), userID)
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		if err != nil {
			s.logger.Error("プロファイル取得に失敗", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
			return
		}

		c.JSON(http.StatusOK, toProfileResponse(p))
	}
}

// handleCompleteOnboarding はオンボーディング完了（大学選択）を処理するハンドラを返す。
// プロファイル行が未作成の場合は作成した上で完了フラグを立てる。
func (s *Server) handleCompleteOnboarding() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req onboardingRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.UniversityName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "University Name is required"})
			return
		}

		_, err := s.queries.GetProfileByID(c.Request.Context(), userID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// 上流ID基盤とのプロビジョニング競合で行が無いことがある。
			if err := s.queries.CreateProfile(c.Request.Context(), db.CreateProfileParams{
				ID:                  userID,
				UniversityName:      req.UniversityName,
				OnboardingCompleted: true,
			}); err != nil {
				s.logger.Error("プロファイル作成に失敗", zap.String("user_id", userID), zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete onboarding"})
				return
			}
		case err != nil:
			s.logger.Error("プロファイル取得に失敗", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete onboarding"})
			return
		default:
			if err := s.queries.CompleteOnboarding(c.Request.Context(), db.CompleteOnboardingParams{
				UniversityName: req.UniversityName,
				ID:             userID,
			}); err != nil {
				s.logger.Error("オンボーディング完了の記録に失敗", zap.String("user_id", userID), zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete onboarding"})
				return
			}
		}

		updated, err := s.queries.GetProfileByID(c.Request.Context(), userID)
		if err != nil {
			s.logger.Error("更新後プロファイルの取得に失敗", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete onboarding"})
			return
		}

		c.JSON(http.StatusOK, toProfileResponse(updated))
	}
}

// handleGetProfile はプロファイル取得を処理するハンドラを返す。
func (s *Server) handleGetProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := c.Param("id")

		p, err := s.queries.GetProfileByID(c.Request.Context(), profileID)
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		if err != nil {
			s.logger.Error("プロファイル取得に失敗", zap.String("profile_id", profileID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
			return
		}

		c.JSON(http.StatusOK, toProfileResponse(p))
	}
}

// handleUpdateProfile はプロファイル更新を処理するハンドラを返す。
// 本人のみ更新でき、更新可能なフィールドは学部・クラス・携帯番号に限定する。
func (s *Server) handleUpdateProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		profileID := c.Param("id")
		if userID == "" || userID != profileID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized - can only update your own profile"})
			return
		}

		var req updateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if req.Department == nil && req.Class == nil && req.MobileNumber == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
			return
		}

		current, err := s.queries.GetProfileByID(c.Request.Context(), profileID)
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		if err != nil {
			s.logger.Error("プロファイル取得に失敗", zap.String("profile_id", profileID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}

		// 指定されなかったフィールドは現在の値を維持する。
		params := db.UpdateProfileContactParams{
			Department:   current.Department,
			Class:        current.Class,
			MobileNumber: current.MobileNumber,
			ID:           profileID,
		}
		if req.Department != nil {
			params.Department = *req.Department
		}
		if req.Class != nil {
			params.Class = *req.Class
		}
		if req.MobileNumber != nil {
			params.MobileNumber = *req.MobileNumber
		}

		if err := s.queries.UpdateProfileContact(c.Request.Context(), params); err != nil {
			s.logger.Error("プロファイル更新に失敗", zap.String("profile_id", profileID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}

		updated, err := s.queries.GetProfileByID(c.Request.Context(), profileID)
		if err != nil {
			s.logger.Error("更新後プロファイルの取得に失敗", zap.String("profile_id", profileID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}

		c.JSON(http.StatusOK, toProfileResponse(updated))
	}
}

// handleVerifyProfile は学生証による本人確認を処理するハンドラを返す。
func (s *Server) handleVerifyProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		profileID := c.Param("id")
		if userID == "" || userID != profileID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized - can only verify your own profile"})
			return
		}

		var req verifyProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.IDCardURL == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ID Card URL required"})
			return
		}

		if err := s.queries.MarkProfileVerified(c.Request.Context(), db.MarkProfileVerifiedParams{
			IDCardURL: req.IDCardURL,
			ID:        profileID,
		}); err != nil {
			s.logger.Error("本人確認の記録に失敗", zap.String("profile_id", profileID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify profile"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Profile verified successfully"})
	}
}
