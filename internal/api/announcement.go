package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nao1215/unmarky/internal/api/db"
	"github.com/nao1215/unmarky/pkg/middleware"
)

// createAnnouncementRequest はお知らせ作成リクエストのJSON構造。
type createAnnouncementRequest struct {
	// Title はお知らせのタイトル。
	Title string `json:"title" binding:"required"`
	// Content はお知らせの本文。
	Content string `json:"content" binding:"required"`
}

// announcementResponse はお知らせのJSONレスポンス構造。
type announcementResponse struct {
	// ID はお知らせの一意識別子。
	ID string `json:"id"`
	// Title はお知らせのタイトル。
	Title string `json:"title"`
	// Content はお知らせの本文。
	Content string `json:"content"`
	// UniversityName はお知らせが属する大学名。
	UniversityName string `json:"universityName"`
	// CreatedAt は作成日時。
	CreatedAt string `json:"createdAt"`
}

// toAnnouncementResponse はDB行をJSONレスポンスに変換する。
func toAnnouncementResponse(a db.Announcement) announcementResponse {
	return announcementResponse{
		ID:             a.ID,
		Title:          a.Title,
		Content:        a.Content,
		UniversityName: a.UniversityName,
		CreatedAt:      a.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// handleListAnnouncements はお知らせ一覧取得を処理するハンドラを返す。
// 大学スコープで新しい順に返す。テナントコンテキストが無い場合は400。
func (s *Server) handleListAnnouncements() gin.HandlerFunc {
	return func(c *gin.Context) {
		universityName := middleware.GetUniversityName(c)
		if universityName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "University required"})
			return
		}

		announcements, err := s.queries.ListAnnouncementsByUniversity(c.Request.Context(), universityName)
		if err != nil {
			s.logger.Error("お知らせ一覧の取得に失敗", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch announcements"})
			return
		}

		responses := make([]announcementResponse, 0, len(announcements))
		for _, a := range announcements {
			responses = append(responses, toAnnouncementResponse(a))
		}

		c.JSON(http.StatusOK, responses)
	}
}

// handleCreateAnnouncement はお知らせ作成を処理するハンドラを返す。
func (s *Server) handleCreateAnnouncement() gin.HandlerFunc {
	return func(c *gin.Context) {
		universityName := middleware.GetUniversityName(c)
		if universityName == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized or missing profile context"})
			return
		}

		var req createAnnouncementRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title and content are required"})
			return
		}

		announcementID := uuid.New().String()
		if err := s.queries.CreateAnnouncement(c.Request.Context(), db.CreateAnnouncementParams{
			ID:             announcementID,
			Title:          req.Title,
			Content:        req.Content,
			UniversityName: universityName,
		}); err != nil {
			s.logger.Error("お知らせ作成に失敗", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create announcement"})
			return
		}

		created, err := s.queries.GetAnnouncementByID(c.Request.Context(), announcementID)
		if err != nil {
			s.logger.Error("作成したお知らせの取得に失敗", zap.String("announcement_id", announcementID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create announcement"})
			return
		}

		c.JSON(http.StatusCreated, toAnnouncementResponse(created))
	}
}
