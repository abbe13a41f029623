package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nao1215/unmarky/internal/api/db"
	"github.com/nao1215/unmarky/pkg/middleware"
)

// createSocialPostRequest は投稿作成リクエストのJSON構造。
type createSocialPostRequest struct {
	// Content は投稿本文。
	Content string `json:"content" binding:"required"`
}

// socialPostResponse は投稿のJSONレスポンス構造。
type socialPostResponse struct {
	// ID は投稿の一意識別子。
	ID string `json:"id"`
	// AuthorID は投稿者のID。
	AuthorID string `json:"authorId"`
	// Content は投稿本文。
	Content string `json:"content"`
	// LikesCount はいいね数。
	LikesCount int64 `json:"likesCount"`
	// UniversityName は投稿が属する大学名。
	UniversityName string `json:"universityName"`
	// CreatedAt は作成日時。
	CreatedAt string `json:"createdAt"`
	// UpdatedAt は更新日時。
	UpdatedAt string `json:"updatedAt"`
}

// toSocialPostResponse はDB行をJSONレスポンスに変換する。
func toSocialPostResponse(p db.SocialPost) socialPostResponse {
	return socialPostResponse{
		ID:             p.ID,
		AuthorID:       p.AuthorID,
		Content:        p.Content,
		LikesCount:     p.LikesCount,
		UniversityName: p.UniversityName,
		CreatedAt:      p.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:      p.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// handleListSocialPosts は投稿一覧取得を処理するハンドラを返す。
// 大学スコープで新しい順に返す。テナントコンテキストが無い場合は空配列。
func (s *Server) handleListSocialPosts() gin.HandlerFunc {
	return func(c *gin.Context) {
		universityName := middleware.GetUniversityName(c)
		if universityName == "" {
			c.JSON(http.StatusOK, []socialPostResponse{})
			return
		}

		posts, err := s.queries.ListSocialPostsByUniversity(c.Request.Context(), universityName)
		if err != nil {
			s.logger.Error("投稿一覧の取得に失敗", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
			return
		}

		responses := make([]socialPostResponse, 0, len(posts))
		for _, p := range posts {
			responses = append(responses, toSocialPostResponse(p))
		}

		c.JSON(http.StatusOK, responses)
	}
}

// handleCreateSocialPost は投稿作成を処理するハンドラを返す。
func (s *Server) handleCreateSocialPost() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		universityName := middleware.GetUniversityName(c)
		if userID == "" || universityName == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized or missing profile context"})
			return
		}

		var req createSocialPostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
			return
		}

		postID := uuid.New().String()
		if err := s.queries.CreateSocialPost(c.Request.Context(), db.CreateSocialPostParams{
			ID:             postID,
			AuthorID:       userID,
			Content:        req.Content,
			UniversityName: universityName,
		}); err != nil {
			s.logger.Error("投稿作成に失敗", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
			return
		}

		created, err := s.queries.GetSocialPostByID(c.Request.Context(), postID)
		if err != nil {
			s.logger.Error("作成した投稿の取得に失敗", zap.String("post_id", postID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
			return
		}

		c.JSON(http.StatusCreated, toSocialPostResponse(created))
	}
}
