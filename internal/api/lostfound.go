package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nao1215/unmarky/internal/api/db"
	"github.com/nao1215/unmarky/pkg/middleware"
)

// anonymousReporterName は報告者の氏名が引けない場合の表示名。
const anonymousReporterName = "Anonymous"

// createLostFoundItemRequest は報告作成リクエストのJSON構造。
type createLostFoundItemRequest struct {
	// ItemName は物品名。
	ItemName string `json:"itemName" binding:"required"`
	// Description は物品の説明。
	Description string `json:"description"`
	// Type は "lost"（紛失）または "found"（拾得）。
	Type string `json:"type" binding:"required"`
	// Location は紛失・発見場所。
	Location string `json:"location"`
	// ImageURL は物品画像のURL。
	ImageURL string `json:"imageUrl"`
}

// lostFoundItemResponse は報告のJSONレスポンス構造。
type lostFoundItemResponse struct {
	// ID は報告の一意識別子。
	ID string `json:"id"`
	// ReporterID は報告者のID。
	ReporterID string `json:"reporterId"`
	// ReporterName は報告者の表示名。プロファイルが引けない場合は "Anonymous"。
	ReporterName string `json:"reporterName"`
	// ItemName は物品名。
	ItemName string `json:"itemName"`
	// Description は物品の説明。
	Description string `json:"description"`
	// Type は "lost" または "found"。
	Type string `json:"type"`
	// Location は紛失・発見場所。
	Location string `json:"location"`
	// ImageURL は物品画像のURL。
	ImageURL string `json:"imageUrl"`
	// Status は報告の状態（"open" / "resolved"）。
	Status string `json:"status"`
	// UniversityName は報告が属する大学名。
	UniversityName string `json:"universityName"`
	// CreatedAt は作成日時。
	CreatedAt string `json:"createdAt"`
	// UpdatedAt は更新日時。
	UpdatedAt string `json:"updatedAt"`
}

// reporterResponse は報告詳細に含める報告者情報のJSONレスポンス構造。
type reporterResponse struct {
	// FullName は報告者の氏名。
	FullName string `json:"fullName"`
	// MobileNumber は報告者の携帯番号。
	MobileNumber string `json:"mobileNumber"`
	// Department は報告者の学部。
	Department string `json:"department"`
}

// lostFoundItemDetailResponse は報告詳細のJSONレスポンス構造。
// 報告者のプロファイル行が無い場合、reporterはnullになる。
type lostFoundItemDetailResponse struct {
	lostFoundItemResponse
	// Reporter は報告者情報。
	Reporter *reporterResponse `json:"reporter"`
}

// toLostFoundItemResponse はDB行をJSONレスポンスに変換する。
func toLostFoundItemResponse(l db.LostFoundItem, reporterName string) lostFoundItemResponse {
	if reporterName == "" {
		reporterName = anonymousReporterName
	}
	return lostFoundItemResponse{
		ID:             l.ID,
		ReporterID:     l.ReporterID,
		ReporterName:   reporterName,
		ItemName:       l.ItemName,
		Description:    l.Description,
		Type:           l.Type,
		Location:       l.Location,
		ImageURL:       l.ImageURL,
		Status:         l.Status,
		UniversityName: l.UniversityName,
		CreatedAt:      l.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:      l.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// handleListLostFoundItems は報告一覧取得を処理するハンドラを返す。
// 大学スコープでページングし、typeクエリ（lost/found）で絞り込める。
func (s *Server) handleListLostFoundItems() gin.HandlerFunc {
	return func(c *gin.Context) {
		universityName := middleware.GetUniversityName(c)
		if universityName == "" {
			c.JSON(http.StatusOK, emptyPage())
			return
		}

		limit, offset := pageParams(c)
		itemType := c.Query("type")
		if itemType != "lost" && itemType != "found" {
			itemType = ""
		}

		total, err := s.queries.CountLostFoundItems(c.Request.Context(), db.CountLostFoundItemsParams{
			UniversityName: universityName,
			Type:           itemType,
		})
		if err != nil {
			s.logger.Error("報告数の取得に失敗", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
			return
		}

		items, err := s.queries.ListLostFoundItems(c.Request.Context(), db.ListLostFoundItemsParams{
			UniversityName: universityName,
			Type:           itemType,
			Limit:          limit,
			Offset:         offset,
		})
		if err != nil {
			s.logger.Error("報告一覧の取得に失敗", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
			return
		}

		responses := make([]lostFoundItemResponse, 0, len(items))
		for _, item := range items {
			responses = append(responses, toLostFoundItemResponse(item.Item, item.ReporterFullName))
		}

		c.JSON(http.StatusOK, pagedResponse{
			Items:   responses,
			HasMore: offset+int64(len(items)) < total,
			Total:   total,
		})
	}
}

// handleCreateLostFoundItem は報告作成を処理するハンドラを返す。
// 状態は"open"で作成され、報告は認証済みユーザーの所属大学に属する。
func (s *Server) handleCreateLostFoundItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		universityName := middleware.GetUniversityName(c)
		if userID == "" || universityName == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized or missing profile context"})
			return
		}

		var req createLostFoundItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Item name and type are required"})
			return
		}
		if req.Type != "lost" && req.Type != "found" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Type must be 'lost' or 'found'"})
			return
		}

		itemID := uuid.New().String()
		if err := s.queries.CreateLostFoundItem(c.Request.Context(), db.CreateLostFoundItemParams{
			ID:             itemID,
			ReporterID:     userID,
			ItemName:       req.ItemName,
			Description:    req.Description,
			Type:           req.Type,
			Location:       req.Location,
			ImageURL:       req.ImageURL,
			Status:         "open",
			UniversityName: universityName,
		}); err != nil {
			s.logger.Error("報告作成に失敗", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
			return
		}

		created, err := s.queries.GetLostFoundItemByID(c.Request.Context(), itemID)
		if err != nil {
			s.logger.Error("作成した報告の取得に失敗", zap.String("item_id", itemID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
			return
		}

		p, err := s.queries.GetProfileByID(c.Request.Context(), userID)
		reporterName := ""
		if err == nil {
			reporterName = p.FullName
		}

		c.JSON(http.StatusCreated, toLostFoundItemResponse(created, reporterName))
	}
}

// handleGetLostFoundItem は報告詳細取得を処理するハンドラを返す。
// 報告者の連絡先情報を併せて返す。
func (s *Server) handleGetLostFoundItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID := c.Param("id")

		result, err := s.queries.GetLostFoundItemWithReporter(c.Request.Context(), itemID)
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		if err != nil {
			s.logger.Error("報告詳細の取得に失敗", zap.String("item_id", itemID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch item"})
			return
		}

		resp := lostFoundItemDetailResponse{
			lostFoundItemResponse: toLostFoundItemResponse(result.Item, result.ReporterFullName),
		}
		if result.ReporterFound {
			resp.Reporter = &reporterResponse{
				FullName:     result.ReporterFullName,
				MobileNumber: result.ReporterMobileNumber,
				Department:   result.ReporterDepartment,
			}
		}

		c.JSON(http.StatusOK, resp)
	}
}
