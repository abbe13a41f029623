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

// createMarketplaceItemRequest は出品作成リクエストのJSON構造。
type createMarketplaceItemRequest struct {
	// Title は商品名。
	Title string `json:"title" binding:"required"`
	// Description は商品の説明。
	Description string `json:"description"`
	// Price は価格。
	Price float64 `json:"price" binding:"required"`
	// Category は商品カテゴリ。
	Category string `json:"category"`
	// Condition は商品の状態（例: "Like New"）。
	Condition string `json:"condition"`
	// ManufacturedYear は製造年。
	ManufacturedYear string `json:"manufacturedYear"`
	// IsNegotiable は価格交渉可フラグ。
	IsNegotiable bool `json:"isNegotiable"`
	// ImageURL は商品画像のURL。
	ImageURL string `json:"imageUrl"`
}

// marketplaceItemResponse は出品のJSONレスポンス構造。
type marketplaceItemResponse struct {
	// ID は出品の一意識別子。
	ID string `json:"id"`
	// SellerID は出品者のID。
	SellerID string `json:"sellerId"`
	// Title は商品名。
	Title string `json:"title"`
	// Description は商品の説明。
	Description string `json:"description"`
	// Price は価格。
	Price float64 `json:"price"`
	// Category は商品カテゴリ。
	Category string `json:"category"`
	// Condition は商品の状態。
	Condition string `json:"condition"`
	// ManufacturedYear は製造年。
	ManufacturedYear string `json:"manufacturedYear"`
	// IsNegotiable は価格交渉可フラグ。
	IsNegotiable bool `json:"isNegotiable"`
	// ImageURL は商品画像のURL。
	ImageURL string `json:"imageUrl"`
	// UniversityName は出品が属する大学名。
	UniversityName string `json:"universityName"`
	// CreatedAt は作成日時。
	CreatedAt string `json:"createdAt"`
	// UpdatedAt は更新日時。
	UpdatedAt string `json:"updatedAt"`
}

// sellerResponse は出品詳細に含める出品者情報のJSONレスポンス構造。
type sellerResponse struct {
	// FullName は出品者の氏名。
	FullName string `json:"fullName"`
	// MobileNumber は出品者の携帯番号。
	MobileNumber string `json:"mobileNumber"`
	// Department は出品者の学部。
	Department string `json:"department"`
	// IsVerified は本人確認済みフラグ。
	IsVerified bool `json:"isVerified"`
}

// marketplaceItemDetailResponse は出品詳細のJSONレスポンス構造。
// 出品者のプロファイル行が無い場合、sellerはnullになる。
type marketplaceItemDetailResponse struct {
	marketplaceItemResponse
	// Seller は出品者情報。
	Seller *sellerResponse `json:"seller"`
}

// toMarketplaceItemResponse はDB行をJSONレスポンスに変換する。
func toMarketplaceItemResponse(m db.MarketplaceItem) marketplaceItemResponse {
	return marketplaceItemResponse{
		ID:               m.ID,
		SellerID:         m.SellerID,
		Title:            m.Title,
		Description:      m.Description,
		Price:            m.Price,
		Category:         m.Category,
		Condition:        m.Condition,
		ManufacturedYear: m.ManufacturedYear,
		IsNegotiable:     m.IsNegotiable,
		ImageURL:         m.ImageURL,
		UniversityName:   m.UniversityName,
		CreatedAt:        m.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:        m.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// handleListMarketplaceItems は出品一覧取得を処理するハンドラを返す。
// 大学スコープでページングし、categoryクエリで絞り込める。
// テナントコンテキストが無いリクエストには空ページを返す。
func (s *Server) handleListMarketplaceItems() gin.HandlerFunc {
	return func(c *gin.Context) {
		universityName := middleware.GetUniversityName(c)
		if universityName == "" {
			c.JSON(http.StatusOK, emptyPage())
			return
		}

		limit, offset := pageParams(c)
		category := c.Query("category")
		if category == "all" {
			category = ""
		}

		total, err := s.queries.CountMarketplaceItems(c.Request.Context(), db.CountMarketplaceItemsParams{
			UniversityName: universityName,
			Category:       category,
		})
		if err != nil {
			s.logger.Error("出品数の取得に失敗", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
			return
		}

		items, err := s.queries.ListMarketplaceItems(c.Request.Context(), db.ListMarketplaceItemsParams{
			UniversityName: universityName,
			Category:       category,
			Limit:          limit,
			Offset:         offset,
		})
		if err != nil {
			s.logger.Error("出品一覧の取得に失敗", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
			return
		}

		responses := make([]marketplaceItemResponse, 0, len(items))
		for _, m := range items {
			responses = append(responses, toMarketplaceItemResponse(m))
		}

		c.JSON(http.StatusOK, pagedResponse{
			Items:   responses,
			HasMore: offset+int64(len(items)) < total,
			Total:   total,
		})
	}
}

// handleCreateMarketplaceItem は出品作成を処理するハンドラを返す。
// 出品は認証済みユーザーの所属大学に属する。
func (s *Server) handleCreateMarketplaceItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		universityName := middleware.GetUniversityName(c)
		if userID == "" || universityName == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized or missing profile context"})
			return
		}

		var req createMarketplaceItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title and price are required"})
			return
		}

		itemID := uuid.New().String()
		if err := s.queries.CreateMarketplaceItem(c.Request.Context(), db.CreateMarketplaceItemParams{
			ID:               itemID,
			SellerID:         userID,
			Title:            req.Title,
			Description:      req.Description,
			Price:            req.Price,
			Category:         req.Category,
			Condition:        req.Condition,
			ManufacturedYear: req.ManufacturedYear,
			IsNegotiable:     req.IsNegotiable,
			ImageURL:         req.ImageURL,
			UniversityName:   universityName,
		}); err != nil {
			s.logger.Error("出品作成に失敗", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
			return
		}

		created, err := s.queries.GetMarketplaceItemByID(c.Request.Context(), itemID)
		if err != nil {
			s.logger.Error("作成した出品の取得に失敗", zap.String("item_id", itemID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
			return
		}

		c.JSON(http.StatusCreated, toMarketplaceItemResponse(created))
	}
}

// handleGetMarketplaceItem は出品詳細取得を処理するハンドラを返す。
// 出品者の連絡先情報を併せて返す。
func (s *Server) handleGetMarketplaceItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID := c.Param("id")

		result, err := s.queries.GetMarketplaceItemWithSeller(c.Request.Context(), itemID)
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		if err != nil {
			s.logger.Error("出品詳細の取得に失敗", zap.String("item_id", itemID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch item"})
			return
		}

		resp := marketplaceItemDetailResponse{
			marketplaceItemResponse: toMarketplaceItemResponse(result.Item),
		}
		if result.SellerFound {
			resp.Seller = &sellerResponse{
				FullName:     result.SellerFullName,
				MobileNumber: result.SellerMobileNumber,
				Department:   result.SellerDepartment,
				IsVerified:   result.SellerIsVerified,
			}
		}

		c.JSON(http.StatusOK, resp)
	}
}
