package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nao1215/unmarky/internal/api/db"
	"github.com/nao1215/unmarky/pkg/middleware"
)

// foodListingResponse はレストランのJSONレスポンス構造。
type foodListingResponse struct {
	// ID はレストランの一意識別子。
	ID string `json:"id"`
	// Name はレストラン名。
	Name string `json:"name"`
	// Description はレストランの説明。
	Description string `json:"description"`
	// Cuisine は料理ジャンル。
	Cuisine string `json:"cuisine"`
	// Tags はタグの配列。
	Tags []string `json:"tags"`
	// Address は住所。
	Address string `json:"address"`
	// Phone は電話番号。
	Phone string `json:"phone"`
	// Timing は営業時間。
	Timing string `json:"timing"`
	// PriceRange は価格帯。
	PriceRange string `json:"priceRange"`
	// Rating は評価（5段階）。
	Rating float64 `json:"rating"`
	// ReviewCount はレビュー数。
	ReviewCount int64 `json:"reviewCount"`
	// ImageURL は店舗画像のURL。
	ImageURL string `json:"imageUrl"`
	// Location はキャンパス周辺の位置情報。
	Location string `json:"location"`
	// UniversityName はレストランが属する大学名。
	UniversityName string `json:"universityName"`
	// CreatedAt は作成日時。
	CreatedAt string `json:"createdAt"`
}

// menuItemResponse はメニュー項目のJSONレスポンス構造。
type menuItemResponse struct {
	// ID はメニュー項目の一意識別子。
	ID string `json:"id"`
	// RestaurantID は所属レストランのID。
	RestaurantID string `json:"restaurantId"`
	// Name は品名。
	Name string `json:"name"`
	// Description は品の説明。
	Description string `json:"description"`
	// Price は価格。
	Price float64 `json:"price"`
	// Category はカテゴリ（"Starters" / "Main Course" など）。
	Category string `json:"category"`
	// ImageURL は品の画像URL。
	ImageURL string `json:"imageUrl"`
	// IsVeg はベジタリアン対応フラグ。
	IsVeg bool `json:"isVeg"`
	// IsAvailable は提供中フラグ。
	IsAvailable bool `json:"isAvailable"`
	// Rating は評価（5段階）。
	Rating float64 `json:"rating"`
	// ReviewCount はレビュー数。
	ReviewCount int64 `json:"reviewCount"`
}

// restaurantSummaryResponse はメニュー項目詳細に含めるレストラン概要。
type restaurantSummaryResponse struct {
	// Name はレストラン名。
	Name string `json:"name"`
	// Location はキャンパス周辺の位置情報。
	Location string `json:"location"`
}

// menuItemDetailResponse はメニュー項目詳細のJSONレスポンス構造。
type menuItemDetailResponse struct {
	menuItemResponse
	// Restaurant は所属レストランの概要。
	Restaurant restaurantSummaryResponse `json:"restaurant"`
}

// foodListingDetailResponse はレストラン詳細のJSONレスポンス構造。
type foodListingDetailResponse struct {
	foodListingResponse
	// Menu はレストランのメニュー一覧。
	Menu []menuItemResponse `json:"menu"`
}

// splitTags はカンマ区切りのタグ文字列を配列に変換する。
func splitTags(tags string) []string {
	if tags == "" {
		return []string{}
	}
	parts := strings.Split(tags, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// toFoodListingResponse はDB行をJSONレスポンスに変換する。
func toFoodListingResponse(f db.FoodListing) foodListingResponse {
	return foodListingResponse{
		ID:             f.ID,
		Name:           f.Name,
		Description:    f.Description,
		Cuisine:        f.Cuisine,
		Tags:           splitTags(f.Tags),
		Address:        f.Address,
		Phone:          f.Phone,
		Timing:         f.Timing,
		PriceRange:     f.PriceRange,
		Rating:         f.Rating,
		ReviewCount:    f.ReviewCount,
		ImageURL:       f.ImageURL,
		Location:       f.Location,
		UniversityName: f.UniversityName,
		CreatedAt:      f.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// toMenuItemResponse はDB行をJSONレスポンスに変換する。
func toMenuItemResponse(m db.MenuItem) menuItemResponse {
	return menuItemResponse{
		ID:           m.ID,
		RestaurantID: m.RestaurantID,
		Name:         m.Name,
		Description:  m.Description,
		Price:        m.Price,
		Category:     m.Category,
		ImageURL:     m.ImageURL,
		IsVeg:        m.IsVeg,
		IsAvailable:  m.IsAvailable,
		Rating:       m.Rating,
		ReviewCount:  m.ReviewCount,
	}
}

// handleListFoodListings はレストラン一覧取得を処理するハンドラを返す。
// 大学スコープで評価の高い順にページングし、cuisineクエリで絞り込める。
func (s *Server) handleListFoodListings() gin.HandlerFunc {
	return func(c *gin.Context) {
		universityName := middleware.GetUniversityName(c)
		if universityName == "" {
			c.JSON(http.StatusOK, emptyPage())
			return
		}

		limit, offset := pageParams(c)
		cuisine := c.Query("cuisine")
		if cuisine == "all" {
			cuisine = ""
		}

		total, err := s.queries.CountFoodListings(c.Request.Context(), db.CountFoodListingsParams{
			UniversityName: universityName,
			Cuisine:        cuisine,
		})
		if err != nil {
			s.logger.Error("レストラン数の取得に失敗", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch restaurants"})
			return
		}

		listings, err := s.queries.ListFoodListings(c.Request.Context(), db.ListFoodListingsParams{
			UniversityName: universityName,
			Cuisine:        cuisine,
			Limit:          limit,
			Offset:         offset,
		})
		if err != nil {
			s.logger.Error("レストラン一覧の取得に失敗", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch restaurants"})
			return
		}

		responses := make([]foodListingResponse, 0, len(listings))
		for _, f := range listings {
			responses = append(responses, toFoodListingResponse(f))
		}

		c.JSON(http.StatusOK, pagedResponse{
			Items:   responses,
			HasMore: offset+int64(len(listings)) < total,
			Total:   total,
		})
	}
}

// handleGetFoodListing はレストラン詳細取得を処理するハンドラを返す。
// メニュー一覧を併せて返す。
func (s *Server) handleGetFoodListing() gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurantID := c.Param("id")

		f, err := s.queries.GetFoodListingByID(c.Request.Context(), restaurantID)
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
			return
		}
		if err != nil {
			s.logger.Error("レストラン詳細の取得に失敗", zap.String("restaurant_id", restaurantID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch restaurant"})
			return
		}

		menu, err := s.queries.ListMenuItems(c.Request.Context(), db.ListMenuItemsParams{
			RestaurantID: restaurantID,
		})
		if err != nil {
			s.logger.Error("メニュー一覧の取得に失敗", zap.String("restaurant_id", restaurantID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch restaurant"})
			return
		}

		menuResponses := make([]menuItemResponse, 0, len(menu))
		for _, m := range menu {
			menuResponses = append(menuResponses, toMenuItemResponse(m))
		}

		c.JSON(http.StatusOK, foodListingDetailResponse{
			foodListingResponse: toFoodListingResponse(f),
			Menu:                menuResponses,
		})
	}
}

// handleListMenuItems はレストランのメニュー一覧取得を処理するハンドラを返す。
// categoryクエリで絞り込める。
func (s *Server) handleListMenuItems() gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurantID := c.Param("id")

		if _, err := s.queries.GetFoodListingByID(c.Request.Context(), restaurantID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
				return
			}
			s.logger.Error("レストランの取得に失敗", zap.String("restaurant_id", restaurantID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu"})
			return
		}

		category := c.Query("category")
		if category == "all" {
			category = ""
		}

		menu, err := s.queries.ListMenuItems(c.Request.Context(), db.ListMenuItemsParams{
			RestaurantID: restaurantID,
			Category:     category,
		})
		if err != nil {
			s.logger.Error("メニュー一覧の取得に失敗", zap.String("restaurant_id", restaurantID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu"})
			return
		}

		responses := make([]menuItemResponse, 0, len(menu))
		for _, m := range menu {
			responses = append(responses, toMenuItemResponse(m))
		}

		c.JSON(http.StatusOK, responses)
	}
}

// handleGetMenuItem はメニュー項目詳細取得を処理するハンドラを返す。
// 所属レストランの概要を併せて返す。
func (s *Server) handleGetMenuItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		menuItemID := c.Param("id")

		result, err := s.queries.GetMenuItemWithRestaurant(c.Request.Context(), menuItemID)
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}
		if err != nil {
			s.logger.Error("メニュー項目の取得に失敗", zap.String("menu_item_id", menuItemID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu item"})
			return
		}
		if !result.RestaurantFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
			return
		}

		c.JSON(http.StatusOK, menuItemDetailResponse{
			menuItemResponse: toMenuItemResponse(result.Item),
			Restaurant: restaurantSummaryResponse{
				Name:     result.RestaurantName,
				Location: result.RestaurantLocation,
			},
		})
	}
}
