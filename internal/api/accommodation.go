package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nao1215/unmarky/internal/api/db"
	"github.com/nao1215/unmarky/pkg/middleware"
)

// accommodationResponse は住居物件のJSONレスポンス構造。
type accommodationResponse struct {
	// ID は物件の一意識別子。
	ID string `json:"id"`
	// Name は物件名。
	Name string `json:"name"`
	// Type は物件種別（"PG" / "Hostel" / "Apartment"）。
	Type string `json:"type"`
	// Description は物件の説明。
	Description string `json:"description"`
	// Address は住所。
	Address string `json:"address"`
	// Phone は電話番号。
	Phone string `json:"phone"`
	// Amenities は設備の説明。
	Amenities string `json:"amenities"`
	// Images は物件画像URLの配列。
	Images []string `json:"images"`
	// MinPrice は家賃の下限。
	MinPrice float64 `json:"minPrice"`
	// MaxPrice は家賃の上限。
	MaxPrice float64 `json:"maxPrice"`
	// RentRange は家賃帯の表示用文字列。
	RentRange string `json:"rentRange"`
	// Rating は評価（5段階）。
	Rating float64 `json:"rating"`
	// ReviewCount はレビュー数。
	ReviewCount int64 `json:"reviewCount"`
	// Location はキャンパス周辺の位置情報。
	Location string `json:"location"`
	// Contact は連絡先。
	Contact string `json:"contact"`
	// UniversityName は物件が属する大学名。
	UniversityName string `json:"universityName"`
	// CreatedAt は作成日時。
	CreatedAt string `json:"createdAt"`
}

// toAccommodationResponse はDB行をJSONレスポンスに変換する。
// imagesカラムはJSON配列の文字列として保存されており、
// 壊れている場合は空配列にフォールバックする。
func toAccommodationResponse(a db.AccommodationListing) accommodationResponse {
	images := []string{}
	if a.Images != "" {
		if err := json.Unmarshal([]byte(a.Images), &images); err != nil {
			images = []string{}
		}
	}
	return accommodationResponse{
		ID:             a.ID,
		Name:           a.Name,
		Type:           a.Type,
		Description:    a.Description,
		Address:        a.Address,
		Phone:          a.Phone,
		Amenities:      a.Amenities,
		Images:         images,
		MinPrice:       a.MinPrice,
		MaxPrice:       a.MaxPrice,
		RentRange:      a.RentRange,
		Rating:         a.Rating,
		ReviewCount:    a.ReviewCount,
		Location:       a.Location,
		Contact:        a.Contact,
		UniversityName: a.UniversityName,
		CreatedAt:      a.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// handleListAccommodations は物件一覧取得を処理するハンドラを返す。
// 大学スコープで評価の高い順にページングし、typeクエリで絞り込める。
func (s *Server) handleListAccommodations() gin.HandlerFunc {
	return func(c *gin.Context) {
		universityName := middleware.GetUniversityName(c)
		if universityName == "" {
			c.JSON(http.StatusOK, emptyPage())
			return
		}

		limit, offset := pageParams(c)
		listingType := c.Query("type")
		if listingType == "all" {
			listingType = ""
		}

		total, err := s.queries.CountAccommodations(c.Request.Context(), db.CountAccommodationsParams{
			UniversityName: universityName,
			Type:           listingType,
		})
		if err != nil {
			s.logger.Error("物件数の取得に失敗", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch accommodations"})
			return
		}

		listings, err := s.queries.ListAccommodations(c.Request.Context(), db.ListAccommodationsParams{
			UniversityName: universityName,
			Type:           listingType,
			Limit:          limit,
			Offset:         offset,
		})
		if err != nil {
			s.logger.Error("物件一覧の取得に失敗", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch accommodations"})
			return
		}

		responses := make([]accommodationResponse, 0, len(listings))
		for _, a := range listings {
			responses = append(responses, toAccommodationResponse(a))
		}

		c.JSON(http.StatusOK, pagedResponse{
			Items:   responses,
			HasMore: offset+int64(len(listings)) < total,
			Total:   total,
		})
	}
}

// handleGetAccommodation は物件詳細取得を処理するハンドラを返す。
func (s *Server) handleGetAccommodation() gin.HandlerFunc {
	return func(c *gin.Context) {
		accommodationID := c.Param("id")

		a, err := s.queries.GetAccommodationByID(c.Request.Context(), accommodationID)
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Accommodation not found"})
			return
		}
		if err != nil {
			s.logger.Error("物件詳細の取得に失敗", zap.String("accommodation_id", accommodationID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch accommodation"})
			return
		}

		c.JSON(http.StatusOK, toAccommodationResponse(a))
	}
}
