package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nao1215/unmarky/internal/api/db"
	"github.com/nao1215/unmarky/pkg/middleware"
)

// ダッシュボードに表示する各機能の最新件数。
const (
	dashboardMarketplaceCount   = 3
	dashboardAnnouncementsCount = 2
	dashboardPostsCount         = 2
)

// dashboardResponse はホーム画面向けダッシュボードのJSONレスポンス構造。
type dashboardResponse struct {
	// MarketplaceItems は最新の出品。
	MarketplaceItems []marketplaceItemResponse `json:"marketplaceItems"`
	// Announcements は最新のお知らせ。
	Announcements []announcementResponse `json:"announcements"`
	// SocialPosts は最新の投稿。
	SocialPosts []socialPostResponse `json:"socialPosts"`
}

// handleGetDashboard はダッシュボード集計を処理するハンドラを返す。
// 出品・お知らせ・投稿の取得を並行して行い、1つのレスポンスにまとめる。
func (s *Server) handleGetDashboard() gin.HandlerFunc {
	return func(c *gin.Context) {
		universityName := middleware.GetUniversityName(c)
		if universityName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Context required"})
			return
		}

		var (
			items         []db.MarketplaceItem
			announcements []db.Announcement
			posts         []db.SocialPost
		)

		g, ctx := errgroup.WithContext(c.Request.Context())
		g.Go(func() error {
			var err error
			items, err = s.queries.ListMarketplaceItems(ctx, db.ListMarketplaceItemsParams{
				UniversityName: universityName,
				Limit:          dashboardMarketplaceCount,
			})
			return err
		})
		g.Go(func() error {
			var err error
			announcements, err = s.queries.ListLatestAnnouncements(ctx, db.ListLatestAnnouncementsParams{
				UniversityName: universityName,
				Limit:          dashboardAnnouncementsCount,
			})
			return err
		})
		g.Go(func() error {
			var err error
			posts, err = s.queries.ListLatestSocialPosts(ctx, db.ListLatestSocialPostsParams{
				UniversityName: universityName,
				Limit:          dashboardPostsCount,
			})
			return err
		})

		if err := g.Wait(); err != nil {
			s.logger.Error("ダッシュボード集計に失敗", zap.String("university_name", universityName), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard"})
			return
		}

		resp := dashboardResponse{
			MarketplaceItems: make([]marketplaceItemResponse, 0, len(items)),
			Announcements:    make([]announcementResponse, 0, len(announcements)),
			SocialPosts:      make([]socialPostResponse, 0, len(posts)),
		}
		for _, m := range items {
			resp.MarketplaceItems = append(resp.MarketplaceItems, toMarketplaceItemResponse(m))
		}
		for _, a := range announcements {
			resp.Announcements = append(resp.Announcements, toAnnouncementResponse(a))
		}
		for _, p := range posts {
			resp.SocialPosts = append(resp.SocialPosts, toSocialPostResponse(p))
		}

		c.JSON(http.StatusOK, resp)
	}
}
