package api

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/nao1215/unmarky/internal/api/db"
	"github.com/nao1215/unmarky/internal/config"
	"github.com/nao1215/unmarky/pkg/jwks"
	"github.com/nao1215/unmarky/pkg/middleware"
	"github.com/nao1215/unmarky/pkg/migration"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Server はキャンパスアプリAPIのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// queries はクエリ実行オブジェクト。
	queries *db.Queries
	// db はSQLiteデータベース接続。
	db *sql.DB
	// logger は構造化ログの出力先。
	logger *zap.Logger
}

// NewServer は新しいAPIサーバーを生成する。
// SQLiteデータベースの初期化、マイグレーション適用、JWKSリゾルバーの構築を行う。
func NewServer(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	sqlDB, err := OpenDB(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	resolver, err := jwks.NewResolver(cfg.JWKSURL)
	if err != nil {
		return nil, fmt.Errorf("JWKSリゾルバーの構築に失敗: %w", err)
	}

	queries := db.New(sqlDB)
	auth := middleware.TokenAuth(middleware.AuthConfig{
		Resolver:             resolver,
		Profiles:             &profileLoader{queries: queries},
		OnboardingExemptPath: cfg.OnboardingExemptPath,
		StrictProfile:        cfg.StrictProfile,
		Logger:               logger,
	})

	return newServer(cfg, logger, sqlDB, auth), nil
}

// OpenDB はSQLiteデータベースを開き、マイグレーションを適用する。
// WALモードとビジータイムアウトを有効にする。
func OpenDB(path string) (*sql.DB, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}

	if err := migration.Run(sqlDB, migrationsFS, "migrations"); err != nil {
		return nil, fmt.Errorf("マイグレーション適用に失敗: %w", err)
	}
	return sqlDB, nil
}

// newServer はルーターとミドルウェアを組み立てる。認可ミドルウェアを
// 差し替え可能にしてあり、テストではスタブを渡す。
func newServer(cfg *config.Config, logger *zap.Logger, sqlDB *sql.DB, auth gin.HandlerFunc) *Server {
	router := gin.New()
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS([]string{cfg.FrontendURL}))
	router.Use(gin.Logger())

	s := &Server{
		router:  router,
		port:    cfg.Port,
		queries: db.New(sqlDB),
		db:      sqlDB,
		logger:  logger,
	}
	s.setupRoutes(auth)

	return s
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.port))
}

// setupRoutes はAPIルーティングを設定する。
// /api/v1配下のすべてのルートは認可ミドルウェアを通過する。
func (s *Server) setupRoutes(auth gin.HandlerFunc) {
	api := s.router.Group("/api/v1")
	api.Use(auth)
	{
		profiles := api.Group("/profiles")
		{
			// 自分のプロファイル取得
			profiles.GET("/me", s.handleGetMyProfile())
			// オンボーディング完了（大学選択）
			profiles.PATCH("/onboarding", s.handleCompleteOnboarding())
			// プロファイル取得
			profiles.GET("/:id", s.handleGetProfile())
			// プロファイル更新（本人のみ）
			profiles.PATCH("/:id", s.handleUpdateProfile())
			// 学生証による本人確認
			profiles.POST("/:id/verify", s.handleVerifyProfile())
		}

		marketplace := api.Group("/marketplace")
		{
			// 出品一覧（ページング）
			marketplace.GET("", s.handleListMarketplaceItems())
			// 出品作成
			marketplace.POST("", s.handleCreateMarketplaceItem())
			// 出品詳細（出品者情報付き）
			marketplace.GET("/:id", s.handleGetMarketplaceItem())
		}

		lostfound := api.Group("/lostfound")
		{
			// 報告一覧（ページング）
			lostfound.GET("", s.handleListLostFoundItems())
			// 報告作成
			lostfound.POST("", s.handleCreateLostFoundItem())
			// 報告詳細（報告者情報付き）
			lostfound.GET("/:id", s.handleGetLostFoundItem())
		}

		social := api.Group("/social")
		{
			// 投稿一覧
			social.GET("", s.handleListSocialPosts())
			// 投稿作成
			social.POST("", s.handleCreateSocialPost())
		}

		announcements := api.Group("/announcements")
		{
			// お知らせ一覧
			announcements.GET("", s.handleListAnnouncements())
			// お知らせ作成
			announcements.POST("", s.handleCreateAnnouncement())
		}

		food := api.Group("/food")
		{
			// レストラン一覧（ページング）
			food.GET("", s.handleListFoodListings())
			// メニュー項目詳細（レストラン概要付き）
			food.GET("/menu-item/:id", s.handleGetMenuItem())
			// レストラン詳細（メニュー付き）
			food.GET("/:id", s.handleGetFoodListing())
			// レストランのメニュー一覧
			food.GET("/:id/menu", s.handleListMenuItems())
		}

		accommodation := api.Group("/accommodation")
		{
			// 物件一覧（ページング）
			accommodation.GET("", s.handleListAccommodations())
			// 物件詳細
			accommodation.GET("/:id", s.handleGetAccommodation())
		}

		// ホーム画面向けのダッシュボード集計
		api.GET("/dashboard/summary", s.handleGetDashboard())
	}

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "unmarky-api"})
	})
}

// profileLoader はdbパッケージのQueriesを認可ミドルウェアのProfileLoaderに適合させる。
type profileLoader struct {
	queries *db.Queries
}

// LoadProfile はサブジェクトIDからプロファイルを引く。
// 行が存在しない場合は (nil, nil) を返す。
func (l *profileLoader) LoadProfile(ctx context.Context, subjectID string) (*middleware.Profile, error) {
	p, err := l.queries.GetProfileByID(ctx, subjectID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &middleware.Profile{
		UniversityName:      p.UniversityName,
		OnboardingCompleted: p.OnboardingCompleted,
	}, nil
}
