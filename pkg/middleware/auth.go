package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/nao1215/unmarky/pkg/jwks"
)

// コンテキストキー。TokenAuthが認可後のリクエストに付与する。
const (
	contextKeyUserID              = "user_id"
	contextKeyUniversityName      = "university_name"
	contextKeyOnboardingCompleted = "onboarding_completed"
)

// defaultOnboardingExemptPath はオンボーディング完了チェックを免除するパスの既定マーカー。
// リクエストパスにこの文字列が含まれる場合、オンボーディング未完了でもアクセスを許可する。
const defaultOnboardingExemptPath = "profiles/onboarding"

// unknownUniversityName はプロファイルに大学名が未設定の場合に使用する表示名。
const unknownUniversityName = "Unknown University"

// ErrSubjectMissing は検証済みトークンのペイロードにsubクレームが無い場合のエラー。
var ErrSubjectMissing = errors.New("トークンにsubクレームがありません")

// Profile は認可判定に必要なプロファイル情報のサブセット。
type Profile struct {
	// UniversityName は所属大学名。未設定の場合は空文字列。
	UniversityName string
	// OnboardingCompleted はオンボーディング（大学選択）の完了フラグ。
	OnboardingCompleted bool
}

// ProfileLoader は検証済みのサブジェクトIDからプロファイルを引く読み取り専用の能力。
// プロファイル行が存在しない場合は (nil, nil) を返すこと。
type ProfileLoader interface {
	LoadProfile(ctx context.Context, subjectID string) (*Profile, error)
}

// ProfileLoaderFunc は関数をProfileLoaderとして使用するためのアダプタ。
type ProfileLoaderFunc func(ctx context.Context, subjectID string) (*Profile, error)

// LoadProfile はProfileLoaderインターフェースを実装する。
func (f ProfileLoaderFunc) LoadProfile(ctx context.Context, subjectID string) (*Profile, error) {
	return f(ctx, subjectID)
}

// AuthConfig はTokenAuthミドルウェアの設定。
type AuthConfig struct {
	// Resolver はkidから署名検証用の公開鍵を解決するResolver。
	Resolver *jwks.Resolver
	// Profiles はサブジェクトIDからプロファイルを引くローダー。
	Profiles ProfileLoader
	// OnboardingExemptPath はオンボーディングチェックを免除するパスのマーカー。
	// 空の場合はdefaultOnboardingExemptPathを使用する。
	OnboardingExemptPath string
	// StrictProfile がtrueの場合、認証済みでもプロファイル行が無いリクエストを拒否する。
	// falseの場合はサブジェクトIDのみのコンテキストで通過させる（縮退許可）。
	StrictProfile bool
	// Logger は拒否理由のサーバー側ログ出力に使用する。nilの場合は出力しない。
	Logger *zap.Logger
}

// TokenAuth はES256署名のBearerトークンを検証し、テナント（大学）コンテキストを
// リクエストに付与するGinミドルウェアを返す。
//
// 判定は次の順で行う:
//  1. Authorizationヘッダーが無い → 401 {"error":"Unauthorized"}
//  2. トークンの検証失敗（形式不正・署名不正・期限切れ・鍵解決失敗・sub欠落）
//     → 401 {"error":"Invalid Token"}（詳細な理由はログのみ）
//  3. プロファイル行が無い → 縮退許可（user_idのみ設定）またはStrictProfile時は401
//  4. オンボーディング未完了かつ免除パス以外 → 403 {"error":"ONBOARDING_REQUIRED"}
//  5. それ以外 → user_id / university_name / onboarding_completed を設定して通過
func TokenAuth(cfg AuthConfig) gin.HandlerFunc {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	exemptPath := cfg.OnboardingExemptPath
	if exemptPath == "" {
		exemptPath = defaultOnboardingExemptPath
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodES256.Alg()}))

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		subjectID, err := verifySubject(c.Request.Context(), parser, cfg.Resolver, tokenStr)
		if err != nil {
			// 検証失敗の内訳をクライアントに見せない。ログのみに残す。
			logger.Warn("トークン検証に失敗",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Token"})
			return
		}

		profile, err := cfg.Profiles.LoadProfile(c.Request.Context(), subjectID)
		if err != nil {
			logger.Error("プロファイルの取得に失敗",
				zap.String("subject_id", subjectID),
				zap.Error(err),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Token"})
			return
		}

		if profile == nil {
			// 認証は成功しているがローカルのプロファイル行が無い。
			// 上流のID基盤とのプロビジョニング競合を許容するため、
			// 既定ではサブジェクトIDのみで通過させる。
			if cfg.StrictProfile {
				logger.Warn("プロファイル未登録のサブジェクトを拒否",
					zap.String("subject_id", subjectID),
				)
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
				return
			}
			c.Set(contextKeyUserID, subjectID)
			c.Next()
			return
		}

		universityName := profile.UniversityName
		if universityName == "" {
			universityName = unknownUniversityName
		}

		c.Set(contextKeyUserID, subjectID)
		c.Set(contextKeyUniversityName, universityName)
		c.Set(contextKeyOnboardingCompleted, profile.OnboardingCompleted)

		// オンボーディング未完了のユーザーは完了エンドポイント以外にアクセスできない。
		// クライアントはこのコードを見てオンボーディング画面へリダイレクトする。
		if !profile.OnboardingCompleted && !strings.Contains(c.Request.URL.Path, exemptPath) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "ONBOARDING_REQUIRED"})
			return
		}

		c.Next()
	}
}

// verifySubject はBearerトークンを検証し、subクレーム（サブジェクトID）を返す。
// 署名アルゴリズムはES256に固定し、kidに対応する公開鍵はResolverから取得する。
func verifySubject(ctx context.Context, parser *jwt.Parser, resolver *jwks.Resolver, tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	if _, err := parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		return resolver.Key(ctx, kid)
	}); err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", ErrSubjectMissing
	}
	return claims.Subject, nil
}

// GetUserID はGinコンテキストから認証済みユーザーのIDを取得する。
// TokenAuthミドルウェアが事前に適用されている必要がある。
func GetUserID(c *gin.Context) string {
	v, _ := c.Get(contextKeyUserID)
	if id, ok := v.(string); ok {
		return id
	}
	return ""
}

// GetUniversityName はGinコンテキストからテナント（大学名）を取得する。
// プロファイル未登録の縮退許可リクエストでは空文字列を返す。
func GetUniversityName(c *gin.Context) string {
	v, _ := c.Get(contextKeyUniversityName)
	if name, ok := v.(string); ok {
		return name
	}
	return ""
}

// GetOnboardingCompleted はGinコンテキストからオンボーディング完了フラグを取得する。
// 未設定（プロファイル未登録）の場合はfalseを返す。
func GetOnboardingCompleted(c *gin.Context) bool {
	v, _ := c.Get(contextKeyOnboardingCompleted)
	if done, ok := v.(bool); ok {
		return done
	}
	return false
}
