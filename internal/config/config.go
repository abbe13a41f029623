// Package config はAPIサーバーの設定を管理する。
// 環境変数（UNMARKY_接頭辞）とYAMLファイルから設定を読み込む。
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config はAPIサーバーの設定値。
type Config struct {
	// Port はHTTPサーバーのリッスンポート。
	Port string `mapstructure:"port"`
	// DBPath はSQLiteデータベースファイルのパス。
	DBPath string `mapstructure:"db_path"`
	// JWKSURL は署名検証用の鍵セット（JWKS）を公開するエンドポイントのURL。
	JWKSURL string `mapstructure:"jwks_url"`
	// FrontendURL はCORSで許可するフロントエンドSPAのオリジン。
	FrontendURL string `mapstructure:"frontend_url"`
	// OnboardingExemptPath はオンボーディングチェックを免除するパスのマーカー。
	OnboardingExemptPath string `mapstructure:"onboarding_exempt_path"`
	// StrictProfile がtrueの場合、プロファイル未登録の認証済みリクエストを拒否する。
	StrictProfile bool `mapstructure:"strict_profile"`
	// LogLevel はログレベル（debug/info/warn/error）。
	LogLevel string `mapstructure:"log_level"`
	// LogDev がtrueの場合、開発向けの読みやすいログ出力になる。
	LogDev bool `mapstructure:"log_dev"`
}

// Load は設定を読み込む。pathに設定ファイルを指定した場合はそれを、
// 指定しない場合はカレントディレクトリのunmarky.yamlを探す。
// 環境変数（例: UNMARKY_JWKS_URL）はファイルの値を上書きする。
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("unmarky")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("UNMARKY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("db_path", "/data/unmarky.db")
	v.SetDefault("jwks_url", "")
	v.SetDefault("frontend_url", "http://localhost:5173")
	v.SetDefault("onboarding_exempt_path", "profiles/onboarding")
	v.SetDefault("strict_profile", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_dev", false)

	if err := v.ReadInConfig(); err != nil {
		// 設定ファイルが無いのは正常。デフォルト値と環境変数のみで動作する。
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
