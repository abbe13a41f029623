// キャンパスアプリAPIサーバーのエントリポイント。
// フリマ・忘れ物掲示板・学内SNS・飲食店/住居ディレクトリを提供する。
package main

import (
	"log"
	"os"

	"github.com/nao1215/unmarky/internal/api"
	"github.com/nao1215/unmarky/internal/config"
	"github.com/nao1215/unmarky/pkg/logging"
)

func main() {
	cfg, err := config.Load(os.Getenv("UNMARKY_CONFIG"))
	if err != nil {
		log.Fatalf("設定の読み込みに失敗: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		log.Fatalf("ロガーの初期化に失敗: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	server, err := api.NewServer(cfg, logger)
	if err != nil {
		log.Fatalf("APIサーバーの初期化に失敗: %v", err)
	}

	log.Printf("APIサーバーを起動します: :%s", cfg.Port)
	if err := server.Run(); err != nil {
		log.Fatalf("APIサーバーの起動に失敗: %v", err)
	}
}
