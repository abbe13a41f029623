package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

// TestNew はロガー生成を検証する。
func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("本番向けロガーを生成できる", func(t *testing.T) {
		t.Parallel()
		logger, err := New("info", false)
		if err != nil {
			t.Fatalf("ロガーの生成に失敗: %v", err)
		}
		if logger == nil {
			t.Fatal("ロガーがnilです")
		}
		if !logger.Core().Enabled(zapcore.InfoLevel) {
			t.Error("infoレベルが有効になっていません")
		}
		if logger.Core().Enabled(zapcore.DebugLevel) {
			t.Error("debugレベルが有効になっています")
		}
	})

	t.Run("開発向けロガーを生成できる", func(t *testing.T) {
		t.Parallel()
		logger, err := New("debug", true)
		if err != nil {
			t.Fatalf("ロガーの生成に失敗: %v", err)
		}
		if !logger.Core().Enabled(zapcore.DebugLevel) {
			t.Error("debugレベルが有効になっていません")
		}
	})
}

// TestParseLevel はレベル文字列の変換を検証する。
func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"unknown", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.level); got != tt.want {
			t.Errorf("parseLevel(%q): got %v, want %v", tt.level, got, tt.want)
		}
	}
}
