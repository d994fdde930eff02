// Package logging はロギング機能を提供します
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// ログレベルを表す文字列です
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// Logger は構造化ログを出力するためのインターフェースです
type Logger interface {
	Log(level, message string, err error)
}

// CharmLogger は charmbracelet/log を使ってログを出力するロガーです
type CharmLogger struct {
	logger *log.Logger
}

// NewJSONLogger はJSONフォーマットで出力する新しいロガーを作成します
func NewJSONLogger(writer io.Writer) *CharmLogger {
	return newCharmLogger(writer, log.Options{
		Formatter:       log.JSONFormatter,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           log.DebugLevel,
	})
}

// NewTextLogger はテキストフォーマットで出力する新しいロガーを作成します
func NewTextLogger(writer io.Writer, prefix string) *CharmLogger {
	return newCharmLogger(writer, log.Options{
		Formatter:       log.TextFormatter,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          prefix,
		Level:           log.InfoLevel,
	})
}

func newCharmLogger(writer io.Writer, opts log.Options) *CharmLogger {
	if writer == nil {
		writer = os.Stdout
	}
	return &CharmLogger{logger: log.NewWithOptions(writer, opts)}
}

// SetLevel は出力する最低ログレベルを設定します。不明な値は INFO として扱います
func (l *CharmLogger) SetLevel(level string) {
	l.logger.SetLevel(parseLevel(level))
}

// Log はメッセージをログ出力します
func (l *CharmLogger) Log(level, message string, err error) {
	if err != nil {
		l.logger.Log(parseLevel(level), message, "error", err.Error())
		return
	}
	l.logger.Log(parseLevel(level), message)
}

func parseLevel(level string) log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Discard はすべてのログを破棄するロガーです
type Discard struct{}

// Log は何もしません
func (Discard) Log(string, string, error) {}
