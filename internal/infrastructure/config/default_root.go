package config

import (
	"os"
	"strings"

	"github.com/adrg/xdg"
)

// DefaultRoot は設定がない場合に表示するルート（デスクトップ）を返します。
// デスクトップが存在しない場合はホームディレクトリを返します。
func DefaultRoot() string {
	// 環境変数と user-dirs.dirs は呼び出しのたびに読み直す
	xdg.Reload()

	if desktop := xdg.UserDirs.Desktop; desktop != "" {
		if info, err := os.Stat(desktop); err == nil && info.IsDir() {
			return desktop
		}
	}

	home := xdg.Home
	if strings.TrimSpace(home) == "" {
		var err error
		if home, err = os.UserHomeDir(); err != nil || strings.TrimSpace(home) == "" {
			home = "."
		}
	}
	return home
}
