package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// DirectoryValidator はディレクトリの検証機能を提供するインターフェースです
type DirectoryValidator interface {
	ValidateDirectoryPath(path string) error
}

// ValidateDirectoryPath はパスがルートとして登録できる有効なディレクトリであることを確認します
func (l *Lister) ValidateDirectoryPath(path string) error {
	return ValidateDirectoryPath(path)
}

// ValidateDirectoryPath はパスが安全で有効なディレクトリであることを確認します
func ValidateDirectoryPath(path string) error {
	if path == "" {
		return fmt.Errorf("ディレクトリパスが指定されていません")
	}

	if runtime.GOOS == "windows" && strings.ContainsAny(strings.TrimPrefix(path, filepath.VolumeName(path)), "<>|?*\"") {
		return fmt.Errorf("パスに不正な文字が含まれています")
	}

	if !filepath.IsAbs(path) {
		return fmt.Errorf("絶対パスで指定してください")
	}

	fileInfo, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("ディレクトリが存在しません: %w", err)
	}

	if !fileInfo.IsDir() {
		return fmt.Errorf("指定されたパスはディレクトリではありません")
	}

	return nil
}

// ValidatorFunc は関数を DirectoryValidator として使うための型です
type ValidatorFunc func(path string) error

// ValidateDirectoryPath は f(path) を呼び出します
func (f ValidatorFunc) ValidateDirectoryPath(path string) error {
	return f(path)
}
