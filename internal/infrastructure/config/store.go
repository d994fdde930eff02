// Package config は利用者設定の読み書きを提供します
package config

import (
	"fmt"
	"strings"

	"FolderTray/internal/domain/model"
)

// 設定のキーです
const (
	KeyPaths         = "paths"
	KeyLaunchAtLogin = "launchAtLogin"
)

// Store は設定を永続化するインターフェースです
type Store interface {
	Load() (model.Settings, error)
	Save(settings model.Settings) error
}

// ConfigurationError は設定の読み書きに失敗したことを表します
type ConfigurationError struct {
	Op  string
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("設定の%sに失敗しました: %v", e.Op, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ParsePaths はセミコロンまたは改行で区切られたパスの一覧を分割します。
// 前後の空白を取り除き、空の要素と重複を捨てます。
func ParsePaths(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ';' || r == '\n' || r == '\r'
	})

	paths := make([]string, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, field := range fields {
		p := strings.TrimSpace(field)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		paths = append(paths, p)
	}
	return paths
}

// FormatPaths はパスの一覧を保存用の文字列にします
func FormatPaths(paths []string) string {
	return strings.Join(ParsePaths(strings.Join(paths, "\n")), "\n")
}

// ResolveRoots は読み込んだ設定からトップレベルのルートを決定します。
// 読み込みに失敗したか一覧が空の場合は既定のルートを1つだけ返します。
func ResolveRoots(settings model.Settings, err error) []string {
	if err == nil && len(settings.Paths) > 0 {
		return settings.Paths
	}
	return []string{DefaultRoot()}
}
