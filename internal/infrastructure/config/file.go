package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"FolderTray/internal/domain/model"
)

// EnvPrefix は環境変数による上書きの接頭辞です
const EnvPrefix = "FOLDERTRAY"

// FileStore は viper を使って設定ファイルに設定を保存します。
// 拡張子で TOML / YAML / JSON を判別します。
type FileStore struct {
	path string
}

// NewFileStore は新しい FileStore インスタンスを作成します
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path は設定ファイルのパスを返します
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.BindEnv(KeyPaths, EnvPrefix+"_PATHS")
	v.BindEnv(KeyLaunchAtLogin, EnvPrefix+"_LAUNCH_AT_LOGIN")
	v.SetDefault(KeyLaunchAtLogin, false)
	return v
}

// Load は設定ファイルを読み込みます。ファイルが存在しない場合は空の設定を返します
func (s *FileStore) Load() (model.Settings, error) {
	var settings model.Settings
	v := s.newViper()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return settings, &ConfigurationError{Op: "読み込み", Err: fmt.Errorf("%s: %w", s.path, err)}
	}

	settings.Paths = pathsFrom(v.Get(KeyPaths))
	settings.LaunchAtLogin = v.GetBool(KeyLaunchAtLogin)
	return settings, nil
}

// Save は設定ファイルに書き込みます
func (s *FileStore) Save(settings model.Settings) error {
	v := viper.New()
	v.SetConfigFile(s.path)
	v.Set(KeyPaths, ParsePaths(strings.Join(settings.Paths, "\n")))
	v.Set(KeyLaunchAtLogin, settings.LaunchAtLogin)

	if err := v.WriteConfigAs(s.path); err != nil {
		return &ConfigurationError{Op: "保存", Err: fmt.Errorf("%s: %w", s.path, err)}
	}
	return nil
}

// pathsFrom は一覧または区切り文字列のどちらで書かれたパスも受け付けます
func pathsFrom(value any) []string {
	switch v := value.(type) {
	case string:
		return ParsePaths(v)
	case []string:
		return ParsePaths(strings.Join(v, "\n"))
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
		return ParsePaths(strings.Join(parts, "\n"))
	}
	return nil
}
