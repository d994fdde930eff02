package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"FolderTray/internal/domain/model"
)

func TestFileStore_RoundTrip(t *testing.T) {
	for _, ext := range []string{"toml", "yaml", "json"} {
		t.Run(ext, func(t *testing.T) {
			store := NewFileStore(filepath.Join(t.TempDir(), "config."+ext))
			want := model.Settings{Paths: []string{"/z", "/a", "/m"}, LaunchAtLogin: true}

			if err := store.Save(want); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			got, err := store.Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if strings.Join(got.Paths, "|") != "/z|/a|/m" {
				t.Errorf("Paths = %v, want %v", got.Paths, want.Paths)
			}
			if !got.LaunchAtLogin {
				t.Error("LaunchAtLogin = false, want true")
			}
		})
	}
}

func TestFileStore_DelimitedString(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("paths = \"/a;/b\n/c\"\n"), 0644); err != nil {
		t.Fatalf("テストファイルの作成に失敗: %v", err)
	}

	got, err := NewFileStore(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if strings.Join(got.Paths, "|") != "/a|/b|/c" {
		t.Errorf("Paths = %v", got.Paths)
	}
}

func TestFileStore_MissingFile(t *testing.T) {
	got, err := NewFileStore(filepath.Join(t.TempDir(), "missing.toml")).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got.Paths) != 0 {
		t.Errorf("Paths = %v, want empty", got.Paths)
	}
}

func TestFileStore_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("paths = [\n"), 0644); err != nil {
		t.Fatalf("テストファイルの作成に失敗: %v", err)
	}

	_, err := NewFileStore(path).Load()
	var ce *ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("Load() error = %v, want *ConfigurationError", err)
	}
}

func TestFileStore_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	store := NewFileStore(path)
	if err := store.Save(model.Settings{Paths: []string{"/file"}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	t.Setenv(EnvPrefix+"_PATHS", "/env1;/env2")
	t.Setenv(EnvPrefix+"_LAUNCH_AT_LOGIN", "true")

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if strings.Join(got.Paths, "|") != "/env1|/env2" {
		t.Errorf("Paths = %v, want env override", got.Paths)
	}
	if !got.LaunchAtLogin {
		t.Error("LaunchAtLogin = false, want env override")
	}
}
