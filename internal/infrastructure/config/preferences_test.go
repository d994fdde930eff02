package config

import (
	"strings"
	"testing"

	"fyne.io/fyne/v2/test"

	"FolderTray/internal/domain/model"
)

func TestPreferencesStore(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	store := NewPreferencesStore(a.Preferences())

	// 未設定の場合は空の設定
	settings, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(settings.Paths) != 0 || settings.LaunchAtLogin {
		t.Errorf("Load() = %+v, want empty settings", settings)
	}

	want := model.Settings{Paths: []string{"/z", "/a"}, LaunchAtLogin: true}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if strings.Join(got.Paths, "|") != "/z|/a" || !got.LaunchAtLogin {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}

	// 古い形式（セミコロン区切り）も読める
	a.Preferences().SetString(KeyPaths, "/one; /two ;")
	got, _ = store.Load()
	if strings.Join(got.Paths, "|") != "/one|/two" {
		t.Errorf("Load() paths = %v", got.Paths)
	}
}

func TestPreferencesStore_Unavailable(t *testing.T) {
	store := NewPreferencesStore(nil)
	if _, err := store.Load(); err == nil {
		t.Error("Load() error = nil, want ConfigurationError")
	}
	if err := store.Save(model.Settings{}); err == nil {
		t.Error("Save() error = nil, want ConfigurationError")
	}
}
