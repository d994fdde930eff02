package config

import (
	"fmt"

	"fyne.io/fyne/v2"

	"FolderTray/internal/domain/model"
)

// PreferencesStore は fyne の Preferences に設定を保存します
type PreferencesStore struct {
	prefs fyne.Preferences
}

// NewPreferencesStore は新しい PreferencesStore インスタンスを作成します
func NewPreferencesStore(prefs fyne.Preferences) *PreferencesStore {
	return &PreferencesStore{prefs: prefs}
}

// Load は保存されている設定を読み込みます
func (s *PreferencesStore) Load() (settings model.Settings, err error) {
	if s.prefs == nil {
		return settings, &ConfigurationError{Op: "読み込み", Err: fmt.Errorf("preferences が利用できません")}
	}
	defer func() {
		if r := recover(); r != nil {
			err = &ConfigurationError{Op: "読み込み", Err: fmt.Errorf("%v", r)}
		}
	}()

	settings.Paths = ParsePaths(s.prefs.String(KeyPaths))
	settings.LaunchAtLogin = s.prefs.Bool(KeyLaunchAtLogin)
	return settings, nil
}

// Save は設定を保存します
func (s *PreferencesStore) Save(settings model.Settings) error {
	if s.prefs == nil {
		return &ConfigurationError{Op: "保存", Err: fmt.Errorf("preferences が利用できません")}
	}
	s.prefs.SetString(KeyPaths, FormatPaths(settings.Paths))
	s.prefs.SetBool(KeyLaunchAtLogin, settings.LaunchAtLogin)
	return nil
}
