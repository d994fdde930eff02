// Package gui は fyne による設定画面とトレイメニューを提供します
package gui

import (
	"errors"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"FolderTray/internal/domain/model"
	"FolderTray/internal/infrastructure/config"
	"FolderTray/internal/infrastructure/filesystem"
	"FolderTray/internal/infrastructure/logging"
	"FolderTray/internal/interface/ui"
)

// 設定ウィンドウの大きさです
const (
	DefaultWindowWidth  = 560
	DefaultWindowHeight = 420
)

// FolderPicker はルートに追加するディレクトリを選ばせるインターフェースです
type FolderPicker interface {
	SelectDirectory(title string) (string, error)
}

// SaveFunc は設定を適用します
type SaveFunc func(settings model.Settings) error

// SettingsWindow はルートの一覧と自動起動を編集するウィンドウです
type SettingsWindow struct {
	app       fyne.App
	validator filesystem.DirectoryValidator
	picker    FolderPicker
	save      SaveFunc
	logger    logging.Logger

	window        fyne.Window
	paths         *widget.Entry
	launchAtLogin *widget.Check
	addButton     *widget.Button
	saveButton    *widget.Button
}

// NewSettingsWindow は新しい SettingsWindow インスタンスを作成します。
// picker が nil の場合は fyne のフォルダ選択ダイアログを使います。
func NewSettingsWindow(a fyne.App, validator filesystem.DirectoryValidator, picker FolderPicker, save SaveFunc, logger logging.Logger) *SettingsWindow {
	if logger == nil {
		logger = logging.Discard{}
	}
	s := &SettingsWindow{
		app:       a,
		validator: validator,
		picker:    picker,
		save:      save,
		logger:    logger,
	}
	s.build()
	return s
}

func (s *SettingsWindow) build() {
	s.window = s.app.NewWindow("FolderTray Settings")
	s.window.Resize(fyne.NewSize(DefaultWindowWidth, DefaultWindowHeight))
	// トレイに常駐するため閉じても終了しない
	s.window.SetCloseIntercept(func() { s.window.Hide() })

	s.paths = widget.NewMultiLineEntry()
	s.paths.SetPlaceHolder("1行に1つのフォルダまたはファイル")
	s.launchAtLogin = widget.NewCheck("Launch at login", nil)
	s.addButton = widget.NewButtonWithIcon("Add folder…", theme.FolderOpenIcon(), s.addFolder)
	s.saveButton = widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), s.submit)
	s.saveButton.Importance = widget.HighImportance

	top := widget.NewLabel("メニューに表示するパス")
	bottom := container.NewVBox(
		s.launchAtLogin,
		container.NewHBox(s.addButton, widget.NewButton("Cancel", s.window.Hide), s.saveButton),
	)
	s.window.SetContent(container.NewBorder(top, bottom, nil, nil, s.paths))
}

// Show は現在の設定を反映してウィンドウを表示します
func (s *SettingsWindow) Show(current model.Settings) {
	s.paths.SetText(config.FormatPaths(current.Paths))
	s.launchAtLogin.SetChecked(current.LaunchAtLogin)
	s.window.Show()
	s.window.RequestFocus()
}

// Settings は入力中の設定を返します
func (s *SettingsWindow) Settings() model.Settings {
	return model.Settings{
		Paths:         config.ParsePaths(s.paths.Text),
		LaunchAtLogin: s.launchAtLogin.Checked,
	}
}

// AddPath はパスを一覧の末尾に追加します。登録済みのパスは追加しません
func (s *SettingsWindow) AddPath(path string) {
	current := config.ParsePaths(s.paths.Text)
	for _, p := range current {
		if p == path {
			return
		}
	}
	s.paths.SetText(config.FormatPaths(append(current, path)))
}

func (s *SettingsWindow) addFolder() {
	if s.picker == nil {
		s.openFolderDialog()
		return
	}

	go func() {
		path, err := s.picker.SelectDirectory("Add folder")
		if errors.Is(err, ui.ErrCancelled) {
			return
		}
		if err != nil {
			s.logger.Log(logging.LevelWarn, "フォルダの選択に失敗", err)
			dialog.ShowError(err, s.window)
			return
		}
		s.AddPath(path)
	}()
}

// openFolderDialog は fyne のフォルダ選択ダイアログで選ばれたパスを検証して追加します
func (s *SettingsWindow) openFolderDialog() {
	dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(fmt.Errorf("フォルダ選択エラー: %w", err), s.window)
			return
		}
		if uri == nil {
			return
		}
		path := uri.Path()
		if err := s.validator.ValidateDirectoryPath(path); err != nil {
			dialog.ShowError(fmt.Errorf("フォルダが無効です: %w", err), s.window)
			return
		}
		s.AddPath(path)
	}, s.window).Show()
}

// submit は設定を適用し、成功した場合はウィンドウを閉じます
func (s *SettingsWindow) submit() {
	settings := s.Settings()
	if err := s.save(settings); err != nil {
		s.logger.Log(logging.LevelError, "設定の保存に失敗", err)
		dialog.ShowError(err, s.window)
		return
	}
	s.logger.Log(logging.LevelInfo, fmt.Sprintf("設定を保存しました: %s", strings.Join(settings.Paths, ", ")), nil)
	s.window.Hide()
}
