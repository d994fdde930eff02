// Package app はトレイアプリケーション全体の状態を所有し、各部品を結び付けます
package app

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"

	"FolderTray/internal/domain/model"
	"FolderTray/internal/gui"
	"FolderTray/internal/infrastructure/autostart"
	"FolderTray/internal/infrastructure/config"
	"FolderTray/internal/infrastructure/filesystem"
	"FolderTray/internal/infrastructure/launcher"
	"FolderTray/internal/infrastructure/logging"
	"FolderTray/internal/interface/ui"
	"FolderTray/internal/usecase/menutree"
)

// NotifyTitle は通知のタイトルです
const NotifyTitle = "FolderTray"

// Host はメニューを表示するトレイの実装です
type Host interface {
	Start() error
	// Invalidate はツリー全体が置き換えられたことをホストに伝えます
	Invalidate()
	Close() error
}

// Deps はアプリケーションが使用する部品です
type Deps struct {
	Fyne      fyne.App
	Store     config.Store
	Tree      *menutree.Tree
	Launcher  launcher.Launcher
	Notifier  ui.Notifier
	Autostart autostart.Manager
	Validator filesystem.DirectoryValidator
	Picker    gui.FolderPicker
	Logger    logging.Logger
}

// Application は設定、メニューツリー、ホストを所有するアプリケーションの状態です。
// メニュー操作はすべてこの型のメソッドを経由します。
type Application struct {
	fyne      fyne.App
	store     config.Store
	tree      *menutree.Tree
	launcher  launcher.Launcher
	notifier  ui.Notifier
	autostart autostart.Manager
	logger    logging.Logger

	settings *gui.SettingsWindow
	host     Host
	quit     func()
}

// New は新しい Application インスタンスを作成します
func New(deps Deps) *Application {
	if deps.Logger == nil {
		deps.Logger = logging.Discard{}
	}
	if deps.Validator == nil {
		deps.Validator = filesystem.ValidatorFunc(filesystem.ValidateDirectoryPath)
	}

	a := &Application{
		fyne:      deps.Fyne,
		store:     deps.Store,
		tree:      deps.Tree,
		launcher:  deps.Launcher,
		notifier:  deps.Notifier,
		autostart: deps.Autostart,
		logger:    deps.Logger,
		quit:      func() {},
	}
	if deps.Fyne != nil {
		a.settings = gui.NewSettingsWindow(deps.Fyne, deps.Validator, deps.Picker, a.ApplySettings, deps.Logger)
		a.quit = deps.Fyne.Quit
	}
	return a
}

// Tree はメニューツリーを返します
func (a *Application) Tree() *menutree.Tree {
	return a.tree
}

// SetHost はメニューを表示するホストを設定します
func (a *Application) SetHost(host Host) {
	a.host = host
}

// Run はメニューを構築してホストを開始し、fyne のイベントループを実行します
func (a *Application) Run() error {
	if a.host == nil {
		return errors.New("メニューを表示するホストが設定されていません")
	}

	a.Rebuild()
	if err := a.host.Start(); err != nil {
		return fmt.Errorf("トレイの開始に失敗しました: %w", err)
	}
	defer a.host.Close()

	a.logger.Log(logging.LevelInfo, "トレイを開始しました", nil)
	if a.fyne != nil {
		a.fyne.Run()
	}
	return nil
}

// Rebuild は設定を読み込み直してトップレベルを作り直します。
// 読み込みに失敗した場合は既定のルートを使い、利用者には通知しません。
func (a *Application) Rebuild() {
	defer a.recover("Rebuild")

	settings, err := a.store.Load()
	if err != nil {
		a.logger.Log(logging.LevelWarn, "設定の読み込みに失敗したため既定のルートを使用します", err)
	}
	roots := config.ResolveRoots(settings, err)
	a.tree.Rebuild(roots)
	a.logger.Log(logging.LevelInfo, fmt.Sprintf("メニューを構築しました（ルート %d 件）", len(roots)), nil)

	if a.host != nil {
		a.host.Invalidate()
	}
}

// Expand はディレクトリノードを展開し、子リストが変わった場合に true を返します
func (a *Application) Expand(id int32) (changed bool) {
	defer a.recover("Expand")

	changed, err := a.tree.Expand(id)
	switch {
	case errors.Is(err, menutree.ErrExpandInFlight):
		a.logger.Log(logging.LevelDebug, fmt.Sprintf("ノード %d は展開中です", id), err)
	case errors.Is(err, menutree.ErrIDSpaceExhausted):
		a.logger.Log(logging.LevelWarn, "ノード ID を使い切ったためメニューを構築し直しました", err)
		if a.host != nil {
			a.host.Invalidate()
		}
	case err != nil:
		a.logger.Log(logging.LevelWarn, fmt.Sprintf("ノード %d を展開できません", id), err)
	}
	return changed
}

// Activate はノードのパスを開きます。失敗した場合は利用者に通知します
func (a *Application) Activate(id int32) {
	defer a.recover("Activate")

	path, err := a.tree.Target(id)
	if err != nil {
		a.logger.Log(logging.LevelDebug, fmt.Sprintf("ノード %d は開けません", id), err)
		return
	}

	if err := a.launcher.Open(path); err != nil {
		a.logger.Log(logging.LevelError, fmt.Sprintf("'%s' を開けませんでした", path), err)
		if a.notifier != nil {
			a.notifier.NotifyError(NotifyTitle, err.Error())
		}
	}
}

// ShowSettings は設定ウィンドウを表示します
func (a *Application) ShowSettings() {
	defer a.recover("ShowSettings")

	if a.settings == nil {
		return
	}
	current, err := a.store.Load()
	if err != nil {
		a.logger.Log(logging.LevelWarn, "設定の読み込みに失敗", err)
	}
	current.LaunchAtLogin = a.launchAtLogin(current.LaunchAtLogin)
	a.settings.Show(current)
}

// ApplySettings は設定を保存し、自動起動の登録を更新してからメニューを作り直します
func (a *Application) ApplySettings(settings model.Settings) error {
	if err := a.store.Save(settings); err != nil {
		return err
	}

	var autostartErr error
	if a.autostart != nil {
		if enabled, err := a.autostart.Enabled(); err != nil || enabled != settings.LaunchAtLogin {
			autostartErr = a.autostart.SetEnabled(settings.LaunchAtLogin)
		}
	}

	a.Rebuild()
	return autostartErr
}

// Reload はメニューを作り直します
func (a *Application) Reload() {
	a.Rebuild()
}

// Quit はアプリケーションを終了します
func (a *Application) Quit() {
	a.logger.Log(logging.LevelInfo, "終了します", nil)
	a.quit()
}

// launchAtLogin は登録状態を取得できればそれを、できなければ保存された値を返します
func (a *Application) launchAtLogin(saved bool) bool {
	if a.autostart == nil {
		return saved
	}
	enabled, err := a.autostart.Enabled()
	if err != nil {
		return saved
	}
	return enabled
}

// recover はホストのコールバックで発生した panic を記録してプロセスを継続します
func (a *Application) recover(op string) {
	if r := recover(); r != nil {
		a.logger.Log(logging.LevelError, fmt.Sprintf("%s で予期しないエラーが発生しました", op), fmt.Errorf("%v", r))
	}
}
