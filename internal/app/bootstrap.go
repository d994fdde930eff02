package app

import (
	"errors"
	"fmt"
	"runtime"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/godbus/dbus/v5"

	"FolderTray/internal/gui"
	"FolderTray/internal/infrastructure/autostart"
	"FolderTray/internal/infrastructure/config"
	"FolderTray/internal/infrastructure/filesystem"
	"FolderTray/internal/infrastructure/icons"
	"FolderTray/internal/infrastructure/launcher"
	"FolderTray/internal/infrastructure/logging"
	"FolderTray/internal/interface/tray"
	"FolderTray/internal/interface/ui"
	"FolderTray/internal/usecase/menutree"
)

// 識別子と表示名です
const (
	AppID   = "io.github.foldertray"
	AppName = "FolderTray"
)

// ErrNoTray はトレイを表示する手段がないことを示します
var ErrNoTray = errors.New("システムトレイを利用できません")

// Options は起動時の設定です
type Options struct {
	// ConfigFile が空でなければ fyne の Preferences の代わりに設定ファイルを使います
	ConfigFile string
	// Mode は再展開の方式です
	Mode menutree.Mode
	// Notifications はエラーをメッセージボックスではなくデスクトップ通知で知らせます
	Notifications bool
	// AutostartArgs は自動起動時に渡す引数です
	AutostartArgs []string
	Logger        logging.Logger
}

// Bootstrap は部品を組み立て、ホストを設定した Application を返します。
// 返された関数で D-Bus の接続を閉じます。
func Bootstrap(opts Options) (*Application, func(), error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard{}
	}

	fyneApp := fyneapp.NewWithID(AppID)

	var store config.Store = config.NewPreferencesStore(fyneApp.Preferences())
	if opts.ConfigFile != "" {
		store = config.NewFileStore(opts.ConfigFile)
	}

	lister := filesystem.NewLister(logger)
	tree := menutree.NewTree(menutree.NewBuilder(lister, logger), opts.Mode)

	conn := sessionBus(logger)
	cleanup := func() {
		if conn != nil {
			conn.Close()
		}
	}

	var launcherOpts []launcher.Option
	if conn != nil {
		launcherOpts = append(launcherOpts, launcher.WithFolderShower(launcher.NewFileManager(conn)))
	}

	var notifier ui.Notifier = ui.NewMessageNotifier()
	if opts.Notifications {
		notifier = gui.NewNotifier(fyneApp)
	}

	a := New(Deps{
		Fyne:      fyneApp,
		Store:     store,
		Tree:      tree,
		Launcher:  launcher.NewOpener(fyneApp, logger, launcherOpts...),
		Notifier:  notifier,
		Autostart: newAutostart(opts.AutostartArgs, logger),
		Validator: lister,
		Picker:    ui.NewDirectorySelector(lister),
		Logger:    logger,
	})

	resolver := icons.NewResolver()
	switch {
	case conn != nil && tray.HasWatcher(conn):
		a.SetHost(NewDBusHost(conn, a, resolver, tray.Options{
			ID:       AppID,
			Title:    AppName,
			IconName: icons.NameFolder,
			Tooltip:  "Folders",
		}))
	default:
		desk, ok := fyneApp.(desktop.App)
		if !ok {
			cleanup()
			return nil, nil, ErrNoTray
		}
		if conn != nil {
			logger.Log(logging.LevelWarn, "StatusNotifierWatcher が見つからないため fyne のトレイを使用します", nil)
		}
		a.SetHost(NewFyneHost(desk, a, resolver, theme.FolderIcon()))
	}

	return a, cleanup, nil
}

// sessionBus は Linux でセッションバスに接続します。接続できない場合は nil を返します
func sessionBus(logger logging.Logger) *dbus.Conn {
	if runtime.GOOS != "linux" {
		return nil
	}
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		logger.Log(logging.LevelWarn, "セッションバスに接続できません", err)
		return nil
	}
	return conn
}

func newAutostart(args []string, logger logging.Logger) autostart.Manager {
	opts, err := autostart.DefaultOptions(AppID, AppName)
	if err != nil {
		logger.Log(logging.LevelWarn, "自動起動を設定できません", err)
		return nil
	}
	opts.Args = args

	m, err := autostart.New(opts)
	if err != nil {
		logger.Log(logging.LevelWarn, fmt.Sprintf("自動起動を設定できません（%s）", runtime.GOOS), err)
		return nil
	}
	return m
}
