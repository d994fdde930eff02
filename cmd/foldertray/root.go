package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"FolderTray/internal/app"
	"FolderTray/internal/domain/model"
	"FolderTray/internal/infrastructure/config"
	"FolderTray/internal/infrastructure/logging"
	"FolderTray/internal/usecase/menutree"
)

// globalFlags はすべてのコマンドで共通のフラグです
type globalFlags struct {
	configFile string
	logLevel   string
	jsonLogs   bool
}

// newLogger はフラグに従ってロガーを作成します
func (f *globalFlags) newLogger(w io.Writer) *logging.CharmLogger {
	var logger *logging.CharmLogger
	if f.jsonLogs {
		logger = logging.NewJSONLogger(w)
	} else {
		logger = logging.NewTextLogger(w, "foldertray")
	}
	logger.SetLevel(f.logLevel)
	return logger
}

// fileStore は --config が指定されていれば設定ファイルのストアを返します
func (f *globalFlags) fileStore() config.Store {
	if f.configFile == "" {
		return nil
	}
	return config.NewFileStore(f.configFile)
}

// resolveRoots はコマンドラインから参照するルートを決定します。
// --config がない場合は fyne の Preferences を開かずに既定のルートを使います。
func (f *globalFlags) resolveRoots(logger logging.Logger) []string {
	store := f.fileStore()
	if store == nil {
		return config.ResolveRoots(model.Settings{}, nil)
	}
	settings, err := store.Load()
	if err != nil {
		logger.Log(logging.LevelWarn, "設定の読み込みに失敗したため既定のルートを使用します", err)
	}
	return config.ResolveRoots(settings, err)
}

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}
	var (
		cacheExpanded bool
		notifications bool
	)

	cmd := &cobra.Command{
		Use:   "foldertray",
		Short: "Browse folders from the system tray",
		Long: TitleStyle.Render("foldertray") + SubtitleStyle.Render(" - browse folders from the system tray") + `

Shows the configured folders as a tray menu. Submenus are listed
when they are opened, so deep trees cost nothing until you visit them.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := flags.newLogger(os.Stderr)

			mode := menutree.RefreshAlways
			if cacheExpanded {
				mode = menutree.CacheFirst
			}

			application, cleanup, err := app.Bootstrap(app.Options{
				ConfigFile:    flags.configFile,
				Mode:          mode,
				Notifications: notifications,
				AutostartArgs: autostartArgs(flags),
				Logger:        logger,
			})
			if err != nil {
				logger.Log(logging.LevelError, "起動に失敗", err)
				return err
			}
			defer cleanup()

			return application.Run()
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configFile, "config", "", "settings file (TOML, YAML or JSON) instead of the app preferences")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "minimum log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&flags.jsonLogs, "json-logs", false, "write logs as JSON")
	cmd.Flags().BoolVar(&cacheExpanded, "cache-expanded", false, "list each folder only the first time it is opened")
	cmd.Flags().BoolVar(&notifications, "notifications", false, "report errors as desktop notifications instead of message boxes")

	cmd.AddCommand(newListCommand(flags), newRootsCommand(flags))
	return cmd
}

// autostartArgs はログイン時の起動に引き継ぐ引数です
func autostartArgs(flags *globalFlags) []string {
	if flags.configFile == "" {
		return nil
	}
	path := flags.configFile
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return []string{"--config", path}
}
