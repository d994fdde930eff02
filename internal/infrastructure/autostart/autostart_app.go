//go:build !windows

package autostart

import (
	"errors"
	"fmt"
	"os"

	goautostart "github.com/emersion/go-autostart"
)

// launchEntry は go-autostart の App が提供する登録操作です
type launchEntry interface {
	IsEnabled() bool
	Enable() error
	Disable() error
}

// appEntry は XDG autostart の .desktop ファイル（Linux など）または
// LaunchAgent の plist（macOS）で登録状態を表す Manager です
type appEntry struct {
	app launchEntry
}

// New は go-autostart で登録する Manager を作成します
func New(opts Options) (Manager, error) {
	if opts.AppID == "" || opts.Executable == "" {
		return nil, errors.New("自動起動の識別子と実行ファイルを指定してください")
	}
	return &appEntry{app: newApp(opts)}, nil
}

// newApp の Name は .desktop ファイル名と LaunchAgent のラベルになります
func newApp(opts Options) *goautostart.App {
	return &goautostart.App{
		Name:        opts.AppID,
		DisplayName: opts.Name,
		Exec:        opts.Command(),
	}
}

func (e *appEntry) Enabled() (bool, error) {
	return e.app.IsEnabled(), nil
}

func (e *appEntry) SetEnabled(enabled bool) error {
	if !enabled {
		if err := e.app.Disable(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("自動起動の解除に失敗しました: %w", err)
		}
		return nil
	}
	if err := e.app.Enable(); err != nil {
		return fmt.Errorf("自動起動の登録に失敗しました: %w", err)
	}
	return nil
}
