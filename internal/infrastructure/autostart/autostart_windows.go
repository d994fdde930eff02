//go:build windows

package autostart

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

const runKey = `Software\Microsoft\Windows\CurrentVersion\Run`

// registryEntry は HKCU の Run キーの値で登録状態を表す Manager です
type registryEntry struct {
	name    string
	command string
}

// New は HKCU\...\Run に値を登録する Manager を作成します
func New(opts Options) (Manager, error) {
	return &registryEntry{name: opts.AppID, command: RunCommand(opts)}, nil
}

func (e *registryEntry) Enabled() (bool, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKey, registry.QUERY_VALUE)
	if err != nil {
		return false, fmt.Errorf("Run キーを開けません: %w", err)
	}
	defer k.Close()

	_, _, err = k.GetStringValue(e.name)
	if errors.Is(err, registry.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("自動起動の状態を取得できません: %w", err)
	}
	return true, nil
}

func (e *registryEntry) SetEnabled(enabled bool) error {
	k, _, err := registry.CreateKey(registry.CURRENT_USER, runKey, registry.QUERY_VALUE|registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("Run キーを開けません: %w", err)
	}
	defer k.Close()

	if !enabled {
		if err := k.DeleteValue(e.name); err != nil && !errors.Is(err, registry.ErrNotExist) {
			return fmt.Errorf("自動起動の解除に失敗しました: %w", err)
		}
		return nil
	}
	if err := k.SetStringValue(e.name, e.command); err != nil {
		return fmt.Errorf("自動起動の登録に失敗しました: %w", err)
	}
	return nil
}
