// Package autostart はログイン時の自動起動の登録機能を提供します
package autostart

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Manager は自動起動の登録状態を管理するインターフェースです
type Manager interface {
	Enabled() (bool, error)
	SetEnabled(enabled bool) error
}

// Options は登録する内容です
type Options struct {
	// AppID はファイル名やレジストリの値の名前に使う識別子です
	AppID string
	// Name は表示名です
	Name string
	// Executable は起動する実行ファイルの絶対パスです
	Executable string
	// Args は実行ファイルに渡す引数です
	Args []string
}

// Command は実行ファイルと引数を1つのスライスにまとめて返します
func (o Options) Command() []string {
	return append([]string{o.Executable}, o.Args...)
}

// DefaultOptions は現在の実行ファイルを起動する Options を返します
func DefaultOptions(appID, name string) (Options, error) {
	exe, err := os.Executable()
	if err != nil {
		return Options{}, fmt.Errorf("実行ファイルのパスを取得できません: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return Options{AppID: appID, Name: name, Executable: exe}, nil
}

// RunCommand は Windows の Run キーに登録するコマンドラインを作成します
func RunCommand(opts Options) string {
	args := opts.Command()
	quoted := make([]string, len(args))
	for i, arg := range args {
		if arg == "" || strings.ContainsAny(arg, " \t") {
			arg = `"` + arg + `"`
		}
		quoted[i] = arg
	}
	return strings.Join(quoted, " ")
}
