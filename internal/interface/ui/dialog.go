// Package ui はネイティブダイアログによるユーザーインターフェース機能を提供します
package ui

import (
	"errors"
	"fmt"

	"github.com/sqweek/dialog"

	"FolderTray/internal/infrastructure/filesystem"
)

// ErrCancelled はユーザーが選択をキャンセルしたことを示します
var ErrCancelled = errors.New("ui: selection cancelled")

// DirectorySelector はルートに追加するディレクトリの選択機能を提供します
type DirectorySelector struct {
	// validator はディレクトリパスの検証を行うインターフェースです
	validator filesystem.DirectoryValidator
	browse    func(title string) (string, error)
}

// NewDirectorySelector は新しい DirectorySelector インスタンスを作成します
func NewDirectorySelector(validator filesystem.DirectoryValidator) *DirectorySelector {
	return &DirectorySelector{validator: validator, browse: browseDirectory}
}

func browseDirectory(title string) (string, error) {
	return dialog.Directory().Title(title).Browse()
}

// SelectDirectory はダイアログを表示してディレクトリを選択します。
// キャンセルされた場合は ErrCancelled を返します。
func (d *DirectorySelector) SelectDirectory(title string) (string, error) {
	selectedDir, err := d.browse(title)
	if errors.Is(err, dialog.ErrCancelled) {
		return "", ErrCancelled
	}
	if err != nil {
		return "", fmt.Errorf("ディレクトリの選択に失敗しました: %w", err)
	}

	if err := d.validator.ValidateDirectoryPath(selectedDir); err != nil {
		return "", fmt.Errorf("無効なディレクトリが選択されました: %w", err)
	}

	return selectedDir, nil
}

// Notifier は利用者にエラーを通知するインターフェースです
type Notifier interface {
	NotifyError(title, message string)
}

// MessageNotifier はネイティブのメッセージボックスでエラーを通知します
type MessageNotifier struct {
	show func(title, message string)
}

// NewMessageNotifier は新しい MessageNotifier インスタンスを作成します
func NewMessageNotifier() *MessageNotifier {
	return &MessageNotifier{show: func(title, message string) {
		dialog.Message("%s", message).Title(title).Error()
	}}
}

// NotifyError はエラーメッセージを表示します
func (n *MessageNotifier) NotifyError(title, message string) {
	n.show(title, message)
}
