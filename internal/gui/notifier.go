package gui

import "fyne.io/fyne/v2"

// Notifier はデスクトップ通知でエラーを知らせます
type Notifier struct {
	app fyne.App
}

// NewNotifier は新しい Notifier インスタンスを作成します
func NewNotifier(a fyne.App) *Notifier {
	return &Notifier{app: a}
}

// NotifyError は通知を送信します
func (n *Notifier) NotifyError(title, message string) {
	n.app.SendNotification(fyne.NewNotification(title, message))
}
