package gui

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"FolderTray/internal/domain/model"
	"FolderTray/internal/infrastructure/icons"
	"FolderTray/internal/usecase/menutree"
)

// 補助の行の表示文字列です
const (
	LabelOpenPrefix = "Open "
	LabelRefresh    = "Refresh"
	LabelSettings   = "Settings…"
	LabelReload     = "Reload"
	LabelQuit       = "Quit"
)

// Source はメニューツリーを読み取るためのインターフェースです
type Source interface {
	View(fn func(roots []*model.MenuNode))
}

// TrayActions はトレイメニューの操作に対する処理です
type TrayActions interface {
	Expand(id int32) bool
	Activate(id int32)
	ShowSettings()
	Reload()
	Quit()
}

// IconResolver はメニュー項目のアイコンを決定します
type IconResolver interface {
	Resolve(path string, kind model.NodeKind) icons.Icon
}

// TrayMenu は fyne のシステムトレイにメニューツリーを表示します。
// fyne のメニューにはサブメニューを開く通知がないため、未展開のディレクトリでは
// "Loading…" の行を選ぶ操作で展開します。
type TrayMenu struct {
	desk     desktop.App
	source   Source
	actions  TrayActions
	resolver IconResolver

	mu sync.Mutex
}

// NewTrayMenu は新しい TrayMenu インスタンスを作成します
func NewTrayMenu(desk desktop.App, source Source, actions TrayActions, resolver IconResolver) *TrayMenu {
	return &TrayMenu{desk: desk, source: source, actions: actions, resolver: resolver}
}

// SetIcon はトレイアイコンを設定します
func (t *TrayMenu) SetIcon(icon fyne.Resource) {
	t.desk.SetSystemTrayIcon(icon)
}

// Refresh はツリーの現在の状態からメニューを作り直します
func (t *TrayMenu) Refresh() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.desk.SetSystemTrayMenu(t.build())
}

func (t *TrayMenu) build() *fyne.Menu {
	var items []*fyne.MenuItem
	t.source.View(func(roots []*model.MenuNode) {
		for _, n := range roots {
			items = append(items, t.item(n))
		}
	})

	quit := fyne.NewMenuItem(LabelQuit, t.actions.Quit)
	quit.IsQuit = true
	items = append(items,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(LabelSettings, t.actions.ShowSettings),
		fyne.NewMenuItem(LabelReload, t.actions.Reload),
		quit,
	)
	return fyne.NewMenu("FolderTray", items...)
}

// item はノードをメニュー項目に変換します。呼び出し元はツリーをロックしている必要があります
func (t *TrayMenu) item(n *model.MenuNode) *fyne.MenuItem {
	id := n.ID
	mi := fyne.NewMenuItem(n.Label, nil)
	if t.resolver != nil {
		mi.Icon = t.resolver.Resolve(n.Path, n.Kind).Resource
	}

	switch {
	case n.Expandable():
		mi.ChildMenu = fyne.NewMenu(n.Label, t.directoryItems(n)...)
	case n.Launchable():
		mi.Action = func() { t.actions.Activate(id) }
	default:
		mi.Disabled = true
	}
	return mi
}

func (t *TrayMenu) directoryItems(n *model.MenuNode) []*fyne.MenuItem {
	id := n.ID
	items := []*fyne.MenuItem{
		fyne.NewMenuItem(LabelOpenPrefix+n.Label, func() { t.actions.Activate(id) }),
		fyne.NewMenuItemSeparator(),
	}

	if n.State != model.Populated {
		loading := fyne.NewMenuItem(menutree.LabelLoading, func() { t.expand(id) })
		return append(items, loading)
	}

	for _, child := range n.Children {
		items = append(items, t.item(child))
	}
	return append(items,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(LabelRefresh, func() { t.expand(id) }),
	)
}

func (t *TrayMenu) expand(id int32) {
	if t.actions.Expand(id) {
		t.Refresh()
	}
}
