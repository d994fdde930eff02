package tray

import (
	"slices"
	"strings"

	"github.com/godbus/dbus/v5"

	"FolderTray/internal/domain/model"
	"FolderTray/internal/infrastructure/icons"
)

// 固定の行の表示文字列です
const (
	LabelOpenPrefix = "Open "
	LabelSettings   = "Settings…"
	LabelReload     = "Reload"
	LabelQuit       = "Quit"
)

// layout は com.canonical.dbusmenu の (ia{sv}av) 構造です
type layout struct {
	ID         int32
	Properties map[string]dbus.Variant
	Children   []dbus.Variant
}

// itemProperties は GetGroupProperties の (ia{sv}) 構造です
type itemProperties struct {
	ID         int32
	Properties map[string]dbus.Variant
}

// IconResolver はメニュー項目のアイコンを決定します
type IconResolver interface {
	Resolve(path string, kind model.NodeKind) icons.Icon
}

// row は1つのメニュー項目を D-Bus に渡す前の中間表現です
type row struct {
	id       int32
	props    map[string]any
	submenu  bool
	children func() []row
}

// escapeLabel はアクセスキーとして解釈されないように "_" を二重にします
func escapeLabel(label string) string {
	return strings.ReplaceAll(label, "_", "__")
}

func separatorRow(id int32) row {
	return row{id: id, props: map[string]any{"type": "separator"}}
}

func actionRow(id int32, label, iconName string) row {
	props := map[string]any{"label": escapeLabel(label)}
	if iconName != "" {
		props["icon-name"] = iconName
	}
	return row{id: id, props: props}
}

// nodeRow はツリーのノードを行に変換します。呼び出し元はツリーをロックしている必要があります
func nodeRow(n *model.MenuNode, resolver IconResolver) row {
	r := row{id: n.ID, props: map[string]any{"label": escapeLabel(n.Label)}}
	if resolver != nil {
		if icon := resolver.Resolve(n.Path, n.Kind); icon.Name != "" {
			r.props["icon-name"] = icon.Name
		}
	}
	if !n.Enabled() {
		r.props["enabled"] = false
	}

	if n.Expandable() {
		r.submenu = true
		r.props["children-display"] = "submenu"
		r.children = func() []row { return directoryRows(n, resolver) }
	}
	return r
}

// directoryRows はディレクトリのサブメニューの行を作成します。
// 先頭にディレクトリ自体を開く行と区切り線を置きます。
func directoryRows(n *model.MenuNode, resolver IconResolver) []row {
	rows := make([]row, 0, len(n.Children)+2)
	rows = append(rows,
		actionRow(openHeadID(n.ID), LabelOpenPrefix+n.Label, icons.NameFolderOpen),
		separatorRow(separatorID(n.ID)),
	)
	for _, child := range n.Children {
		rows = append(rows, nodeRow(child, resolver))
	}
	return rows
}

// rootRows はトップレベルの行を作成します
func rootRows(roots []*model.MenuNode, resolver IconResolver) []row {
	rows := make([]row, 0, len(roots)+4)
	for _, n := range roots {
		rows = append(rows, nodeRow(n, resolver))
	}
	return append(rows,
		separatorRow(idFixedSeparator),
		actionRow(idSettings, LabelSettings, "preferences-system"),
		actionRow(idReload, LabelReload, "view-refresh"),
		actionRow(idQuit, LabelQuit, "application-exit"),
	)
}

// toLayout は行を depth 階層分の layout に変換します。depth が負の場合は制限しません
func toLayout(r row, depth int32, names []string) layout {
	l := layout{
		ID:         r.id,
		Properties: filterProperties(r.props, names),
		Children:   []dbus.Variant{},
	}
	if depth == 0 || r.children == nil {
		return l
	}
	for _, child := range r.children() {
		l.Children = append(l.Children, dbus.MakeVariant(toLayout(child, depth-1, names)))
	}
	return l
}

// filterProperties は names が空でなければ指定されたプロパティだけを返します
func filterProperties(props map[string]any, names []string) map[string]dbus.Variant {
	result := make(map[string]dbus.Variant, len(props))
	for key, value := range props {
		if len(names) > 0 && !slices.Contains(names, key) {
			continue
		}
		result[key] = dbus.MakeVariant(value)
	}
	return result
}
