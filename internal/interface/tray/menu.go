package tray

import (
	"fmt"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"

	"FolderTray/internal/domain/model"
	"FolderTray/internal/infrastructure/logging"
)

// MenuInterface は com.canonical.dbusmenu のインターフェース名です
const (
	MenuInterface = "com.canonical.dbusmenu"
	MenuPath      = dbus.ObjectPath("/MenuBar")
)

// openedWindow は AboutToShow の直後に届く opened イベントを同じ操作として扱う期間です
const openedWindow = time.Second

// Source はメニューツリーを読み取るためのインターフェースです
type Source interface {
	View(fn func(roots []*model.MenuNode))
	ViewNode(id int32, fn func(n *model.MenuNode)) error
	Revision() uint32
}

// Actions はメニュー操作に対する処理です
type Actions interface {
	// Expand はディレクトリを展開し、子リストが変わった場合に true を返します
	Expand(id int32) bool
	// Activate はノードのパスを開きます
	Activate(id int32)
	ShowSettings()
	Reload()
	Quit()
}

type emitFunc func(path dbus.ObjectPath, name string, values ...any) error

// Menu は com.canonical.dbusmenu を実装し、サブメニューが開かれるときに展開フックを呼び出します
type Menu struct {
	source   Source
	actions  Actions
	resolver IconResolver
	logger   logging.Logger
	emit     emitFunc
	now      func() time.Time

	mu     sync.Mutex
	opened map[int32]time.Time
}

// NewMenu は新しい Menu インスタンスを作成します
func NewMenu(source Source, actions Actions, resolver IconResolver, logger logging.Logger) *Menu {
	if logger == nil {
		logger = logging.Discard{}
	}
	return &Menu{
		source:   source,
		actions:  actions,
		resolver: resolver,
		logger:   logger,
		emit:     func(dbus.ObjectPath, string, ...any) error { return nil },
		now:      time.Now,
		opened:   make(map[int32]time.Time),
	}
}

// bind は LayoutUpdated シグナルの送信先を接続に設定します
func (m *Menu) bind(conn *dbus.Conn) {
	m.emit = func(path dbus.ObjectPath, name string, values ...any) error {
		return conn.Emit(path, name, values...)
	}
}

// Invalidate はホストに parent 以下の再取得を要求します。0 はメニュー全体です
func (m *Menu) Invalidate(parent int32) {
	if err := m.emit(MenuPath, MenuInterface+".LayoutUpdated", m.source.Revision(), parent); err != nil {
		m.logger.Log(logging.LevelWarn, "LayoutUpdated の送信に失敗", err)
	}
}

// GetLayout は parentID 以下の recursionDepth 階層分の構造を返します
func (m *Menu) GetLayout(parentID int32, recursionDepth int32, propertyNames []string) (uint32, layout, *dbus.Error) {
	var (
		result layout
		found  bool
	)

	kind, nodeID := decodeID(parentID)
	switch kind {
	case rowRoot:
		m.source.View(func(roots []*model.MenuNode) {
			rows := rootRows(roots, m.resolver)
			root := row{id: 0, props: map[string]any{"children-display": "submenu"}, children: func() []row { return rows }}
			result = toLayout(root, recursionDepth, propertyNames)
			found = true
		})
	case rowNode:
		m.source.ViewNode(nodeID, func(n *model.MenuNode) {
			result = toLayout(nodeRow(n, m.resolver), recursionDepth, propertyNames)
			found = true
		})
	default:
		if r, ok := m.row(parentID); ok {
			result = toLayout(r, recursionDepth, propertyNames)
			found = true
		}
	}

	if !found {
		return m.source.Revision(), layout{}, unknownID(parentID)
	}
	return m.source.Revision(), result, nil
}

// GetGroupProperties は複数の項目のプロパティを返します。存在しない ID は無視します
func (m *Menu) GetGroupProperties(ids []int32, propertyNames []string) ([]itemProperties, *dbus.Error) {
	result := make([]itemProperties, 0, len(ids))
	for _, id := range ids {
		r, ok := m.row(id)
		if !ok {
			continue
		}
		result = append(result, itemProperties{ID: id, Properties: filterProperties(r.props, propertyNames)})
	}
	return result, nil
}

// GetProperty は1つの項目のプロパティを返します
func (m *Menu) GetProperty(id int32, name string) (dbus.Variant, *dbus.Error) {
	r, ok := m.row(id)
	if !ok {
		return dbus.Variant{}, unknownID(id)
	}
	value, ok := r.props[name]
	if !ok {
		return dbus.Variant{}, dbus.MakeFailedError(fmt.Errorf("property %q is not set on item %d", name, id))
	}
	return dbus.MakeVariant(value), nil
}

// Event はホストから通知された操作を処理します
func (m *Menu) Event(id int32, eventID string, data dbus.Variant, timestamp uint32) *dbus.Error {
	switch eventID {
	case "clicked":
		m.clicked(id)
	case "opened":
		if kind, nodeID := decodeID(id); kind == rowNode && !m.recentlyOpened(nodeID) {
			m.expand(nodeID)
		}
	case "closed":
		m.mu.Lock()
		delete(m.opened, id)
		m.mu.Unlock()
	}
	return nil
}

// menuEvent は EventGroup の (isvu) 構造です
type menuEvent struct {
	ID        int32
	EventID   string
	Data      dbus.Variant
	Timestamp uint32
}

// EventGroup は複数の操作をまとめて処理し、存在しなかった ID を返します
func (m *Menu) EventGroup(events []menuEvent) ([]int32, *dbus.Error) {
	var idErrors []int32
	for _, e := range events {
		if _, ok := m.row(e.ID); !ok {
			idErrors = append(idErrors, e.ID)
			continue
		}
		m.Event(e.ID, e.EventID, e.Data, e.Timestamp)
	}
	return idErrors, nil
}

// AboutToShow はサブメニューが表示される直前に呼ばれ、ディレクトリを展開します
func (m *Menu) AboutToShow(id int32) (bool, *dbus.Error) {
	kind, nodeID := decodeID(id)
	switch kind {
	case rowNode:
		m.markOpened(nodeID)
		return m.expand(nodeID), nil
	case rowInvalid:
		return false, unknownID(id)
	}
	return false, nil
}

// AboutToShowGroup は複数のサブメニューについて AboutToShow を行います
func (m *Menu) AboutToShowGroup(ids []int32) ([]int32, []int32, *dbus.Error) {
	var updates, idErrors []int32
	for _, id := range ids {
		changed, err := m.AboutToShow(id)
		if err != nil {
			idErrors = append(idErrors, id)
			continue
		}
		if changed {
			updates = append(updates, id)
		}
	}
	return updates, idErrors, nil
}

func (m *Menu) expand(nodeID int32) bool {
	var expandable bool
	m.source.ViewNode(nodeID, func(n *model.MenuNode) { expandable = n.Expandable() })
	if !expandable {
		return false
	}

	changed := m.actions.Expand(nodeID)
	if changed {
		m.Invalidate(nodeID)
	}
	return changed
}

func (m *Menu) clicked(id int32) {
	kind, nodeID := decodeID(id)
	switch kind {
	case rowNode, rowOpenHead:
		m.actions.Activate(nodeID)
	case rowSettings:
		m.actions.ShowSettings()
	case rowReload:
		m.actions.Reload()
	case rowQuit:
		m.actions.Quit()
	}
}

func (m *Menu) markOpened(nodeID int32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opened[nodeID] = m.now()
}

// recentlyOpened は直前の AboutToShow で展開済みかどうかを返します
func (m *Menu) recentlyOpened(nodeID int32) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	at, ok := m.opened[nodeID]
	if !ok {
		return false
	}
	delete(m.opened, nodeID)
	return m.now().Sub(at) < openedWindow
}

// row は ID に対応する現在の行を返します
func (m *Menu) row(id int32) (row, bool) {
	kind, nodeID := decodeID(id)
	switch kind {
	case rowRoot:
		return row{id: 0, props: map[string]any{"children-display": "submenu"}}, true
	case rowFixedSeparator:
		return separatorRow(id), true
	case rowSettings, rowReload, rowQuit:
		for _, r := range rootRows(nil, nil) {
			if r.id == id {
				return r, true
			}
		}
	case rowNode:
		var r row
		err := m.source.ViewNode(nodeID, func(n *model.MenuNode) {
			r = nodeRow(n, m.resolver)
			r.children = nil
		})
		return r, err == nil
	case rowOpenHead, rowHeadSeparator:
		var r row
		err := m.source.ViewNode(nodeID, func(n *model.MenuNode) {
			if !n.Expandable() {
				return
			}
			rows := directoryRows(n, m.resolver)
			if kind == rowOpenHead {
				r = rows[0]
			} else {
				r = rows[1]
			}
		})
		return r, err == nil && r.props != nil
	}
	return row{}, false
}

func unknownID(id int32) *dbus.Error {
	return dbus.MakeFailedError(fmt.Errorf("unknown menu item %d", id))
}
