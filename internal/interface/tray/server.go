// Package tray は StatusNotifierItem と com.canonical.dbusmenu による
// D-Bus のトレイアイコンを提供します
package tray

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/godbus/dbus/v5/prop"

	"FolderTray/internal/infrastructure/logging"
)

const (
	ItemInterface    = "org.kde.StatusNotifierItem"
	ItemPath         = dbus.ObjectPath("/StatusNotifierItem")
	WatcherName      = "org.kde.StatusNotifierWatcher"
	WatcherInterface = "org.kde.StatusNotifierWatcher"
	WatcherPath      = dbus.ObjectPath("/StatusNotifierWatcher")
)

// ErrNoWatcher はトレイを表示するホストがセッションに存在しないことを示します
var ErrNoWatcher = errors.New("tray: no StatusNotifierWatcher on the session bus")

// Options はトレイアイコンの表示内容です
type Options struct {
	ID       string
	Title    string
	IconName string
	Tooltip  string
}

// pixmap は (iiay) 構造です
type pixmap struct {
	Width  int32
	Height int32
	Data   []byte
}

// tooltip は (sa(iiay)ss) 構造です
type tooltip struct {
	IconName   string
	IconPixmap []pixmap
	Title      string
	Text       string
}

// item は org.kde.StatusNotifierItem のメソッドを実装します。
// ItemIsMenu が true のため、クリックはホストがメニューの表示として扱います。
type item struct{}

func (i *item) Activate(x, y int32) *dbus.Error { return nil }

func (i *item) SecondaryActivate(x, y int32) *dbus.Error { return nil }

func (i *item) ContextMenu(x, y int32) *dbus.Error { return nil }

func (i *item) Scroll(delta int32, orientation string) *dbus.Error { return nil }

// Server はセッションバスにトレイアイコンとメニューを公開します
type Server struct {
	conn    *dbus.Conn
	menu    *Menu
	opts    Options
	logger  logging.Logger
	name    string
	signals chan *dbus.Signal

	mu     sync.Mutex
	closed bool
}

// NewServer は新しい Server インスタンスを作成します
func NewServer(conn *dbus.Conn, menu *Menu, opts Options, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.Discard{}
	}
	return &Server{
		conn:    conn,
		menu:    menu,
		opts:    opts,
		logger:  logger,
		name:    fmt.Sprintf("%s-%d-1", ItemInterface, os.Getpid()),
		signals: make(chan *dbus.Signal, 16),
	}
}

// HasWatcher はセッションバスに StatusNotifierWatcher が存在するかを返します
func HasWatcher(conn *dbus.Conn) bool {
	var owner string
	err := conn.BusObject().Call("org.freedesktop.DBus.GetNameOwner", 0, WatcherName).Store(&owner)
	return err == nil && owner != ""
}

// Start はオブジェクトを公開して StatusNotifierWatcher に登録します
func (s *Server) Start() error {
	reply, err := s.conn.RequestName(s.name, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("tray: failed to request name %s: %w", s.name, err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("tray: name %s already taken", s.name)
	}

	s.menu.bind(s.conn)
	if err := s.export(); err != nil {
		return err
	}

	s.conn.AddMatchSignal(
		dbus.WithMatchInterface("org.freedesktop.DBus"),
		dbus.WithMatchSender("org.freedesktop.DBus"),
		dbus.WithMatchMember("NameOwnerChanged"),
		dbus.WithMatchArg(0, WatcherName),
	)
	s.conn.Signal(s.signals)
	go s.watch()

	if err := s.register(); err != nil {
		return err
	}
	s.logger.Log(logging.LevelInfo, fmt.Sprintf("トレイアイコンを登録しました: %s", s.name), nil)
	return nil
}

func (s *Server) export() error {
	if err := s.conn.Export(&item{}, ItemPath, ItemInterface); err != nil {
		return fmt.Errorf("tray: failed to export %s: %w", ItemInterface, err)
	}
	if err := s.conn.Export(s.menu, MenuPath, MenuInterface); err != nil {
		return fmt.Errorf("tray: failed to export %s: %w", MenuInterface, err)
	}

	itemProps, err := prop.Export(s.conn, ItemPath, prop.Map{
		ItemInterface: map[string]*prop.Prop{
			"Category":   {Value: "ApplicationStatus", Emit: prop.EmitTrue},
			"Id":         {Value: s.opts.ID, Emit: prop.EmitTrue},
			"Title":      {Value: s.opts.Title, Emit: prop.EmitTrue},
			"Status":     {Value: "Active", Emit: prop.EmitTrue},
			"IconName":   {Value: s.opts.IconName, Emit: prop.EmitTrue},
			"IconPixmap": {Value: []pixmap{}, Emit: prop.EmitTrue},
			"ItemIsMenu": {Value: true, Emit: prop.EmitTrue},
			"Menu":       {Value: MenuPath, Emit: prop.EmitTrue},
			"ToolTip": {
				Value: tooltip{IconName: s.opts.IconName, IconPixmap: []pixmap{}, Title: s.opts.Title, Text: s.opts.Tooltip},
				Emit:  prop.EmitTrue,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("tray: failed to export item properties: %w", err)
	}

	menuProps, err := prop.Export(s.conn, MenuPath, prop.Map{
		MenuInterface: map[string]*prop.Prop{
			"Version":       {Value: uint32(3), Emit: prop.EmitTrue},
			"TextDirection": {Value: "ltr", Emit: prop.EmitTrue},
			"Status":        {Value: "normal", Emit: prop.EmitTrue},
			"IconThemePath": {Value: []string{}, Emit: prop.EmitTrue},
		},
	})
	if err != nil {
		return fmt.Errorf("tray: failed to export menu properties: %w", err)
	}

	for path, node := range map[dbus.ObjectPath]*introspect.Node{
		ItemPath: {
			Name: string(ItemPath),
			Interfaces: []introspect.Interface{
				introspect.IntrospectData,
				prop.IntrospectData,
				{Name: ItemInterface, Methods: introspect.Methods(&item{}), Properties: itemProps.Introspection(ItemInterface)},
			},
		},
		MenuPath: {
			Name: string(MenuPath),
			Interfaces: []introspect.Interface{
				introspect.IntrospectData,
				prop.IntrospectData,
				{
					Name:       MenuInterface,
					Methods:    introspect.Methods(s.menu),
					Properties: menuProps.Introspection(MenuInterface),
					Signals: []introspect.Signal{{
						Name: "LayoutUpdated",
						Args: []introspect.Arg{{Name: "revision", Type: "u"}, {Name: "parent", Type: "i"}},
					}},
				},
			},
		},
	} {
		if err := s.conn.Export(introspect.NewIntrospectable(node), path, "org.freedesktop.DBus.Introspectable"); err != nil {
			return fmt.Errorf("tray: failed to export introspection: %w", err)
		}
	}
	return nil
}

// register は StatusNotifierWatcher にアイテムを登録します
func (s *Server) register() error {
	obj := s.conn.Object(WatcherName, WatcherPath)
	call := obj.Call(WatcherInterface+".RegisterStatusNotifierItem", 0, s.name)
	if call.Err != nil {
		return fmt.Errorf("%w: %v", ErrNoWatcher, call.Err)
	}
	return nil
}

// watch は StatusNotifierWatcher が再起動したときに登録し直します
func (s *Server) watch() {
	for signal := range s.signals {
		if signal.Name != "org.freedesktop.DBus.NameOwnerChanged" || len(signal.Body) < 3 {
			continue
		}
		name, _ := signal.Body[0].(string)
		newOwner, _ := signal.Body[2].(string)
		if name != WatcherName || newOwner == "" {
			continue
		}
		if err := s.register(); err != nil {
			s.logger.Log(logging.LevelWarn, "トレイアイコンの再登録に失敗", err)
		}
	}
}

// Close は公開を終了します。接続自体は閉じません
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	s.conn.RemoveMatchSignal(
		dbus.WithMatchInterface("org.freedesktop.DBus"),
		dbus.WithMatchSender("org.freedesktop.DBus"),
		dbus.WithMatchMember("NameOwnerChanged"),
		dbus.WithMatchArg(0, WatcherName),
	)
	s.conn.RemoveSignal(s.signals)
	close(s.signals)

	s.conn.Export(nil, ItemPath, ItemInterface)
	s.conn.Export(nil, MenuPath, MenuInterface)
	_, err := s.conn.ReleaseName(s.name)
	return err
}
