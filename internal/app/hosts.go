package app

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/godbus/dbus/v5"

	"FolderTray/internal/gui"
	"FolderTray/internal/interface/tray"
)

// dbusHost は StatusNotifierItem としてメニューを公開します
type dbusHost struct {
	server *tray.Server
	menu   *tray.Menu
}

// NewDBusHost はセッションバスにメニューを公開するホストを作成します
func NewDBusHost(conn *dbus.Conn, a *Application, resolver tray.IconResolver, opts tray.Options) Host {
	menu := tray.NewMenu(a.tree, a, resolver, a.logger)
	return &dbusHost{
		server: tray.NewServer(conn, menu, opts, a.logger),
		menu:   menu,
	}
}

func (h *dbusHost) Start() error { return h.server.Start() }

func (h *dbusHost) Invalidate() { h.menu.Invalidate(0) }

func (h *dbusHost) Close() error { return h.server.Close() }

// fyneHost は fyne のシステムトレイにメニューを表示します
type fyneHost struct {
	menu *gui.TrayMenu
	icon fyne.Resource
}

// NewFyneHost は fyne のシステムトレイを使うホストを作成します
func NewFyneHost(desk desktop.App, a *Application, resolver gui.IconResolver, icon fyne.Resource) Host {
	return &fyneHost{
		menu: gui.NewTrayMenu(desk, a.tree, a, resolver),
		icon: icon,
	}
}

func (h *fyneHost) Start() error {
	if h.icon != nil {
		h.menu.SetIcon(h.icon)
	}
	h.menu.Refresh()
	return nil
}

func (h *fyneHost) Invalidate() { h.menu.Refresh() }

func (h *fyneHost) Close() error { return nil }
