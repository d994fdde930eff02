package launcher

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	fileManagerName      = "org.freedesktop.FileManager1"
	fileManagerPath      = "/org/freedesktop/FileManager1"
	fileManagerInterface = "org.freedesktop.FileManager1"
)

// FileManager は org.freedesktop.FileManager1 を使ってディレクトリを表示します
type FileManager struct {
	conn *dbus.Conn
}

// NewFileManager は新しい FileManager インスタンスを作成します
func NewFileManager(conn *dbus.Conn) *FileManager {
	return &FileManager{conn: conn}
}

// ShowFolder はディレクトリをファイルマネージャーで開きます
func (m *FileManager) ShowFolder(path string) error {
	obj := m.conn.Object(fileManagerName, dbus.ObjectPath(fileManagerPath))
	call := obj.Call(fileManagerInterface+".ShowFolders", 0, []string{FileURL(path).String()}, "")
	if call.Err != nil {
		return fmt.Errorf("ShowFolders の呼び出しに失敗しました: %w", call.Err)
	}
	return nil
}
