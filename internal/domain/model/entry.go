// package model はドメインモデルを定義します
package model

import (
	"path/filepath"
	"strings"
)

// EntryKind はファイルシステム要素の種別を表します
type EntryKind int

const (
	// KindFile は通常のファイル（またはディレクトリ以外の要素）です
	KindFile EntryKind = iota
	// KindDirectory はディレクトリです
	KindDirectory
)

func (k EntryKind) String() string {
	if k == KindDirectory {
		return "directory"
	}
	return "file"
}

// FileSystemEntry はメニューに表示されるファイルシステムの要素（ファイルまたはディレクトリ）を表します。
// 一覧取得のたびに新しく生成され、生成後は変更されません。
type FileSystemEntry struct {
	// Path は要素の絶対パスを表します。1回の一覧取得の中で一意です
	Path string
	// DisplayName はメニューに表示する名前です
	DisplayName string
	// Kind はファイルかディレクトリかを示します
	Kind EntryKind
}

// NewFileSystemEntry はパスと種別から FileSystemEntry を作成します
func NewFileSystemEntry(path string, kind EntryKind) FileSystemEntry {
	return FileSystemEntry{
		Path:        path,
		DisplayName: DisplayName(path),
		Kind:        kind,
	}
}

// IsDir はディレクトリであるかどうかを返します
func (e FileSystemEntry) IsDir() bool {
	return e.Kind == KindDirectory
}

// DisplayName はパスの末尾要素を返します。
// ドライブのルートのように末尾要素が空になる場合はパス全体を返します。
func DisplayName(path string) string {
	trimmed := strings.TrimRight(path, "/"+string(filepath.Separator))
	if trimmed == "" || trimmed == filepath.VolumeName(path) {
		return path
	}

	name := filepath.Base(trimmed)
	if name == "." || name == string(filepath.Separator) || name == "" {
		return path
	}
	return name
}
