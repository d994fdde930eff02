// Package icons はメニュー項目のアイコンを解決する機能を提供します
package icons

import (
	"mime"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"

	"FolderTray/internal/domain/model"
)

// Icon は1つのメニュー項目のアイコンです
type Icon struct {
	// Name は freedesktop のアイコン名です（D-Bus のメニューで使用）
	Name string
	// Resource は fyne のメニューで使用する画像です
	Resource fyne.Resource
}

// 汎用アイコンの名前です
const (
	NameFolder     = "folder"
	NameFolderOpen = "folder-open"
	NameFile       = "text-x-generic"
	NameError      = "dialog-error"
)

// Resolver はパスと種別からアイコンを決定します
type Resolver struct {
	mimeType func(path string) string
}

// NewResolver は新しい Resolver インスタンスを作成します
func NewResolver() *Resolver {
	return &Resolver{mimeType: fileMimeType}
}

// fileMimeType は fyne の URI から MIME タイプを取得します
func fileMimeType(path string) string {
	return storage.NewFileURI(path).MimeType()
}

// Resolve はノードのアイコンを返します。判別できないファイルには汎用のファイルアイコンを返します。
// 仮ノードにはアイコンを付けません。
func (r *Resolver) Resolve(path string, kind model.NodeKind) Icon {
	switch kind {
	case model.NodeDirectory:
		return Icon{Name: NameFolder, Resource: theme.FolderIcon()}
	case model.NodeOverflow:
		return Icon{Name: NameFolderOpen, Resource: theme.FolderOpenIcon()}
	case model.NodeError:
		return Icon{Name: NameError, Resource: theme.ErrorIcon()}
	case model.NodeFile:
		return r.fileIcon(path)
	}
	return Icon{}
}

func (r *Resolver) fileIcon(path string) Icon {
	// 拡張子のないファイルは内容を読まずに汎用アイコンにする
	if filepath.Ext(path) == "" {
		return Icon{Name: NameFile, Resource: theme.FileIcon()}
	}

	mediaType, _, err := mime.ParseMediaType(r.mimeType(path))
	if err != nil || mediaType == "" {
		return Icon{Name: NameFile, Resource: theme.FileIcon()}
	}

	major, minor, _ := strings.Cut(mediaType, "/")
	switch major {
	case "image":
		return Icon{Name: "image-x-generic", Resource: theme.FileImageIcon()}
	case "audio":
		return Icon{Name: "audio-x-generic", Resource: theme.FileAudioIcon()}
	case "video":
		return Icon{Name: "video-x-generic", Resource: theme.FileVideoIcon()}
	case "font":
		return Icon{Name: "font-x-generic", Resource: theme.FileIcon()}
	case "text":
		if minor == "html" {
			return Icon{Name: "text-html", Resource: theme.FileTextIcon()}
		}
		return Icon{Name: NameFile, Resource: theme.FileTextIcon()}
	case "application":
		return Icon{Name: applicationIconName(minor), Resource: theme.FileApplicationIcon()}
	}
	return Icon{Name: NameFile, Resource: theme.FileIcon()}
}

func applicationIconName(minor string) string {
	switch minor {
	case "zip", "gzip", "x-tar", "x-7z-compressed", "x-rar-compressed", "x-bzip2", "x-xz":
		return "package-x-generic"
	case "x-sh", "x-shellscript", "javascript", "x-python":
		return "text-x-script"
	case "x-msdownload", "x-executable", "vnd.microsoft.portable-executable":
		return "application-x-executable"
	case "pdf", "msword", "rtf", "vnd.oasis.opendocument.text":
		return "x-office-document"
	}
	return NameFile
}
