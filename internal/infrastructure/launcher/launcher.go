// Package launcher はパスを OS の既定のアプリケーションで開く機能を提供します
package launcher

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"FolderTray/internal/infrastructure/logging"
)

// Launcher はパスを開くインターフェースです
type Launcher interface {
	Open(path string) error
}

// LaunchError はパスを開けなかったことを表します
type LaunchError struct {
	Path string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("'%s' を開けませんでした: %v", e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// URLOpener は URL を既定のハンドラーで開きます。fyne.App が満たします
type URLOpener interface {
	OpenURL(u *url.URL) error
}

// FolderShower はディレクトリをファイルブラウザで表示します
type FolderShower interface {
	ShowFolder(path string) error
}

// Opener は fyne の OpenURL でパスを開く Launcher です。
// folders が設定されている場合、ディレクトリはそちらで開きます。
type Opener struct {
	urls    URLOpener
	folders FolderShower
	logger  logging.Logger
}

// Option は Opener の設定を変更します
type Option func(*Opener)

// WithFolderShower はディレクトリを開く方法を設定します
func WithFolderShower(folders FolderShower) Option {
	return func(o *Opener) {
		o.folders = folders
	}
}

// NewOpener は新しい Opener インスタンスを作成します
func NewOpener(urls URLOpener, logger logging.Logger, opts ...Option) *Opener {
	if logger == nil {
		logger = logging.Discard{}
	}
	o := &Opener{urls: urls, logger: logger}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Open はパスを開きます。失敗した場合は *LaunchError を返します
func (o *Opener) Open(path string) error {
	if path == "" {
		return &LaunchError{Path: path, Err: errors.New("パスが指定されていません")}
	}

	info, err := os.Stat(path)
	if err != nil {
		return &LaunchError{Path: path, Err: err}
	}

	if info.IsDir() && o.folders != nil {
		err := o.folders.ShowFolder(path)
		if err == nil {
			return nil
		}
		o.logger.Log(logging.LevelDebug, fmt.Sprintf("ファイルマネージャーで開けなかったため URL で開きます: %s", path), err)
	}

	u := FileURL(path)
	if o.urls == nil {
		return &LaunchError{Path: path, Err: errors.New("URL を開く手段がありません")}
	}
	if err := o.urls.OpenURL(u); err != nil {
		return &LaunchError{Path: path, Err: err}
	}

	o.logger.Log(logging.LevelInfo, fmt.Sprintf("開きました: %s", path), nil)
	return nil
}

// FileURL はパスを file:// 形式の URL に変換します。# や ? を含む名前もそのまま扱えます
func FileURL(path string) *url.URL {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return &url.URL{Scheme: "file", Path: p}
}
