// Package filesystem はファイルシステム操作を提供します
package filesystem

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"FolderTray/internal/domain/model"
	"FolderTray/internal/infrastructure/logging"
)

const (
	// DefaultEntryLimit はメニューの子として扱う要素数の上限です
	DefaultEntryLimit = 100
	// readBatchSize は ReadDir で一度に読み込む要素数です
	readBatchSize = 64
)

// HiddenFunc は要素が非表示（Hidden または System 属性）かどうかを判定します
type HiddenFunc func(path string, entry fs.DirEntry) (bool, error)

// Listing はディレクトリ直下の一覧取得結果です
type Listing struct {
	// Dir は一覧を取得したディレクトリのパスです
	Dir string
	// Entries は列挙順の要素です。ソートはされていません
	Entries []model.FileSystemEntry
	// Truncated は上限を超える要素が存在したことを示します
	Truncated bool
}

// EntryLister はディレクトリの一覧取得機能を提供するインターフェースです
type EntryLister interface {
	List(dir string) (Listing, error)
}

// Lister はディレクトリ直下の要素を列挙する構造体です
type Lister struct {
	logger logging.Logger
	limit  int
	hidden HiddenFunc
}

// Option は Lister の設定を変更します
type Option func(*Lister)

// WithLimit は要素数の上限を設定します
func WithLimit(limit int) Option {
	return func(l *Lister) {
		if limit > 0 {
			l.limit = limit
		}
	}
}

// WithHiddenFunc は非表示判定の関数を差し替えます
func WithHiddenFunc(hidden HiddenFunc) Option {
	return func(l *Lister) {
		if hidden != nil {
			l.hidden = hidden
		}
	}
}

// NewLister は新しい Lister インスタンスを作成します
func NewLister(logger logging.Logger, opts ...Option) *Lister {
	if logger == nil {
		logger = logging.Discard{}
	}
	l := &Lister{
		logger: logger,
		limit:  DefaultEntryLimit,
		hidden: isHidden,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Limit は要素数の上限を返します
func (l *Lister) Limit() int {
	return l.limit
}

// List はディレクトリ直下の表示対象の要素を列挙します。
// 再帰はせず、エラーは常に *ListError として返します。
func (l *Lister) List(dir string) (Listing, error) {
	listing := Listing{Dir: dir}

	info, err := os.Stat(dir)
	if err != nil {
		return listing, classify(dir, err)
	}
	if !info.IsDir() {
		return listing, &ListError{Kind: NotFound, Path: dir, Message: "Not a folder"}
	}

	f, err := os.Open(dir)
	if err != nil {
		return listing, classify(dir, err)
	}
	defer f.Close()

	for {
		batch, readErr := f.ReadDir(readBatchSize)
		for _, d := range batch {
			path := filepath.Join(dir, d.Name())
			if l.isHidden(path, d) {
				continue
			}
			if len(listing.Entries) == l.limit {
				listing.Truncated = true
				return listing, nil
			}
			listing.Entries = append(listing.Entries, model.NewFileSystemEntry(path, kindOf(path, d)))
		}

		if errors.Is(readErr, io.EOF) || (readErr == nil && len(batch) == 0) {
			return listing, nil
		}
		if readErr != nil {
			l.logger.Log(logging.LevelWarn, fmt.Sprintf("ディレクトリ '%s' の読み込みに失敗", dir), readErr)
			return Listing{Dir: dir}, classify(dir, readErr)
		}
	}
}

// isHidden は属性の取得に失敗した要素を表示対象として扱います
func (l *Lister) isHidden(path string, d fs.DirEntry) bool {
	hidden, err := l.hidden(path, d)
	if err != nil {
		l.logger.Log(logging.LevelDebug, fmt.Sprintf("属性の取得に失敗したため表示します: %s", path), err)
		return false
	}
	return hidden
}

// kindOf はシンボリックリンクをリンク先の種別で分類します。リンク切れはファイルとして扱います
func kindOf(path string, d fs.DirEntry) model.EntryKind {
	if d.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(path)
		if err == nil && info.IsDir() {
			return model.KindDirectory
		}
		return model.KindFile
	}
	if d.IsDir() {
		return model.KindDirectory
	}
	return model.KindFile
}

// KindOfPath はパス自体がディレクトリかどうかを調べて種別を返します
func KindOfPath(path string) (model.EntryKind, error) {
	info, err := os.Stat(path)
	if err != nil {
		return model.KindFile, classify(path, err)
	}
	if info.IsDir() {
		return model.KindDirectory, nil
	}
	return model.KindFile, nil
}
