// Package menutree はルートパスからメニューのツリーを遅延構築する機能を提供します
package menutree

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync/atomic"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"FolderTray/internal/domain/model"
	"FolderTray/internal/infrastructure/filesystem"
	"FolderTray/internal/infrastructure/logging"
)

// 仮ノードと補助ノードの表示文字列です
const (
	LabelLoading  = "Loading…"
	LabelEmpty    = "(Empty)"
	LabelOverflow = "More… (open in file browser)"
)

// Lister はディレクトリ直下の一覧を取得するインターフェースです
type Lister interface {
	List(dir string) (filesystem.Listing, error)
}

// KindFunc はパス自体の種別を判定します
type KindFunc func(path string) (model.EntryKind, error)

// Builder はメニューノードを構築します。ノードの ID は Builder ごとに一意です
type Builder struct {
	lister Lister
	kindOf KindFunc
	logger logging.Logger
	lastID atomic.Int32
	maxID  int32
}

// NewBuilder は新しい Builder インスタンスを作成します
func NewBuilder(lister Lister, logger logging.Logger) *Builder {
	if logger == nil {
		logger = logging.Discard{}
	}
	return &Builder{
		lister: lister,
		kindOf: filesystem.KindOfPath,
		logger: logger,
		maxID:  model.MaxNodeID,
	}
}

// BuildTopLevel はルートパスごとに1つのノードを作成します。
// ルートの順序は利用者の指定順のままで、ソートしません。
func (b *Builder) BuildTopLevel(rootPaths []string) []*model.MenuNode {
	nodes := make([]*model.MenuNode, 0, len(rootPaths))
	for _, root := range rootPaths {
		nodes = append(nodes, b.rootNode(root))
	}
	return nodes
}

func (b *Builder) rootNode(root string) *model.MenuNode {
	kind, err := b.kindOf(root)
	if err != nil {
		msg := messageOf(err)
		b.logger.Log(logging.LevelWarn, fmt.Sprintf("ルート '%s' にアクセスできません", root), err)
		return &model.MenuNode{
			ID:      b.nextID(),
			Kind:    model.NodeError,
			Label:   fmt.Sprintf("%s (%s)", model.DisplayName(root), msg),
			Path:    root,
			Message: msg,
		}
	}
	return b.entryNode(model.NewFileSystemEntry(root, kind))
}

// BuildChildren はディレクトリの子ノードを構築します。
// 一覧取得の失敗は診断ノード1つに置き換え、呼び出し元には伝播しません。
func (b *Builder) BuildChildren(path string, sorted bool) []*model.MenuNode {
	listing, err := b.lister.List(path)
	if err != nil {
		b.logger.Log(logging.LevelWarn, fmt.Sprintf("ディレクトリ '%s' の一覧取得に失敗", path), err)
		return []*model.MenuNode{b.errorNode(path, messageOf(err))}
	}

	nodes := make([]*model.MenuNode, 0, len(listing.Entries)+1)
	for _, entry := range listing.Entries {
		nodes = append(nodes, b.entryNode(entry))
	}
	if sorted {
		SortNodes(nodes)
	}

	if listing.Truncated {
		nodes = append(nodes, &model.MenuNode{
			ID:    b.nextID(),
			Kind:  model.NodeOverflow,
			Label: LabelOverflow,
			Path:  listing.Dir,
		})
	}

	if len(nodes) == 0 {
		return []*model.MenuNode{b.placeholder(model.NodeEmpty, LabelEmpty)}
	}
	return nodes
}

func (b *Builder) entryNode(entry model.FileSystemEntry) *model.MenuNode {
	if entry.IsDir() {
		return &model.MenuNode{
			ID:       b.nextID(),
			Kind:     model.NodeDirectory,
			Label:    entry.DisplayName,
			Path:     entry.Path,
			State:    model.Unexpanded,
			Children: []*model.MenuNode{b.placeholder(model.NodeLoading, LabelLoading)},
		}
	}
	return &model.MenuNode{
		ID:    b.nextID(),
		Kind:  model.NodeFile,
		Label: entry.DisplayName,
		Path:  entry.Path,
	}
}

func (b *Builder) errorNode(path, msg string) *model.MenuNode {
	return &model.MenuNode{
		ID:      b.nextID(),
		Kind:    model.NodeError,
		Label:   "Error: " + msg,
		Path:    path,
		Message: msg,
	}
}

func (b *Builder) placeholder(kind model.NodeKind, label string) *model.MenuNode {
	return &model.MenuNode{ID: b.nextID(), Kind: kind, Label: label}
}

func (b *Builder) nextID() int32 {
	return b.lastID.Add(1)
}

// exhausted は割り当てた ID が上限を超えたかどうかを返します
func (b *Builder) exhausted() bool {
	return b.lastID.Load() > b.maxID
}

// resetIDs は ID の割り当てを最初からやり直します。
// 古いノードをすべて破棄するときだけ呼び出します。
func (b *Builder) resetIDs() {
	b.lastID.Store(0)
}

// messageOf はエラーから利用者向けのメッセージを取り出します
func messageOf(err error) string {
	var le *filesystem.ListError
	if errors.As(err, &le) && le.Message != "" {
		return le.Message
	}
	return err.Error()
}

// SortNodes はディレクトリをファイルより前に、同じ種別の中では表示名の
// 大文字小文字を区別しない言語非依存の照合順に並べ替えます。結果は入力順に依存しません。
func SortNodes(nodes []*model.MenuNode) {
	col := collate.New(language.Und, collate.IgnoreCase)
	var buf collate.Buffer
	keys := make(map[*model.MenuNode]string, len(nodes))
	for _, n := range nodes {
		keys[n] = string(col.KeyFromString(&buf, n.Label))
		buf.Reset()
	}

	slices.SortFunc(nodes, func(a, c *model.MenuNode) int {
		if ad, cd := a.Kind == model.NodeDirectory, c.Kind == model.NodeDirectory; ad != cd {
			if ad {
				return -1
			}
			return 1
		}
		if r := strings.Compare(keys[a], keys[c]); r != 0 {
			return r
		}
		if r := strings.Compare(a.Label, c.Label); r != 0 {
			return r
		}
		return strings.Compare(a.Path, c.Path)
	})
}
