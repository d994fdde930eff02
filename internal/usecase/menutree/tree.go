package menutree

import (
	"errors"
	"slices"
	"sync"

	"FolderTray/internal/domain/model"
)

var (
	// ErrUnknownNode は ID に対応するノードが現在のツリーに存在しないことを示します
	ErrUnknownNode = errors.New("menutree: unknown node")
	// ErrNotExpandable はディレクトリ以外のノードを展開しようとしたことを示します
	ErrNotExpandable = errors.New("menutree: node is not expandable")
	// ErrExpandInFlight は同じノードの展開が実行中であることを示します
	ErrExpandInFlight = errors.New("menutree: expand already in flight")
	// ErrNotLaunchable は起動対象のパスを持たないノードであることを示します
	ErrNotLaunchable = errors.New("menutree: node cannot be launched")
	// ErrIDSpaceExhausted はノード ID を使い切ったためツリー全体を構築し直したことを示します
	ErrIDSpaceExhausted = errors.New("menutree: node ids exhausted, tree rebuilt")
)

// Mode は再展開の方式を表します
type Mode int

const (
	// RefreshAlways は開くたびに一覧を取得し直します
	RefreshAlways Mode = iota
	// CacheFirst は最初に開いたときだけ一覧を取得します
	CacheFirst
)

// Tree はメニュー全体の状態を所有し、展開フックを提供します。
// 子リストの置き換えはすべて mu の保護下で行います。
type Tree struct {
	mu        sync.Mutex
	builder   *Builder
	mode      Mode
	rootPaths []string
	roots     []*model.MenuNode
	index     map[int32]*model.MenuNode
	revision  uint32
}

// NewTree は新しい Tree インスタンスを作成します
func NewTree(builder *Builder, mode Mode) *Tree {
	return &Tree{
		builder: builder,
		mode:    mode,
		index:   make(map[int32]*model.MenuNode),
	}
}

// Rebuild はトップレベルを構築し直し、古いツリーと一度に置き換えます。
// ノード ID が上限を超えていた場合は ID を振り直します。
func (t *Tree) Rebuild(rootPaths []string) {
	roots := t.builder.BuildTopLevel(rootPaths)
	if t.builder.exhausted() {
		t.builder.resetIDs()
		roots = t.builder.BuildTopLevel(rootPaths)
	}
	index := make(map[int32]*model.MenuNode)
	for _, n := range roots {
		n.Walk(func(n *model.MenuNode) { index[n.ID] = n })
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.rootPaths = slices.Clone(rootPaths)
	t.roots = roots
	t.index = index
	t.revision++
}

// Expand はディレクトリノードの子リストを現在のファイルシステムの内容で置き換えます。
// 子リストが変更された場合に true を返します。
func (t *Tree) Expand(id int32) (bool, error) {
	t.mu.Lock()
	n, ok := t.index[id]
	switch {
	case !ok:
		t.mu.Unlock()
		return false, ErrUnknownNode
	case !n.Expandable():
		t.mu.Unlock()
		return false, ErrNotExpandable
	case n.State == model.Populating:
		t.mu.Unlock()
		return false, ErrExpandInFlight
	case t.mode == CacheFirst && n.State == model.Populated:
		t.mu.Unlock()
		return false, nil
	}
	previous := n.State
	n.State = model.Populating
	path := n.Path
	t.mu.Unlock()

	children := t.builder.BuildChildren(path, true)
	if t.builder.exhausted() {
		t.mu.Lock()
		paths := t.rootPaths
		t.mu.Unlock()
		t.Rebuild(paths)
		return false, ErrIDSpaceExhausted
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// 一覧取得中に再構築や親の再展開で破棄されたノードには反映しない
	if t.index[id] != n {
		n.State = previous
		return false, nil
	}

	for _, old := range n.Children {
		old.Walk(func(o *model.MenuNode) { delete(t.index, o.ID) })
	}
	for _, child := range children {
		child.Walk(func(c *model.MenuNode) { t.index[c.ID] = c })
	}
	n.Children = children
	n.State = model.Populated
	t.revision++

	return true, nil
}

// Target はノードをアクティブ化したときに開くパスを返します
func (t *Tree) Target(id int32) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	n, ok := t.index[id]
	if !ok {
		return "", ErrUnknownNode
	}
	if !n.Launchable() {
		return "", ErrNotLaunchable
	}
	return n.Path, nil
}

// Contains は ID が現在のツリーに存在するかどうかを返します
func (t *Tree) Contains(id int32) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, ok := t.index[id]
	return ok
}

// Revision はツリーが変更されるたびに増加する値を返します
func (t *Tree) Revision() uint32 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.revision
}

// View はツリーをロックしたまま fn を呼び出します。
// fn の中でノードを変更したり、ツリーのメソッドを呼んだりしてはいけません。
func (t *Tree) View(fn func(roots []*model.MenuNode)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fn(t.roots)
}

// ViewNode は ID のノードをロックしたまま fn に渡します
func (t *Tree) ViewNode(id int32, fn func(n *model.MenuNode)) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	n, ok := t.index[id]
	if !ok {
		return ErrUnknownNode
	}
	fn(n)
	return nil
}

// ExpandLevels はトップレベルから depth 階層分のディレクトリを順に展開します。
// コマンドラインでツリーを表示するためのもので、メニューの表示では使いません。
func (t *Tree) ExpandLevels(depth int) error {
	var level []int32
	t.View(func(roots []*model.MenuNode) {
		for _, n := range roots {
			if n.Expandable() {
				level = append(level, n.ID)
			}
		}
	})

	for d := 0; d < depth && len(level) > 0; d++ {
		var next []int32
		for _, id := range level {
			if _, err := t.Expand(id); err != nil {
				return err
			}
			err := t.ViewNode(id, func(n *model.MenuNode) {
				for _, c := range n.Children {
					if c.Expandable() {
						next = append(next, c.ID)
					}
				}
			})
			switch {
			case errors.Is(err, ErrUnknownNode):
				// 展開中に再構築されて消えたノードは辿らない
			case err != nil:
				return err
			}
		}
		level = next
	}
	return nil
}
