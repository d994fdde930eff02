package model

// NodeKind はメニューノードの種別を表します
type NodeKind int

const (
	// NodeFile は実在するファイルに結び付いた葉ノードです
	NodeFile NodeKind = iota
	// NodeDirectory は展開可能なディレクトリノードです
	NodeDirectory
	// NodeOverflow は上限を超えたディレクトリをファイルブラウザで開くための葉ノードです
	NodeOverflow
	// NodeLoading は未展開ディレクトリの仮の子ノード（"Loading…"）です
	NodeLoading
	// NodeEmpty は表示できる要素がないディレクトリの仮の子ノードです
	NodeEmpty
	// NodeError は一覧取得に失敗したことを示す無効化された診断ノードです
	NodeError
)

func (k NodeKind) String() string {
	switch k {
	case NodeFile:
		return "file"
	case NodeDirectory:
		return "directory"
	case NodeOverflow:
		return "overflow"
	case NodeLoading:
		return "loading"
	case NodeEmpty:
		return "empty"
	case NodeError:
		return "error"
	}
	return "unknown"
}

// ExpandState はディレクトリノードの展開状態を表します
type ExpandState int

const (
	// Unexpanded は子が仮ノードのみの状態です
	Unexpanded ExpandState = iota
	// Populating は一覧取得中の状態です
	Populating
	// Populated は子リストが構築済みの状態です
	Populated
)

func (s ExpandState) String() string {
	switch s {
	case Populating:
		return "populating"
	case Populated:
		return "populated"
	}
	return "unexpanded"
}

// MaxNodeID はノード ID の上限です。これより大きい値はホストが追加する行に使います
const MaxNodeID int32 = 1<<29 - 1

// MenuNode はメニューに表示される1つの項目を表します。
// 子リストは各ノードが排他的に所有し、展開処理だけが置き換えます。
type MenuNode struct {
	// ID はツリー内で一意な識別子です
	ID int32
	// Kind はノードの種別です
	Kind NodeKind
	// Label は表示する文字列です
	Label string
	// Path は起動対象のパスです。仮ノードでは空です
	Path string
	// Message は NodeError の原因を表します
	Message string
	// State は NodeDirectory の展開状態です
	State ExpandState
	// Children は NodeDirectory の子リストです
	Children []*MenuNode
}

// Expandable は展開フックを持つノードかどうかを返します
func (n *MenuNode) Expandable() bool {
	return n.Kind == NodeDirectory
}

// Enabled は操作可能なノードかどうかを返します。仮ノードと診断ノードは無効です
func (n *MenuNode) Enabled() bool {
	switch n.Kind {
	case NodeLoading, NodeEmpty, NodeError:
		return false
	}
	return true
}

// Launchable はアクティブ化したときに外部ランチャーで開くノードかどうかを返します
func (n *MenuNode) Launchable() bool {
	switch n.Kind {
	case NodeFile, NodeDirectory, NodeOverflow:
		return n.Path != ""
	}
	return false
}

// Walk は n とその子孫を深さ優先で訪問します
func (n *MenuNode) Walk(visit func(*MenuNode)) {
	visit(n)
	for _, child := range n.Children {
		child.Walk(visit)
	}
}
