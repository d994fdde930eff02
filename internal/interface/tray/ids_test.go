package tray

import "testing"

func TestDecodeID(t *testing.T) {
	tests := []struct {
		name     string
		id       int32
		wantKind rowKind
		wantNode int32
	}{
		{name: "ルート", id: 0, wantKind: rowRoot},
		{name: "ノード", id: 42, wantKind: rowNode, wantNode: 42},
		{name: "ノードの上限", id: maxNodeID, wantKind: rowNode, wantNode: maxNodeID},
		{name: "開く行", id: openHeadID(42), wantKind: rowOpenHead, wantNode: 42},
		{name: "区切り線", id: separatorID(42), wantKind: rowHeadSeparator, wantNode: 42},
		{name: "固定の区切り線", id: idFixedSeparator, wantKind: rowFixedSeparator},
		{name: "設定", id: idSettings, wantKind: rowSettings},
		{name: "再読み込み", id: idReload, wantKind: rowReload},
		{name: "終了", id: idQuit, wantKind: rowQuit},
		{name: "負の ID", id: -5, wantKind: rowInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, node := decodeID(tt.id)
			if kind != tt.wantKind || node != tt.wantNode {
				t.Errorf("decodeID(%d) = %v, %d, want %v, %d", tt.id, kind, node, tt.wantKind, tt.wantNode)
			}
		})
	}
}
