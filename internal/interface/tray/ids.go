package tray

import (
	"math"

	"FolderTray/internal/domain/model"
)

// rowKind は D-Bus のメニュー項目 ID が表す行の種類です
type rowKind int

const (
	rowRoot rowKind = iota
	rowNode
	rowOpenHead
	rowHeadSeparator
	rowFixedSeparator
	rowSettings
	rowReload
	rowQuit
	rowInvalid
)

// メニューツリーのノード ID はそのまま項目 ID として使い、
// ホストが追加する行にはノード ID より大きい範囲を割り当てます。
const (
	maxNodeID     = model.MaxNodeID
	openHeadBase  = 1 << 29
	separatorBase = 2 << 29

	idFixedSeparator = math.MaxInt32 - 3
	idSettings       = math.MaxInt32 - 2
	idReload         = math.MaxInt32 - 1
	idQuit           = math.MaxInt32
)

func openHeadID(nodeID int32) int32  { return openHeadBase + nodeID }
func separatorID(nodeID int32) int32 { return separatorBase + nodeID }

// decodeID は項目 ID を行の種類と対応するノード ID に分解します
func decodeID(id int32) (rowKind, int32) {
	switch {
	case id == 0:
		return rowRoot, 0
	case id < 0:
		return rowInvalid, 0
	case id == idFixedSeparator:
		return rowFixedSeparator, 0
	case id == idSettings:
		return rowSettings, 0
	case id == idReload:
		return rowReload, 0
	case id == idQuit:
		return rowQuit, 0
	case id <= maxNodeID:
		return rowNode, id
	case id < separatorBase:
		return rowOpenHead, id - openHeadBase
	case id-separatorBase <= maxNodeID:
		return rowHeadSeparator, id - separatorBase
	}
	return rowInvalid, 0
}
