package model

// Settings は永続化される利用者設定を表します
type Settings struct {
	// Paths はトップレベルに表示するルートパスです。順序は利用者の指定順です
	Paths []string
	// LaunchAtLogin はログイン時に起動するかどうかを示します
	LaunchAtLogin bool
}
