// Package report はメニューツリーのテキスト出力機能を提供します
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"FolderTray/internal/domain/model"
)

const (
	OutputFilePrefix = "menu_"
	OutputFileSuffix = ".txt"
	TimestampLayout  = "20060102_150405"
)

// Generator はレポート生成機能を提供します
type Generator struct{}

// NewGenerator は新しい Generator インスタンスを作成します
func NewGenerator() *Generator {
	return &Generator{}
}

// CreateOutputFile は出力ファイルを作成します
func (g *Generator) CreateOutputFile(outputDir string) (*os.File, string, error) {
	timestamp := time.Now().Format(TimestampLayout)
	outputPath := filepath.Join(outputDir, fmt.Sprintf("%s%s%s", OutputFilePrefix, timestamp, OutputFileSuffix))

	outputFile, err := os.Create(outputPath)
	if err != nil {
		return nil, "", fmt.Errorf("出力ファイルの作成に失敗しました: %w", err)
	}

	return outputFile, outputPath, nil
}

// WriteMenuStructure はノードの深さに応じたインデントを付与し、
// メニューに表示される順序でノードを一覧出力します。
func (g *Generator) WriteMenuStructure(writer io.Writer, roots []*model.MenuNode) {
	fmt.Fprintln(writer, "===== メニュー構成 =====")

	for _, root := range roots {
		g.writeNode(writer, root, 0)
	}
}

func (g *Generator) writeNode(writer io.Writer, n *model.MenuNode, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(writer, "%s%s %s\n", indent, tagOf(n), n.Label)

	if n.Kind != model.NodeDirectory {
		return
	}
	for _, child := range n.Children {
		g.writeNode(writer, child, depth+1)
	}
}

func tagOf(n *model.MenuNode) string {
	switch n.Kind {
	case model.NodeDirectory:
		return "[DIR] "
	case model.NodeFile:
		return "[FILE]"
	case model.NodeOverflow:
		return "[MORE]"
	case model.NodeError:
		return "[ERR] "
	}
	return "      "
}
