package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"FolderTray/internal/domain/model"
	"FolderTray/internal/infrastructure/filesystem"
	"FolderTray/internal/infrastructure/logging"
	"FolderTray/internal/usecase/menutree"
	"FolderTray/internal/usecase/report"
)

func newListCommand(flags *globalFlags) *cobra.Command {
	var (
		depth     int
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "list [PATH...]",
		Short: "Print the menu that would be shown for the given paths",
		Long: `Print the menu tree for PATH (or the configured roots) the way the
tray would show it: sorted, truncated and with placeholders.
Folders are expanded down to --depth levels.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := flags.newLogger(cmd.ErrOrStderr())
			// 一覧の出力を妨げないよう、指定がなければ WARN 以上だけを出力する
			if !cmd.Flags().Changed("log-level") {
				logger.SetLevel(logging.LevelWarn)
			}

			roots := args
			if len(roots) == 0 {
				roots = flags.resolveRoots(logger)
			}

			var out io.Writer = cmd.OutOrStdout()
			if outputDir != "" {
				file, path, err := report.NewGenerator().CreateOutputFile(outputDir)
				if err != nil {
					return err
				}
				defer file.Close()
				out = file
				logger.Log(logging.LevelInfo, fmt.Sprintf("出力ファイルを作成しました: %s", path), nil)
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}

			return writeMenu(out, roots, depth, logger)
		},
	}

	cmd.Flags().IntVarP(&depth, "depth", "d", 1, "number of folder levels to expand")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "write the listing to a timestamped file in this folder")
	return cmd
}

// writeMenu はルートからメニューツリーを構築し、depth 階層まで展開して出力します
func writeMenu(w io.Writer, roots []string, depth int, logger logging.Logger) error {
	tree := menutree.NewTree(menutree.NewBuilder(filesystem.NewLister(logger), logger), menutree.RefreshAlways)
	tree.Rebuild(roots)
	if err := tree.ExpandLevels(depth); err != nil {
		return fmt.Errorf("メニューの展開に失敗しました: %w", err)
	}

	tree.View(func(nodes []*model.MenuNode) {
		report.NewGenerator().WriteMenuStructure(w, nodes)
	})
	return nil
}

func newRootsCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "roots",
		Short: "Print the resolved top-level roots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := flags.newLogger(cmd.ErrOrStderr())
			writeRoots(cmd.OutOrStdout(), flags.resolveRoots(logger))
			return nil
		},
	}
}

// writeRoots はルートごとに状態を付けて出力します
func writeRoots(w io.Writer, roots []string) {
	for _, root := range roots {
		kind, err := filesystem.KindOfPath(root)
		switch {
		case err != nil:
			msg := err.Error()
			var le *filesystem.ListError
			if errors.As(err, &le) {
				msg = le.Message
			}
			fmt.Fprintf(w, "%s %s (%s)\n", ErrorStyle.Render("✗"), root, msg)
		case kind == model.KindDirectory:
			fmt.Fprintf(w, "%s %s\n", SuccessStyle.Render("✓"), root)
		default:
			fmt.Fprintf(w, "%s %s %s\n", SuccessStyle.Render("✓"), root, SubtitleStyle.Render("(file)"))
		}
	}
}
