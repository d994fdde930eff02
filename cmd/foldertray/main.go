// Package main はアプリケーションのエントリーポイントを提供します
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
)

// Version はビルド時に -ldflags で設定されます
var Version = "dev"

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCommand(),
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
