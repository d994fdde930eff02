package model

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestFileSystemEntry(t *testing.T) {
	tests := []struct {
		name     string
		entry    FileSystemEntry
		wantName string
		wantDir  bool
	}{
		{
			name:     "ディレクトリエントリ",
			entry:    NewFileSystemEntry(filepath.Join("test", "dir"), KindDirectory),
			wantName: "dir",
			wantDir:  true,
		},
		{
			name:     "ファイルエントリ",
			entry:    NewFileSystemEntry(filepath.Join("test", "file.txt"), KindFile),
			wantName: "file.txt",
			wantDir:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.entry.DisplayName != tt.wantName {
				t.Errorf("DisplayName = %v, want %v", tt.entry.DisplayName, tt.wantName)
			}
			if tt.entry.IsDir() != tt.wantDir {
				t.Errorf("IsDir = %v, want %v", tt.entry.IsDir(), tt.wantDir)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "通常のパス", path: "/home/user/Desktop", want: "Desktop"},
		{name: "末尾の区切り文字", path: "/home/user/Desktop/", want: "Desktop"},
		{name: "ルート", path: "/", want: "/"},
		{name: "空のパス", path: "", want: ""},
	}
	if runtime.GOOS == "windows" {
		tests = append(tests, struct {
			name string
			path string
			want string
		}{name: "ドライブのルート", path: `C:\`, want: `C:\`})
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayName(tt.path); got != tt.want {
				t.Errorf("DisplayName(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestMenuNode_Enabled(t *testing.T) {
	tests := []struct {
		kind NodeKind
		want bool
	}{
		{NodeFile, true},
		{NodeDirectory, true},
		{NodeOverflow, true},
		{NodeLoading, false},
		{NodeEmpty, false},
		{NodeError, false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			n := &MenuNode{Kind: tt.kind}
			if got := n.Enabled(); got != tt.want {
				t.Errorf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}
