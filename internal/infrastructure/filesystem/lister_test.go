package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"FolderTray/internal/domain/model"
)

type mockLogger struct {
	logs []struct {
		level   string
		message string
		err     error
	}
}

func (m *mockLogger) Log(level, message string, err error) {
	m.logs = append(m.logs, struct {
		level   string
		message string
		err     error
	}{level, message, err})
}

// fakeHidden は "hidden" で始まる要素を非表示、"broken" で始まる要素を属性取得エラーとして扱います
func fakeHidden(_ string, d fs.DirEntry) (bool, error) {
	switch {
	case strings.HasPrefix(d.Name(), "hidden"):
		return true, nil
	case strings.HasPrefix(d.Name(), "broken"):
		return false, errors.New("属性の取得に失敗")
	}
	return false, nil
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("test content"), 0644); err != nil {
			t.Fatalf("テストファイルの作成に失敗: %v", err)
		}
	}
}

func entryNames(entries []model.FileSystemEntry) map[string]model.EntryKind {
	names := make(map[string]model.EntryKind, len(entries))
	for _, e := range entries {
		names[e.DisplayName] = e.Kind
	}
	return names
}

func TestLister_List(t *testing.T) {
	logger := &mockLogger{}
	lister := NewLister(logger, WithHiddenFunc(fakeHidden))

	tempDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tempDir, "testdir"), 0755); err != nil {
		t.Fatalf("テストディレクトリの作成に失敗: %v", err)
	}
	writeFiles(t, tempDir, "testfile.txt", "hidden.txt", "broken.txt")

	listing, err := lister.List(tempDir)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if listing.Dir != tempDir {
		t.Errorf("Dir = %v, want %v", listing.Dir, tempDir)
	}
	if listing.Truncated {
		t.Error("Truncated = true, want false")
	}

	names := entryNames(listing.Entries)
	want := map[string]model.EntryKind{
		"testdir":      model.KindDirectory,
		"testfile.txt": model.KindFile,
		"broken.txt":   model.KindFile,
	}
	if len(names) != len(want) {
		t.Errorf("List() got %v entries, want %v: %v", len(names), len(want), names)
	}
	for name, kind := range want {
		got, ok := names[name]
		if !ok {
			t.Errorf("%s が一覧に含まれていません", name)
			continue
		}
		if got != kind {
			t.Errorf("%s の種別 = %v, want %v", name, got, kind)
		}
	}
	if _, ok := names["hidden.txt"]; ok {
		t.Error("非表示の要素が一覧に含まれています")
	}

	for _, e := range listing.Entries {
		if e.Path != filepath.Join(tempDir, e.DisplayName) {
			t.Errorf("Path = %v, want %v", e.Path, filepath.Join(tempDir, e.DisplayName))
		}
	}
}

func TestLister_Truncation(t *testing.T) {
	tests := []struct {
		name          string
		files         int
		wantEntries   int
		wantTruncated bool
	}{
		{name: "上限未満", files: 10, wantEntries: 10, wantTruncated: false},
		{name: "上限ちょうど", files: DefaultEntryLimit, wantEntries: DefaultEntryLimit, wantTruncated: false},
		{name: "上限超過", files: 150, wantEntries: DefaultEntryLimit, wantTruncated: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			for i := 0; i < tt.files; i++ {
				writeFiles(t, tempDir, fmt.Sprintf("file_%03d.txt", i))
			}
			// 非表示の要素は上限に数えない
			writeFiles(t, tempDir, "hidden_1", "hidden_2")

			listing, err := NewLister(nil, WithHiddenFunc(fakeHidden)).List(tempDir)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(listing.Entries) != tt.wantEntries {
				t.Errorf("len(Entries) = %v, want %v", len(listing.Entries), tt.wantEntries)
			}
			if listing.Truncated != tt.wantTruncated {
				t.Errorf("Truncated = %v, want %v", listing.Truncated, tt.wantTruncated)
			}
		})
	}
}

func TestLister_WithLimit(t *testing.T) {
	tempDir := t.TempDir()
	writeFiles(t, tempDir, "a", "b", "c")

	listing, err := NewLister(nil, WithLimit(2), WithHiddenFunc(fakeHidden)).List(tempDir)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(listing.Entries) != 2 || !listing.Truncated {
		t.Errorf("got %d entries truncated=%v, want 2 entries truncated=true", len(listing.Entries), listing.Truncated)
	}
}

func TestLister_Errors(t *testing.T) {
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "file.txt")
	writeFiles(t, tempDir, "file.txt")

	tests := []struct {
		name     string
		path     string
		wantKind ListErrorKind
	}{
		{name: "存在しないパス", path: filepath.Join(tempDir, "notexist"), wantKind: NotFound},
		{name: "ファイルのパス", path: filePath, wantKind: NotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLister(nil).List(tt.path)
			var le *ListError
			if !errors.As(err, &le) {
				t.Fatalf("List() error = %v, want *ListError", err)
			}
			if le.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", le.Kind, tt.wantKind)
			}
			if le.Message == "" {
				t.Error("Message が空です")
			}
			if tt.wantKind == NotFound && !IsNotFound(err) {
				t.Error("IsNotFound() = false, want true")
			}
		})
	}
}

func TestLister_PermissionDenied(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("パーミッションのテストは Windows では行いません")
	}
	if os.Geteuid() == 0 {
		t.Skip("root 権限ではパーミッションが無視されます")
	}

	tempDir := t.TempDir()
	locked := filepath.Join(tempDir, "locked")
	if err := os.Mkdir(locked, 0000); err != nil {
		t.Fatalf("テストディレクトリの作成に失敗: %v", err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	_, err := NewLister(nil).List(locked)
	var le *ListError
	if !errors.As(err, &le) {
		t.Fatalf("List() error = %v, want *ListError", err)
	}
	if le.Kind != Inaccessible {
		t.Errorf("Kind = %v, want %v", le.Kind, Inaccessible)
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Errorf("errors.Is(err, fs.ErrPermission) = false")
	}
}

func TestLister_DefaultHiddenDotfiles(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Windows では属性で判定します")
	}

	tempDir := t.TempDir()
	writeFiles(t, tempDir, ".secret", "visible.txt")

	listing, err := NewLister(nil).List(tempDir)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	names := entryNames(listing.Entries)
	if _, ok := names[".secret"]; ok {
		t.Error("ドットファイルが一覧に含まれています")
	}
	if _, ok := names["visible.txt"]; !ok {
		t.Error("visible.txt が一覧に含まれていません")
	}
}

func TestLister_Symlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("シンボリックリンクのテストは Windows では行いません")
	}

	tempDir := t.TempDir()
	target := filepath.Join(tempDir, "target")
	if err := os.Mkdir(target, 0755); err != nil {
		t.Fatalf("テストディレクトリの作成に失敗: %v", err)
	}
	if err := os.Symlink(target, filepath.Join(tempDir, "linkdir")); err != nil {
		t.Fatalf("シンボリックリンクの作成に失敗: %v", err)
	}
	if err := os.Symlink(filepath.Join(tempDir, "missing"), filepath.Join(tempDir, "dangling")); err != nil {
		t.Fatalf("シンボリックリンクの作成に失敗: %v", err)
	}

	listing, err := NewLister(nil).List(tempDir)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	names := entryNames(listing.Entries)
	if names["linkdir"] != model.KindDirectory {
		t.Errorf("linkdir の種別 = %v, want directory", names["linkdir"])
	}
	if kind, ok := names["dangling"]; !ok || kind != model.KindFile {
		t.Errorf("dangling の種別 = %v (ok=%v), want file", kind, ok)
	}
}

func TestKindOfPath(t *testing.T) {
	tempDir := t.TempDir()
	writeFiles(t, tempDir, "file.txt")

	if kind, err := KindOfPath(tempDir); err != nil || kind != model.KindDirectory {
		t.Errorf("KindOfPath(dir) = %v, %v", kind, err)
	}
	if kind, err := KindOfPath(filepath.Join(tempDir, "file.txt")); err != nil || kind != model.KindFile {
		t.Errorf("KindOfPath(file) = %v, %v", kind, err)
	}
	if _, err := KindOfPath(filepath.Join(tempDir, "notexist")); !IsNotFound(err) {
		t.Errorf("KindOfPath(notexist) error = %v, want NotFound", err)
	}
}

func TestValidateDirectoryPath(t *testing.T) {
	tempDir := t.TempDir()
	writeFiles(t, tempDir, "file.txt")

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{
			name:    "有効なディレクトリパス",
			path:    tempDir,
			wantErr: false,
		},
		{
			name:    "空のパス",
			path:    "",
			wantErr: true,
		},
		{
			name:    "存在しないパス",
			path:    filepath.Join(tempDir, "notexist"),
			wantErr: true,
		},
		{
			name:    "相対パス",
			path:    "relative",
			wantErr: true,
		},
		{
			name:    "ファイルのパス",
			path:    filepath.Join(tempDir, "file.txt"),
			wantErr: true,
		},
	}

	lister := NewLister(&mockLogger{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := lister.ValidateDirectoryPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDirectoryPath() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
