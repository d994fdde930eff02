package ui

import (
	"errors"
	"testing"

	"github.com/sqweek/dialog"
)

type mockValidator struct {
	validateError error
	validated     []string
}

func (m *mockValidator) ValidateDirectoryPath(path string) error {
	m.validated = append(m.validated, path)
	return m.validateError
}

func TestDirectorySelector_SelectDirectory(t *testing.T) {
	tests := []struct {
		name          string
		browsed       string
		browseError   error
		validateError error
		want          string
		wantErr       error
		wantErrAny    bool
	}{
		{
			name:    "選択成功",
			browsed: "/home/user/Documents",
			want:    "/home/user/Documents",
		},
		{
			name:          "バリデーションエラー",
			browsed:       "relative/path",
			validateError: errors.New("無効なディレクトリ"),
			wantErrAny:    true,
		},
		{
			name:        "キャンセル",
			browseError: dialog.ErrCancelled,
			wantErr:     ErrCancelled,
		},
		{
			name:        "ダイアログのエラー",
			browseError: errors.New("no display"),
			wantErrAny:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := &mockValidator{validateError: tt.validateError}
			selector := NewDirectorySelector(validator)
			var gotTitle string
			selector.browse = func(title string) (string, error) {
				gotTitle = title
				return tt.browsed, tt.browseError
			}

			got, err := selector.SelectDirectory("フォルダの追加")
			if gotTitle != "フォルダの追加" {
				t.Errorf("title = %q", gotTitle)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("SelectDirectory() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErrAny && err == nil {
				t.Fatal("SelectDirectory() error = nil, wantErr true")
			}
			if tt.wantErr == nil && !tt.wantErrAny && err != nil {
				t.Fatalf("SelectDirectory() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("SelectDirectory() = %q, want %q", got, tt.want)
			}
			if tt.browseError != nil && len(validator.validated) != 0 {
				t.Error("失敗時にバリデーションが呼ばれました")
			}
		})
	}
}

func TestMessageNotifier_NotifyError(t *testing.T) {
	var gotTitle, gotMessage string
	n := &MessageNotifier{show: func(title, message string) {
		gotTitle, gotMessage = title, message
	}}

	n.NotifyError("FolderTray", "100% failed")
	if gotTitle != "FolderTray" || gotMessage != "100% failed" {
		t.Errorf("show(%q, %q)", gotTitle, gotMessage)
	}
}
