package gui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	"FolderTray/internal/domain/model"
	"FolderTray/internal/interface/ui"
)

type mockValidator struct{ err error }

func (m mockValidator) ValidateDirectoryPath(string) error { return m.err }

type fakePicker struct {
	path string
	err  error
	done chan struct{}
}

func (f *fakePicker) SelectDirectory(string) (string, error) {
	defer close(f.done)
	return f.path, f.err
}

func TestSettingsWindow_ShowAndSave(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	var saved []model.Settings
	s := NewSettingsWindow(a, mockValidator{}, nil, func(settings model.Settings) error {
		saved = append(saved, settings)
		return nil
	}, nil)

	s.Show(model.Settings{Paths: []string{"/b", "/a"}, LaunchAtLogin: true})
	if s.paths.Text != "/b\n/a" {
		t.Errorf("paths = %q", s.paths.Text)
	}
	if !s.launchAtLogin.Checked {
		t.Error("launchAtLogin = false, want true")
	}

	s.paths.SetText("/b\n\n  /c ;/a")
	s.launchAtLogin.SetChecked(false)
	test.Tap(s.saveButton)

	if len(saved) != 1 {
		t.Fatalf("save calls = %d, want 1", len(saved))
	}
	if got := strings.Join(saved[0].Paths, "|"); got != "/b|/c|/a" {
		t.Errorf("saved paths = %v", got)
	}
	if saved[0].LaunchAtLogin {
		t.Error("saved LaunchAtLogin = true, want false")
	}
}

func TestSettingsWindow_SaveError(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	calls := 0
	s := NewSettingsWindow(a, mockValidator{}, nil, func(model.Settings) error {
		calls++
		return errors.New("read-only")
	}, nil)
	s.Show(model.Settings{})
	test.Tap(s.saveButton)

	if calls != 1 {
		t.Errorf("save calls = %d, want 1", calls)
	}
}

func TestSettingsWindow_AddPath(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	s := NewSettingsWindow(a, mockValidator{}, nil, func(model.Settings) error { return nil }, nil)
	s.Show(model.Settings{Paths: []string{"/a"}})

	s.AddPath("/b")
	s.AddPath("/a")
	if got := strings.Join(s.Settings().Paths, "|"); got != "/a|/b" {
		t.Errorf("paths = %v, want /a|/b", got)
	}
}

func TestSettingsWindow_AddFolderWithPicker(t *testing.T) {
	tests := []struct {
		name string
		path string
		err  error
		want string
	}{
		{name: "選択成功", path: "/picked", want: "/a|/picked"},
		{name: "キャンセル", err: ui.ErrCancelled, want: "/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := test.NewApp()
			defer a.Quit()

			picker := &fakePicker{path: tt.path, err: tt.err, done: make(chan struct{})}
			s := NewSettingsWindow(a, mockValidator{}, picker, func(model.Settings) error { return nil }, nil)
			s.Show(model.Settings{Paths: []string{"/a"}})

			test.Tap(s.addButton)
			<-picker.done

			// 選択結果はピッカーの呼び出し後に反映される
			deadline := 100
			for deadline > 0 && strings.Join(s.Settings().Paths, "|") != tt.want {
				deadline--
				time.Sleep(10 * time.Millisecond)
			}
			if got := strings.Join(s.Settings().Paths, "|"); got != tt.want {
				t.Errorf("paths = %v, want %v", got, tt.want)
			}
		})
	}
}
