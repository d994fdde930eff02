package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// ListErrorKind は一覧取得エラーの種別です
type ListErrorKind int

const (
	// NotFound はディレクトリが存在しないことを示します
	NotFound ListErrorKind = iota
	// Inaccessible は権限不足・パス長超過・I/O エラーなどでアクセスできないことを示します
	Inaccessible
)

func (k ListErrorKind) String() string {
	if k == NotFound {
		return "not found"
	}
	return "inaccessible"
}

// ListError は一覧取得の失敗を表す構造化エラーです
type ListError struct {
	Kind ListErrorKind
	Path string
	// Message は利用者に表示するための原因です
	Message string
	Err     error
}

func (e *ListError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *ListError) Unwrap() error {
	return e.Err
}

// IsNotFound は err が NotFound の ListError かどうかを返します
func IsNotFound(err error) bool {
	var le *ListError
	return errors.As(err, &le) && le.Kind == NotFound
}

// classify は OS のエラーを ListError に変換します
func classify(path string, err error) *ListError {
	var le *ListError
	if errors.As(err, &le) {
		return le
	}

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &ListError{Kind: NotFound, Path: path, Message: "Folder not found", Err: err}
	case errors.Is(err, fs.ErrPermission):
		return &ListError{Kind: Inaccessible, Path: path, Message: "Access denied", Err: err}
	case errors.Is(err, syscall.ENAMETOOLONG):
		return &ListError{Kind: Inaccessible, Path: path, Message: "Path too long", Err: err}
	}

	msg := err.Error()
	var pe *fs.PathError
	if errors.As(err, &pe) {
		msg = pe.Err.Error()
	}
	return &ListError{Kind: Inaccessible, Path: path, Message: msg, Err: err}
}
