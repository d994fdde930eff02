//go:build windows

package filesystem

import (
	"io/fs"

	"golang.org/x/sys/windows"
)

// isHidden は FILE_ATTRIBUTE_HIDDEN または FILE_ATTRIBUTE_SYSTEM を持つ要素を非表示とします
func isHidden(path string, _ fs.DirEntry) (bool, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return false, err
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return false, err
	}
	return attrs&(windows.FILE_ATTRIBUTE_HIDDEN|windows.FILE_ATTRIBUTE_SYSTEM) != 0, nil
}
