//go:build darwin

package filesystem

import (
	"io/fs"
	"strings"

	"golang.org/x/sys/unix"
)

// isHidden はドットファイルと UF_HIDDEN フラグを持つ要素を非表示とします
func isHidden(path string, d fs.DirEntry) (bool, error) {
	if strings.HasPrefix(d.Name(), ".") {
		return true, nil
	}
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return false, err
	}
	return st.Flags&unix.UF_HIDDEN != 0, nil
}
