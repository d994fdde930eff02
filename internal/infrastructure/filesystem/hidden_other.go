//go:build !windows && !darwin

package filesystem

import (
	"io/fs"
	"strings"
)

// isHidden はドットファイルを非表示とします
func isHidden(_ string, d fs.DirEntry) (bool, error) {
	return strings.HasPrefix(d.Name(), "."), nil
}
