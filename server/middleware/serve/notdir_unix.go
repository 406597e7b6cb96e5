//go:build !windows

package serve

import (
	"errors"
	"os"
	"syscall"
)

// isNotDir reports whether err is the "a path component isn't a directory"
// error os.Open returns when a non-directory segment is traversed as if it
// were one — the same delegate-to-next-stage case as ENOENT.
func isNotDir(err error) bool {
	var pathErr *os.PathError
	return errors.As(err, &pathErr) && errors.Is(pathErr.Err, syscall.ENOTDIR)
}
