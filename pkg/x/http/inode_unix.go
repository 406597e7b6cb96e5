//go:build !windows

package http

import (
	"os"
	"syscall"
)

// Inode extracts the filesystem inode number backing info, used as one of
// the three ETag components. Returns 0 on platforms/filesystems that don't
// expose it through syscall.Stat_t.
func Inode(info os.FileInfo) uint64 {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return uint64(stat.Ino)
	}
	return 0
}
