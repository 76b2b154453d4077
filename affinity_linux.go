//go:build linux

package ace

import "golang.org/x/sys/unix"

const threadGateSupported = true

// threadID returns the kernel id of the calling OS thread.
func threadID() int64 {
	return int64(unix.Gettid())
}
