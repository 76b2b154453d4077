//go:build !linux

package ace

// Without a portable thread id the gate is disabled.
const threadGateSupported = false

func threadID() int64 {
	return 0
}
