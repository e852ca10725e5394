//go:build unix

package execution

import (
	"os"
	"runtime"
	"syscall"
)

// maxRSSKB returns the peak resident set size of a finished process in
// KiB, or 0 when the platform does not report it. Linux reports Maxrss
// in KiB, darwin in bytes.
func maxRSSKB(state *os.ProcessState) int64 {
	if state == nil {
		return 0
	}
	ru, ok := state.SysUsage().(*syscall.Rusage)
	if !ok || ru == nil {
		return 0
	}
	rss := int64(ru.Maxrss)
	if runtime.GOOS == "darwin" {
		rss /= 1024
	}
	return rss
}
