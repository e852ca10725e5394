//go:build !unix

package execution

import "os"

// maxRSSKB is unavailable on this platform; leak detection degrades to
// reporting nothing.
func maxRSSKB(state *os.ProcessState) int64 {
	return 0
}
