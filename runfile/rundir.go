package runfile

import (
	"fmt"
	"os"
	"runtime"
	"sync"
)

// filename prefix for run files placed in the scratch directory
var runFilePrefix = fmt.Sprintf("fsort_%d_", os.Getpid())

var (
	discoveredDir    string
	dirDiscoveryOnce sync.Once
)

// ScratchDir returns the directory run files should be created in. A
// non-empty dir is validated and used as-is; otherwise a disk-backed
// directory is preferred over a possibly memory-backed one, since run files
// exist precisely because the data does not fit in memory.
func ScratchDir(dir string) string {
	if dir != "" && isDirectoryUsable(dir) {
		return dir
	}
	dirDiscoveryOnce.Do(func() {
		discoveredDir = findScratchDir()
	})
	return discoveredDir
}

// findScratchDir picks the first usable candidate, falling back to the OS
// default temp directory.
func findScratchDir() string {
	for _, candidate := range diskPreferredCandidates() {
		if isDirectoryUsable(candidate) {
			return candidate
		}
	}
	return os.TempDir()
}

// diskPreferredCandidates lists directories that are traditionally
// disk-backed. On Unix-like systems /var/tmp is disk-backed while /tmp may
// be tmpfs; Windows temp directories are disk-backed already.
func diskPreferredCandidates() []string {
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly", "solaris":
		return []string{"/var/tmp"}
	case "darwin":
		return []string{"/var/tmp", "/private/var/tmp"}
	}
	return nil
}

// isDirectoryUsable reports whether dir exists and is a directory. We don't
// test writability here; the actual writability surfaces when the first run
// file is created.
func isDirectoryUsable(dir string) bool {
	stat, err := os.Stat(dir)
	if err != nil {
		return false
	}
	return stat.IsDir()
}
