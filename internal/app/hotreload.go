package app

import (
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// HotReloader watches the running binary and reports when a newer build
// appears on disk, so a development session can offer to restart itself
// after a recompile.
type HotReloader struct {
	execPath string
	baseline time.Time
	interval time.Duration
	stopCh   chan struct{}
}

// NewHotReloader creates a watcher for the current executable. Returns nil
// if the executable path cannot be resolved.
func NewHotReloader(interval time.Duration) *HotReloader {
	execPath, err := os.Executable()
	if err != nil {
		return nil
	}
	// go build replaces the file behind the symlink; watch the real path.
	if realPath, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = realPath
	}
	info, err := os.Stat(execPath)
	if err != nil {
		return nil
	}
	return &HotReloader{
		execPath: execPath,
		baseline: info.ModTime(),
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// ExecPath returns the watched executable path.
func (h *HotReloader) ExecPath() string {
	return h.execPath
}

// Watch polls in a background goroutine and calls onNewBinary once when a
// newer binary is detected. The callback runs off the UI thread.
func (h *HotReloader) Watch(onNewBinary func()) {
	go func() {
		ticker := time.NewTicker(h.interval)
		defer ticker.Stop()
		for {
			select {
			case <-h.stopCh:
				return
			case <-ticker.C:
				info, err := os.Stat(h.execPath)
				if err != nil {
					continue
				}
				if info.ModTime().After(h.baseline) {
					onNewBinary()
					return
				}
			}
		}
	}()
}

// Stop ends the watch goroutine.
func (h *HotReloader) Stop() {
	close(h.stopCh)
}

// ResetBaseline accepts the current binary as the new baseline, for when the
// user declines a restart.
func (h *HotReloader) ResetBaseline() {
	if info, err := os.Stat(h.execPath); err == nil {
		h.baseline = info.ModTime()
	}
}

// Restart replaces the current process with a fresh instance of the binary,
// preserving arguments and environment. Does not return on success.
func (h *HotReloader) Restart() error {
	return syscall.Exec(h.execPath, os.Args, os.Environ())
}
