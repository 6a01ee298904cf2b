package app

import (
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// HotReloader watches the running binary for changes and fires a callback
// when a newer build appears. Development convenience: recompile, get
// offered a restart.
type HotReloader struct {
	execPath      string
	baseline      time.Time
	checkInterval time.Duration
	stopCh        chan struct{}
	onNewBinary   func()
}

// NewHotReloader watches the current executable. Returns nil if the
// executable path cannot be resolved.
func NewHotReloader(checkInterval time.Duration) *HotReloader {
	execPath, err := os.Executable()
	if err != nil {
		return nil
	}

	// go build writes a new file while the symlink may still point at the
	// old one, so resolve it first.
	if realPath, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = realPath
	}

	info, err := os.Stat(execPath)
	if err != nil {
		return nil
	}

	return &HotReloader{
		execPath:      execPath,
		baseline:      info.ModTime(),
		checkInterval: checkInterval,
		stopCh:        make(chan struct{}),
	}
}

// OnNewBinary sets the callback invoked when a newer binary is detected.
// It runs on a background goroutine.
func (h *HotReloader) OnNewBinary(callback func()) {
	h.onNewBinary = callback
}

// Start begins watching in a background goroutine. Safe to call again
// after the callback fired (e.g. when the user declined a restart).
func (h *HotReloader) Start() {
	h.stopCh = make(chan struct{})
	go h.watchLoop()
}

// Stop stops the watcher goroutine.
func (h *HotReloader) Stop() {
	close(h.stopCh)
}

func (h *HotReloader) watchLoop() {
	ticker := time.NewTicker(h.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.stopCh:
			return
		case <-ticker.C:
			if h.newerBinary() && h.onNewBinary != nil {
				h.onNewBinary()
				// Fire once; the callback decides whether to re-arm.
				return
			}
		}
	}
}

func (h *HotReloader) newerBinary() bool {
	info, err := os.Stat(h.execPath)
	if err != nil {
		return false
	}
	return info.ModTime().After(h.baseline)
}

// ExecPath returns the path of the watched executable.
func (h *HotReloader) ExecPath() string {
	return h.execPath
}

// StartupTime returns the binary's modification time at program start.
func (h *HotReloader) StartupTime() time.Time {
	return h.baseline
}

// ResetBaseline accepts the current binary as the new baseline so a
// declined restart is not offered again for the same build.
func (h *HotReloader) ResetBaseline() {
	if info, err := os.Stat(h.execPath); err == nil {
		h.baseline = info.ModTime()
	}
}

// Restart replaces the current process with a fresh instance of the
// binary, preserving arguments and environment. Does not return on
// success.
func (h *HotReloader) Restart() error {
	return syscall.Exec(h.execPath, os.Args, os.Environ())
}
