package mpv

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"time"

	"github.com/user/setlist-archive-cli/deps"
)

const (
	connectAttempts = 50
	connectInterval = 100 * time.Millisecond
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// SocketPath returns the IPC socket used for a video.
func SocketPath(dir, videoID string) string {
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "setlist-archive-"+unsafeName.ReplaceAllString(videoID, "_")+".sock")
}

// Args builds the mpv command line for a stream: idle and paused, with the
// IPC server on socket, starting at start seconds.
func Args(socket, url string, start float64, extra []string) []string {
	args := []string{
		"--idle",
		"--pause",
		"--input-ipc-server=" + socket,
	}
	if start > 0 {
		args = append(args, fmt.Sprintf("--start=%.3f", start))
	}
	args = append(args, extra...)
	return append(args, url)
}

// LaunchMpv starts mpv with the given arguments.
// It checks that mpv is installed first and returns an error with install link if not.
// Returns the *exec.Cmd for the running process which can be used for cleanup.
func LaunchMpv(args []string) (*exec.Cmd, error) {
	if err := deps.CheckMpv(); err != nil {
		return nil, err
	}

	cmd := exec.Command("mpv", args...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start mpv: %w", err)
	}
	return cmd, nil
}

// connectWithRetry waits for a freshly launched mpv to open its socket.
func connectWithRetry(c *Client, attempts int, interval time.Duration) error {
	var err error
	for i := 0; i < attempts; i++ {
		time.Sleep(interval)
		if err = c.Connect(); err == nil {
			return nil
		}
	}
	return err
}
