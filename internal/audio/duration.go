// Package audio validates uploaded call recordings before any remote call is
// made on their behalf.
package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// probeTimeout bounds how long a metadata probe may run.
const probeTimeout = 10 * time.Second

var runProbe = ffprobeDuration

// ProbeDuration returns the duration of the given audio payload in seconds.
// The payload is written to a temporary file which is always removed, probe
// success or not.
func ProbeDuration(ctx context.Context, data []byte) (float64, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("probe duration: empty payload")
	}

	tmp := filepath.Join(os.TempDir(), fmt.Sprintf("agentiq_probe_%d", time.Now().UnixNano()))
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return 0, fmt.Errorf("probe duration: write temp: %w", err)
	}
	defer os.Remove(tmp)

	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	return runProbe(probeCtx, tmp)
}

// CheckDuration reports whether the payload's duration is within maxSeconds.
// It fails closed: if the duration cannot be determined the file is rejected.
func CheckDuration(ctx context.Context, data []byte, maxSeconds int) bool {
	seconds, err := ProbeDuration(ctx, data)
	if err != nil {
		return false
	}
	return seconds > 0 && seconds <= float64(maxSeconds)
}

// FormatDuration renders seconds as m:ss for display.
func FormatDuration(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds + 0.5)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func ffprobeDuration(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}

	raw := strings.TrimSpace(string(out))
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("ffprobe: parse duration %q: %w", raw, err)
	}
	if seconds <= 0 {
		return 0, fmt.Errorf("ffprobe: non-positive duration %f", seconds)
	}
	return seconds, nil
}
