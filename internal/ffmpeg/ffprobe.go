package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"time"
)

const toolTimeout = 2 * time.Minute

type FFprobe struct {
	path string
}

func NewFFprobe(path string) *FFprobe {
	return &FFprobe{path: path}
}

type probeOutput struct {
	Format probeFormat `json:"format"`
}

type probeFormat struct {
	Duration string `json:"duration"`
}

// Duration asks ffprobe for the container duration in seconds. The binary is
// invoked fresh on every call; callers cache the answer if they care.
func (p *FFprobe) Duration(filePath string) (float64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), toolTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.path,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		filePath)

	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return 0, fmt.Errorf("ffprobe: timed out after %v", toolTimeout)
		}
		return 0, fmt.Errorf("ffprobe: %w", err)
	}

	var data probeOutput
	if err := json.Unmarshal(out, &data); err != nil {
		return 0, fmt.Errorf("parse ffprobe: %w", err)
	}
	if data.Format.Duration == "" {
		return 0, fmt.Errorf("ffprobe: no duration for %s", filePath)
	}
	dur, err := strconv.ParseFloat(data.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", data.Format.Duration, err)
	}
	return dur, nil
}
