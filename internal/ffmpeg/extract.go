package ffmpeg

import (
	"context"
	"fmt"
	"log"
	"os/exec"
)

type Extractor struct {
	path string
}

func NewExtractor(path string) *Extractor {
	return &Extractor{path: path}
}

// ExtractFrame writes one frame of filePath to outPath as JPEG, seeking to
// offsetSec and scaling to width pixels with the aspect ratio preserved.
// ffmpeg writes outPath directly; callers that need atomic publication pass a
// temp path and rename afterwards.
func (e *Extractor) ExtractFrame(filePath string, offsetSec float64, width int, outPath string) error {
	ctx, cancel := context.WithTimeout(context.Background(), toolTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, e.path,
		"-ss", fmt.Sprintf("%.2f", offsetSec),
		"-i", filePath,
		"-vframes", "1",
		"-vf", fmt.Sprintf("scale=%d:-2", width),
		"-q:v", "2",
		"-f", "mjpeg",
		"-y",
		outPath,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			log.Printf("Frame extraction timed out after %v: %s", toolTimeout, filePath)
			return fmt.Errorf("extract frame: timed out")
		}
		log.Printf("Frame extraction failed: %s", string(output))
		return fmt.Errorf("extract frame: %w", err)
	}
	return nil
}
