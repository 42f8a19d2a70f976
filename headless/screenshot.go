package headless

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/phanxgames/sapling"
)

// Screenshot queues a labeled screenshot of the next presented frame. The
// PNG is written to ScreenshotDir as <frame>_<label>.png.
func (s *Surface) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// flushScreenshots writes the last presented frame once for every queued
// label. Called from Present.
func (s *Surface) flushScreenshots() {
	if len(s.screenshotQueue) == 0 || s.last == nil {
		return
	}
	dir := s.ScreenshotDir
	if dir == "" {
		dir = DefaultScreenshotDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.logger().Error("screenshot: mkdir failed", "dir", dir, "err", err)
		s.screenshotQueue = s.screenshotQueue[:0]
		return
	}
	for _, label := range s.screenshotQueue {
		path := filepath.Join(dir, fmt.Sprintf("%05d_%s.png", s.frames, sanitizeLabel(label)))
		if err := sapling.WritePNG(path, s.last); err != nil {
			s.logger().Error("screenshot failed", "label", label, "err", err)
			continue
		}
		s.logger().Debug("screenshot", "path", path)
	}
	s.screenshotQueue = s.screenshotQueue[:0]
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
