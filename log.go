package sapling

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger creates a logger with timestamp formatting and the "sapling"
// prefix. The logger writes to w and filters messages at the specified level.
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Prefix:          "sapling",
		Level:           level,
	})
}
