package sapling

import (
	"time"

	"github.com/charmbracelet/log"
)

// frameStats holds per-frame timing and dispatch metrics.
// Only logged when Config.Debug is true.
type frameStats struct {
	updateTime   time.Duration
	drawTime     time.Duration
	presentTime  time.Duration
	dispatchTime time.Duration
	nodes        int
	events       int
	failures     int
}

// debugLog writes timing and dispatch stats at debug level.
func (w *Window) debugLog(stats frameStats) {
	total := stats.updateTime + stats.drawTime + stats.presentTime + stats.dispatchTime
	w.logger.Debug("frame",
		"n", w.frame,
		"update", stats.updateTime,
		"draw", stats.drawTime,
		"present", stats.presentTime,
		"dispatch", stats.dispatchTime,
		"total", total,
		"nodes", stats.nodes,
		"events", stats.events,
		"failures", stats.failures,
	)
}

// debugMaxTreeDepth is the depth above which Add warns.
const debugMaxTreeDepth = 32

// debugMaxChildCount is the per-node child count above which Add warns.
const debugMaxChildCount = 1000

// debugCheckTree warns when a subtree added to the window is unusually deep
// or wide; both make the per-frame traversal expensive.
func debugCheckTree(logger *log.Logger, n *Node) {
	if depth := subtreeDepth(n); depth > debugMaxTreeDepth {
		logger.Warn("tree depth exceeds threshold", "node", n.Name, "depth", depth, "threshold", debugMaxTreeDepth)
	}
	var walk func(*Node)
	walk = func(n *Node) {
		if len(n.children) > debugMaxChildCount {
			logger.Warn("node has many children", "node", n.Name, "children", len(n.children), "threshold", debugMaxChildCount)
		}
		for _, child := range n.children {
			walk(child)
		}
	}
	walk(n)
}
