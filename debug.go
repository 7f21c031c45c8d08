package canopy

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// logger is the package logger. Replace it with SetLogger.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "canopy",
	Level:  log.InfoLevel,
})

// SetLogger replaces the package logger. A nil logger is ignored.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Logger returns the package logger.
func Logger() *log.Logger {
	return logger
}

// globalDebug mirrors the most recently set Scene debug flag so that sprite,
// label and node operations (which lack a Scene pointer) can check it
// cheaply. Only valid with a single Scene; multiple Scenes with differing
// debug modes will reflect whichever called SetDebugMode last.
var globalDebug bool

// debugAssert panics with msg when debug mode is on and cond is false.
// Release builds skip the check entirely.
func debugAssert(cond bool, msg string) {
	if globalDebug && !cond {
		panic("canopy debug: " + msg)
	}
}

// frameStats holds per-frame timing and draw metrics.
// Only populated when Scene.debug is true.
type frameStats struct {
	updateTime time.Duration
	drawTime   time.Duration
	visited    int
	uploads    int
}

// debugLog reports frame stats at debug level.
func (s *Scene) debugLog(stats frameStats) {
	if !s.debug {
		return
	}
	logger.Debug("frame",
		"update", stats.updateTime,
		"draw", stats.drawTime,
		"nodes", stats.visited,
		"uploads", stats.uploads)
}

// debugCheckRemoved panics with a descriptive message when a removed node is
// used in a tree operation. In release mode callers skip this entirely.
func debugCheckRemoved(n *Node, op string) {
	if n.removed {
		panic(fmt.Sprintf("canopy debug: %s on removed node %q", op, n.tag))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		logger.Warn("tree depth exceeds threshold",
			"depth", depth, "threshold", debugMaxTreeDepth, "node", n.id)
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		logger.Warn("node has too many children",
			"node", n.id, "children", len(n.children), "threshold", debugMaxChildCount)
	}
}
