package sapling

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestDebugCheckTreeWarnsOnDepth(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, log.DebugLevel)

	root := NewContainer("root")
	cur := root
	for i := 0; i < debugMaxTreeDepth+1; i++ {
		next := NewContainer("n")
		cur.AddChild(next)
		cur = next
	}
	debugCheckTree(logger, root)
	if !strings.Contains(buf.String(), "tree depth exceeds threshold") {
		t.Errorf("log = %q, want depth warning", buf.String())
	}
}

func TestDebugCheckTreeWarnsOnWidth(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, log.DebugLevel)

	root := NewContainer("wide")
	for i := 0; i <= debugMaxChildCount; i++ {
		root.AddChild(NewContainer("c"))
	}
	debugCheckTree(logger, root)
	if !strings.Contains(buf.String(), "node has many children") {
		t.Errorf("log = %q, want width warning", buf.String())
	}
}

func TestDebugCheckTreeQuietForSmallTrees(t *testing.T) {
	var buf bytes.Buffer
	root := NewContainer("root")
	root.AddChild(NewContainer("child"))
	debugCheckTree(NewLogger(&buf, log.DebugLevel), root)
	if buf.Len() != 0 {
		t.Errorf("log = %q, want nothing", buf.String())
	}
}

func TestDebugFrameLog(t *testing.T) {
	var buf bytes.Buffer
	f := newFakeSurface()
	f.at(1, keyEvent(KeyEscape))
	cfg := quietConfig()
	cfg.Debug = true
	cfg.Logger = NewLogger(&buf, log.DebugLevel)
	w := newTestWindow(t, f, cfg)
	w.Add(NewContainer("root"))

	if err := w.Show(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"frame", "nodes=1", "events=1"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestNewLoggerPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, log.InfoLevel)
	logger.Debug("hidden")
	logger.Info("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message should be filtered at info level")
	}
	if !strings.Contains(out, "sapling") || !strings.Contains(out, "shown") {
		t.Errorf("log = %q, want prefix and message", out)
	}
}
