package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phanxgames/sapling"
)

const demoScene = `
[window]
name = "demo"
width = 320
height = 240
background = "#102030"
fps = 30
close_key = "q"

[[container]]
name = "group"
x = 100
y = 50

[[sprite]]
name = "square"
parent = "group"
color = "#ff0000"
width = 20
height = 10
x = 5
y = 5

[[sprite]]
name = "big"
color = "#00ff00"
width = 4
height = 4
scale = 2.5

[[text]]
name = "title"
parent = "group"
content = "Hi"
size = 16
align = "start"
antialias = false
visible = false
`

func writeScene(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScene_WindowConfig(t *testing.T) {
	sc, err := loadScene(writeScene(t, demoScene))
	if err != nil {
		t.Fatalf("loadScene: %v", err)
	}
	cfg, err := sc.windowConfig()
	if err != nil {
		t.Fatalf("windowConfig: %v", err)
	}
	if cfg.Name != "demo" || cfg.Width != 320 || cfg.Height != 240 || cfg.FPS != 30 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.CloseKey != sapling.KeyRune('q') {
		t.Errorf("CloseKey = %v, want q", cfg.CloseKey)
	}
	if got := cfg.Background.RGBA8(); got.R != 0x10 || got.G != 0x20 || got.B != 0x30 {
		t.Errorf("Background = %v, want #102030", got)
	}
}

func TestLoadScene_UnknownKey(t *testing.T) {
	_, err := loadScene(writeScene(t, "[window]\nwidht = 10\n"))
	if err == nil || !strings.Contains(err.Error(), "widht") {
		t.Errorf("err = %v, want unknown key widht", err)
	}
}

func TestLoadScene_Missing(t *testing.T) {
	if _, err := loadScene(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSceneBuild(t *testing.T) {
	sc, err := loadScene(writeScene(t, demoScene))
	if err != nil {
		t.Fatal(err)
	}
	roots, err := sc.build("")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(roots) != 2 || roots[0].Name != "group" || roots[1].Name != "big" {
		t.Fatalf("roots = %v", names(roots))
	}

	group := roots[0]
	if group.NumChildren() != 2 {
		t.Fatalf("group children = %d, want 2", group.NumChildren())
	}
	square := group.ChildAt(0)
	if x, y := square.Pos(); x != 105 || y != 55 {
		t.Errorf("square pos = (%v, %v), want (105, 55)", x, y)
	}
	if rx, ry := square.RPos(); rx != 5 || ry != 5 {
		t.Errorf("square rpos = (%v, %v), want (5, 5)", rx, ry)
	}

	title := group.ChildAt(1)
	if title.Visible {
		t.Error("title should be hidden")
	}
	if title.TextBlock.Antialias || title.TextBlock.Align != sapling.TextAlignStart || title.TextBlock.Size != 16 {
		t.Errorf("title text block = %+v", *title.TextBlock)
	}

	if w, h := roots[1].Width(), roots[1].Height(); w != 10 || h != 10 {
		t.Errorf("scaled sprite = %vx%v, want 10x10", w, h)
	}
}

func TestSceneBuild_NestedOffsets(t *testing.T) {
	body := `
[[container]]
name = "leaf"
parent = "mid"
x = 1
y = 2

[[container]]
name = "mid"
parent = "top"
x = 10
y = 20

[[container]]
name = "top"
x = 100
y = 200
`
	sc, err := loadScene(writeScene(t, body))
	if err != nil {
		t.Fatal(err)
	}
	roots, err := sc.build("")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(roots) != 1 || roots[0].Name != "top" {
		t.Fatalf("roots = %v, want [top]", names(roots))
	}
	mid := roots[0].ChildAt(0)
	leaf := mid.ChildAt(0)
	if x, y := mid.Pos(); x != 110 || y != 220 {
		t.Errorf("mid pos = (%v, %v), want (110, 220)", x, y)
	}
	if x, y := leaf.Pos(); x != 111 || y != 222 {
		t.Errorf("leaf pos = (%v, %v), want (111, 222)", x, y)
	}
	if rx, ry := leaf.RPos(); rx != 1 || ry != 2 {
		t.Errorf("leaf rpos = (%v, %v), want (1, 2)", rx, ry)
	}
}

func TestSceneBuild_Errors(t *testing.T) {
	cases := map[string]string{
		"unknown parent": "[[container]]\nname = \"a\"\nparent = \"zzz\"\n",
		"duplicate":      "[[container]]\nname = \"a\"\n[[container]]\nname = \"a\"\n",
		"cycle":          "[[container]]\nname = \"a\"\nparent = \"b\"\n[[container]]\nname = \"b\"\nparent = \"a\"\n",
		"no name":        "[[container]]\nx = 1\n",
		"no source":      "[[sprite]]\nname = \"s\"\n",
		"no size":        "[[sprite]]\nname = \"s\"\ncolor = \"#fff\"\n",
		"bad color":      "[[sprite]]\nname = \"s\"\ncolor = \"#ggg\"\nwidth = 1\nheight = 1\n",
		"bad align":      "[[text]]\nname = \"t\"\nalign = \"diagonal\"\n",
		"missing image":  "[[sprite]]\nname = \"s\"\nimage = \"missing.png\"\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeScene(t, body)
			sc, err := loadScene(path)
			if err != nil {
				t.Fatalf("loadScene: %v", err)
			}
			if _, err := sc.build(filepath.Dir(path)); err == nil {
				t.Error("expected build error")
			}
		})
	}
}

func names(nodes []*sapling.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}
