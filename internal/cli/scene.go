package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/phanxgames/sapling"
)

// sceneFile is the TOML scene description read by the run and check commands.
//
//	[window]
//	name = "demo"
//	background = "#202020"
//
//	[[container]]
//	name = "group"
//	x = 100
//	y = 100
//
//	[[sprite]]
//	name = "square"
//	parent = "group"
//	color = "#ff0000"
//	width = 50
//	height = 50
//
//	[[text]]
//	name = "title"
//	content = "Hello"
//	x = 320
//	y = 40
//
// Positions of nodes with a parent are relative to that parent. Image and
// font paths are relative to the scene file.
type sceneFile struct {
	Window     windowSpec      `toml:"window"`
	Containers []containerSpec `toml:"container"`
	Sprites    []spriteSpec    `toml:"sprite"`
	Texts      []textSpec      `toml:"text"`
}

type windowSpec struct {
	Name       string `toml:"name"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Background string `toml:"background"`
	FPS        int    `toml:"fps"`
	CloseKey   string `toml:"close_key"`
	Debug      bool   `toml:"debug"`
}

type placement struct {
	Name    string  `toml:"name"`
	Parent  string  `toml:"parent"`
	X       float64 `toml:"x"`
	Y       float64 `toml:"y"`
	Visible *bool   `toml:"visible"`
}

type containerSpec struct {
	placement
}

type spriteSpec struct {
	placement
	Image  string  `toml:"image"`
	Color  string  `toml:"color"`
	Width  int     `toml:"width"`
	Height int     `toml:"height"`
	Scale  float64 `toml:"scale"`
}

type textSpec struct {
	placement
	Content   string  `toml:"content"`
	Font      string  `toml:"font"`
	Size      float64 `toml:"size"`
	Color     string  `toml:"color"`
	Align     string  `toml:"align"`
	Thickness int     `toml:"thickness"`
	Antialias *bool   `toml:"antialias"`
}

// loadScene reads and decodes a scene file. Unknown keys are rejected so
// typos surface instead of being silently ignored.
func loadScene(path string) (*sceneFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	var sc sceneFile
	md, err := toml.Decode(string(data), &sc)
	if err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse scene %s: unknown key %q", path, undecoded[0].String())
	}
	return &sc, nil
}

// windowConfig converts the [window] table into a sapling.Config.
func (sc *sceneFile) windowConfig() (sapling.Config, error) {
	cfg := sapling.DefaultConfig()
	w := sc.Window
	if w.Name != "" {
		cfg.Name = w.Name
	}
	if w.Width > 0 {
		cfg.Width = w.Width
	}
	if w.Height > 0 {
		cfg.Height = w.Height
	}
	if w.FPS != 0 {
		cfg.FPS = w.FPS
	}
	cfg.Debug = w.Debug
	if w.Background != "" {
		c, err := sapling.ParseHexColor(w.Background)
		if err != nil {
			return cfg, fmt.Errorf("window background: %w", err)
		}
		cfg.Background = c
	}
	if w.CloseKey != "" {
		k, err := sapling.ParseKey(w.CloseKey)
		if err != nil {
			return cfg, fmt.Errorf("window close_key: %w", err)
		}
		cfg.CloseKey = k
	}
	return cfg, nil
}

// build creates every node in the scene, links parents and places the
// nodes. It returns the root nodes in declaration order: containers, then
// sprites, then texts. dir resolves relative asset paths.
func (sc *sceneFile) build(dir string) ([]*sapling.Node, error) {
	var (
		nodes  []*sapling.Node
		places []placement
		byName = make(map[string]*sapling.Node)
	)
	add := func(n *sapling.Node, p placement) error {
		if p.Name == "" {
			return fmt.Errorf("node #%d has no name", len(nodes)+1)
		}
		if _, dup := byName[p.Name]; dup {
			return fmt.Errorf("duplicate node name %q", p.Name)
		}
		if p.Visible != nil {
			n.Visible = *p.Visible
		}
		byName[p.Name] = n
		nodes = append(nodes, n)
		places = append(places, p)
		return nil
	}

	for _, c := range sc.Containers {
		if err := add(sapling.NewContainer(c.Name), c.placement); err != nil {
			return nil, err
		}
	}
	for _, s := range sc.Sprites {
		n, err := s.node(dir)
		if err != nil {
			return nil, err
		}
		if err := add(n, s.placement); err != nil {
			return nil, err
		}
	}
	fonts := make(map[string]sapling.Font)
	for _, t := range sc.Texts {
		n, err := t.node(dir, fonts)
		if err != nil {
			return nil, err
		}
		if err := add(n, t.placement); err != nil {
			return nil, err
		}
	}

	var roots []*sapling.Node
	for i, n := range nodes {
		p := places[i]
		if p.Parent == "" {
			roots = append(roots, n)
			continue
		}
		parent, ok := byName[p.Parent]
		if !ok {
			return nil, fmt.Errorf("node %q: unknown parent %q", p.Name, p.Parent)
		}
		if createsCycle(places, p.Name) {
			return nil, fmt.Errorf("node %q: parent chain loops back to itself", p.Name)
		}
		parent.AddChild(n)
	}

	offsets := make(map[*sapling.Node]placement, len(nodes))
	for i, n := range nodes {
		offsets[n] = places[i]
	}
	for _, r := range roots {
		place(r, offsets)
	}
	return roots, nil
}

// place positions n at its parent's position plus its offset, then places
// the subtree. Parents go first, so every offset is taken from the parent's
// final position.
func place(n *sapling.Node, offsets map[*sapling.Node]placement) {
	p := offsets[n]
	x, y := p.X, p.Y
	if parent := n.Parent(); parent != nil {
		x += parent.X()
		y += parent.Y()
	}
	n.SetPos(x, y)
	for _, c := range n.Children() {
		place(c, offsets)
	}
}

func createsCycle(places []placement, start string) bool {
	parentOf := make(map[string]string, len(places))
	for _, p := range places {
		parentOf[p.Name] = p.Parent
	}
	seen := map[string]bool{start: true}
	for name := parentOf[start]; name != ""; name = parentOf[name] {
		if seen[name] {
			return true
		}
		seen[name] = true
	}
	return false
}

func (s spriteSpec) node(dir string) (*sapling.Node, error) {
	var n *sapling.Node
	switch {
	case s.Image != "":
		var err error
		n, err = sapling.LoadSprite(s.Name, resolvePath(dir, s.Image))
		if err != nil {
			return nil, fmt.Errorf("sprite %q: %w", s.Name, err)
		}
	case s.Color != "":
		c, err := sapling.ParseHexColor(s.Color)
		if err != nil {
			return nil, fmt.Errorf("sprite %q: %w", s.Name, err)
		}
		if s.Width <= 0 || s.Height <= 0 {
			return nil, fmt.Errorf("sprite %q: a solid sprite needs width and height", s.Name)
		}
		n = sapling.NewSprite(s.Name, sapling.NewSolidBitmap(s.Width, s.Height, c))
	default:
		return nil, fmt.Errorf("sprite %q: needs image or color", s.Name)
	}
	if s.Scale != 0 && s.Scale != 1 {
		if err := n.Scale(s.Scale); err != nil {
			return nil, fmt.Errorf("sprite %q: %w", s.Name, err)
		}
	}
	return n, nil
}

func (t textSpec) node(dir string, fonts map[string]sapling.Font) (*sapling.Node, error) {
	var font sapling.Font
	if t.Font != "" {
		path := resolvePath(dir, t.Font)
		if f, ok := fonts[path]; ok {
			font = f
		} else {
			f, err := sapling.LoadTTFFontFile(path)
			if err != nil {
				return nil, fmt.Errorf("text %q: %w", t.Name, err)
			}
			fonts[path] = f
			font = f
		}
	}
	n := sapling.NewText(t.Name, t.Content, font)
	tb := n.TextBlock
	if t.Size > 0 {
		tb.Size = t.Size
	}
	if t.Color != "" {
		c, err := sapling.ParseHexColor(t.Color)
		if err != nil {
			return nil, fmt.Errorf("text %q: %w", t.Name, err)
		}
		tb.Color = c
	}
	if t.Align != "" {
		a, err := sapling.ParseTextAlign(t.Align)
		if err != nil {
			return nil, fmt.Errorf("text %q: %w", t.Name, err)
		}
		tb.Align = a
	}
	if t.Thickness > 0 {
		tb.Thickness = t.Thickness
	}
	if t.Antialias != nil {
		tb.Antialias = *t.Antialias
	}
	return n, nil
}

func resolvePath(dir, p string) string {
	if filepath.IsAbs(p) || dir == "" {
		return p
	}
	return filepath.Join(dir, p)
}
