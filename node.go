package sapling

// nodeIDCounter is a plain counter; sapling is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the fundamental scene graph element. A single flat struct is used
// for every node kind; Type selects how the node paints itself.
//
// Positions are absolute canvas coordinates. Moving a node moves its whole
// subtree by the same delta, so offsets inside a subtree never change unless
// a descendant is moved on its own. Use the accessor methods in position.go;
// the coordinates are not exported fields because every write propagates.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy. parent is a back-reference only; a node owns its children.
	parent   *Node
	children []*Node

	// Absolute position
	x, y float64

	// Visible false hides this node and its whole subtree, whatever the
	// children's own flags say.
	Visible bool

	// Sprite fields (NodeTypeSprite)
	Bitmap *Bitmap

	// Text fields (NodeTypeText)
	TextBlock *TextBlock

	// Metadata
	UserData any
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Visible = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewSprite creates a sprite node that paints bmp with its top-left corner at
// the node position. The bitmap is used as is, not copied.
func NewSprite(name string, bmp *Bitmap) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite, Bitmap: bmp}
	nodeDefaults(n)
	return n
}

// LoadSprite decodes the image file at path and wraps it in a sprite node.
// Decode failures surface here, not at draw time.
func LoadSprite(name, path string) (*Node, error) {
	bmp, err := LoadBitmap(path)
	if err != nil {
		return nil, err
	}
	return NewSprite(name, bmp), nil
}

// NewText creates a text node with the given content. A nil font selects
// DefaultFont.
func NewText(name, content string, font Font) *Node {
	n := &Node{
		Name: name,
		Type: NodeTypeText,
		TextBlock: &TextBlock{
			Content:   content,
			Font:      font,
			Size:      DefaultFontSize,
			Color:     ColorWhite,
			Thickness: 1,
			Antialias: true,
			Align:     TextAlignCenter,
		},
	}
	nodeDefaults(n)
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children; later children paint over
// earlier ones and over the parent. If child already has a parent, it is
// removed from that parent first. Child positions are left untouched.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("sapling: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("sapling: adding child would create a cycle")
	}
	if child.parent != nil {
		child.parent.removeChildByPtr(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child from this node.
// Panics if child's parent is not n.
func (n *Node) RemoveChild(child *Node) {
	if child.parent != n {
		panic("sapling: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.parent = nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.parent == nil {
		return
	}
	n.parent.RemoveChild(n)
}

// Parent returns the node's parent, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// --- Geometry ---

// Width returns the painted width: the bitmap width for sprites, the measured
// label width for text (recomputed on every call), 0 for containers.
func (n *Node) Width() float64 {
	switch n.Type {
	case NodeTypeSprite:
		if n.Bitmap != nil {
			return float64(n.Bitmap.width)
		}
	case NodeTypeText:
		w, _ := n.TextBlock.Measure()
		return w
	}
	return 0
}

// Height returns the painted height, following the same rules as Width.
func (n *Node) Height() float64 {
	switch n.Type {
	case NodeTypeSprite:
		if n.Bitmap != nil {
			return float64(n.Bitmap.height)
		}
	case NodeTypeText:
		_, h := n.TextBlock.Measure()
		return h
	}
	return 0
}

// Bounds returns the canvas-space rectangle the node paints. Text bounds
// account for alignment and sit above the baseline at y. Containers report
// the union of their children's bounds.
func (n *Node) Bounds() Rect {
	switch n.Type {
	case NodeTypeSprite:
		return Rect{n.x, n.y, n.Width(), n.Height()}
	case NodeTypeText:
		w, h := n.TextBlock.Measure()
		return Rect{n.x + alignOffset(n.TextBlock.Align, w), n.y - h, w, h}
	}
	var r Rect
	for _, child := range n.children {
		r = r.Union(child.Bounds())
	}
	return r
}

// Contains reports whether the canvas point (x, y) falls inside the node's
// painted area: [x, x+width) x [y, y+height) for sprites.
func (n *Node) Contains(x, y float64) bool {
	if n.Type == NodeTypeContainer {
		return false
	}
	return n.Bounds().Contains(x, y)
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// subtreeDepth returns the depth of the deepest node below n (n itself is 1).
func subtreeDepth(n *Node) int {
	depth := 0
	for _, child := range n.children {
		depth = max(depth, subtreeDepth(child))
	}
	return depth + 1
}
