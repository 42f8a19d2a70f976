package sapling

// X returns the node's absolute x coordinate.
func (n *Node) X() float64 { return n.x }

// Y returns the node's absolute y coordinate.
func (n *Node) Y() float64 { return n.y }

// SetX moves the node to absolute x and shifts every descendant by the same
// delta, keeping offsets inside the subtree constant.
func (n *Node) SetX(x float64) {
	dx := x - n.x
	n.x = x
	for _, child := range n.children {
		child.shift(dx, 0)
	}
}

// SetY moves the node to absolute y and shifts every descendant by the same
// delta, keeping offsets inside the subtree constant.
func (n *Node) SetY(y float64) {
	dy := y - n.y
	n.y = y
	for _, child := range n.children {
		child.shift(0, dy)
	}
}

// Pos returns the absolute position.
func (n *Node) Pos() (x, y float64) {
	return n.x, n.y
}

// SetPos is SetX followed by SetY.
func (n *Node) SetPos(x, y float64) {
	n.SetX(x)
	n.SetY(y)
}

// Translate moves the node and its subtree by (dx, dy).
func (n *Node) Translate(dx, dy float64) {
	n.shift(dx, dy)
}

// RPos returns the position relative to the parent. A node without a parent
// reports its absolute position.
func (n *Node) RPos() (x, y float64) {
	if n.parent == nil {
		return n.x, n.y
	}
	return n.x - n.parent.x, n.y - n.parent.y
}

// SetRPos places the node at (x, y) relative to its parent. It fails with an
// InvalidOperation error when the node has no parent.
func (n *Node) SetRPos(x, y float64) error {
	if n.parent == nil {
		return newError(CodeInvalidOperation, "Node.SetRPos", "node %q has no parent", n.Name)
	}
	n.SetPos(x+n.parent.x, y+n.parent.y)
	return nil
}

// shift adds (dx, dy) to the node and all its descendants.
func (n *Node) shift(dx, dy float64) {
	n.x += dx
	n.y += dy
	for _, child := range n.children {
		child.shift(dx, dy)
	}
}
