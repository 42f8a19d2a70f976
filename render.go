package sapling

// Draw paints the node and its subtree onto c: the node's own content first,
// then its children in list order, so children paint over their parent and
// later siblings over earlier ones. An invisible node draws nothing and its
// children are never visited.
func (n *Node) Draw(c *Canvas) {
	n.draw(c)
}

// draw walks the subtree depth-first, pre-order, and returns the number of
// nodes that painted (containers included).
func (n *Node) draw(c *Canvas) int {
	if !n.Visible {
		return 0
	}
	switch n.Type {
	case NodeTypeSprite:
		drawSprite(n, c)
	case NodeTypeText:
		drawText(n, c)
		// NodeTypeContainer paints nothing itself
	}
	count := 1
	for _, child := range n.children {
		count += child.draw(c)
	}
	return count
}
