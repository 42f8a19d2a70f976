package sapling

import (
	"errors"
	"testing"
)

func buildChain() (root, mid, leaf *Node) {
	root = NewContainer("root")
	mid = NewContainer("mid")
	leaf = NewContainer("leaf")
	root.AddChild(mid)
	mid.AddChild(leaf)
	mid.SetPos(10, 20)
	leaf.SetPos(15, 30)
	return root, mid, leaf
}

func TestSetXShiftsSubtree(t *testing.T) {
	root, mid, leaf := buildChain()
	root.SetX(100)

	if root.X() != 100 {
		t.Errorf("root.X = %v, want 100", root.X())
	}
	if mid.X() != 110 {
		t.Errorf("mid.X = %v, want 110", mid.X())
	}
	if leaf.X() != 115 {
		t.Errorf("leaf.X = %v, want 115", leaf.X())
	}
	if leaf.Y() != 30 {
		t.Errorf("leaf.Y = %v, want 30 (untouched)", leaf.Y())
	}
}

func TestSetYShiftsSubtree(t *testing.T) {
	_, mid, leaf := buildChain()
	mid.SetY(0)

	if mid.Y() != 0 {
		t.Errorf("mid.Y = %v, want 0", mid.Y())
	}
	if leaf.Y() != 10 {
		t.Errorf("leaf.Y = %v, want 10", leaf.Y())
	}
}

func TestSetPosKeepsOffsets(t *testing.T) {
	root, mid, leaf := buildChain()
	before := [2]float64{leaf.X() - mid.X(), leaf.Y() - mid.Y()}

	root.SetPos(-7.5, 42)
	mid.SetPos(3, 3)

	after := [2]float64{leaf.X() - mid.X(), leaf.Y() - mid.Y()}
	if before != after {
		t.Errorf("leaf offset = %v, want %v", after, before)
	}
}

func TestMovingChildLeavesParent(t *testing.T) {
	root, mid, _ := buildChain()
	mid.SetPos(50, 50)
	if x, y := root.Pos(); x != 0 || y != 0 {
		t.Errorf("root Pos = (%v, %v), want (0, 0)", x, y)
	}
}

func TestTranslate(t *testing.T) {
	_, mid, leaf := buildChain()
	mid.Translate(1, -2)

	if x, y := mid.Pos(); x != 11 || y != 18 {
		t.Errorf("mid Pos = (%v, %v), want (11, 18)", x, y)
	}
	if x, y := leaf.Pos(); x != 16 || y != 28 {
		t.Errorf("leaf Pos = (%v, %v), want (16, 28)", x, y)
	}
}

func TestRPos(t *testing.T) {
	root, _, leaf := buildChain()
	root.SetPos(100, 100)

	if x, y := leaf.RPos(); x != 5 || y != 10 {
		t.Errorf("leaf RPos = (%v, %v), want (5, 10)", x, y)
	}
	if x, y := root.RPos(); x != 100 || y != 100 {
		t.Errorf("root RPos = (%v, %v), want its absolute position", x, y)
	}
}

func TestSetRPos(t *testing.T) {
	_, mid, leaf := buildChain()
	sub := NewContainer("sub")
	leaf.AddChild(sub)
	sub.SetPos(leaf.X()+1, leaf.Y()+1)

	if err := leaf.SetRPos(0, 0); err != nil {
		t.Fatalf("SetRPos: %v", err)
	}
	if leaf.X() != mid.X() || leaf.Y() != mid.Y() {
		t.Errorf("leaf Pos = (%v, %v), want parent position (%v, %v)", leaf.X(), leaf.Y(), mid.X(), mid.Y())
	}
	if x, y := sub.RPos(); x != 1 || y != 1 {
		t.Errorf("sub RPos = (%v, %v), want (1, 1)", x, y)
	}
}

func TestSetRPosWithoutParent(t *testing.T) {
	n := NewContainer("orphan")
	n.SetPos(3, 4)
	err := n.SetRPos(1, 1)
	if !errors.Is(err, ErrInvalidOperation) {
		t.Fatalf("err = %v, want InvalidOperation", err)
	}
	if x, y := n.Pos(); x != 3 || y != 4 {
		t.Errorf("Pos = (%v, %v), want unchanged (3, 4)", x, y)
	}
}
