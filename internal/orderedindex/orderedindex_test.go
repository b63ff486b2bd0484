package orderedindex

import (
	"reflect"
	"testing"
)

func TestInsertAndDump(t *testing.T) {
	idx := New[int]()
	for _, k := range []int{1, 2, 3} {
		if err := idx.InsertTop(k); err != nil {
			t.Fatalf("InsertTop(%d): %v", k, err)
		}
	}
	if got, want := idx.Dump(), []int{3, 2, 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("Dump() = %v, want %v", got, want)
	}
	if idx.Len() != 3 {
		t.Errorf("Len() = %d, want 3", idx.Len())
	}
}

func TestInsertBottom(t *testing.T) {
	idx := New[int]()
	for _, k := range []int{1, 2, 3} {
		if err := idx.InsertBottom(k); err != nil {
			t.Fatalf("InsertBottom(%d): %v", k, err)
		}
	}
	if got, want := idx.Dump(), []int{1, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("Dump() = %v, want %v", got, want)
	}
}

func TestDuplicateInsert(t *testing.T) {
	idx := New[int]()
	if err := idx.InsertTop(1); err != nil {
		t.Fatal(err)
	}
	if err := idx.InsertTop(1); err == nil {
		t.Error("expected duplicate-key error, got nil")
	}
}

func TestMissingKeyOps(t *testing.T) {
	idx := New[int]()
	if err := idx.Remove(99); err == nil {
		t.Error("Remove of absent key: expected error")
	}
	if err := idx.MoveUp(99); err == nil {
		t.Error("MoveUp of absent key: expected error")
	}
	if err := idx.MoveDown(99); err == nil {
		t.Error("MoveDown of absent key: expected error")
	}
}

func TestMoveUpDown(t *testing.T) {
	idx := New[int]()
	for _, k := range []int{1, 2, 3, 4} { // top..bottom after inserts: 4,3,2,1
		_ = idx.InsertTop(k)
	}
	if err := idx.MoveUp(1); err != nil { // 1 is bottom, moves up one
		t.Fatal(err)
	}
	if got, want := idx.Dump(), []int{4, 3, 1, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("after MoveUp(1): got %v want %v", got, want)
	}
	if err := idx.MoveDown(4); err != nil { // 4 is top, moves down one
		t.Fatal(err)
	}
	if got, want := idx.Dump(), []int{3, 4, 1, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("after MoveDown(4): got %v want %v", got, want)
	}
}

func TestMoveToTopBottomIdempotent(t *testing.T) {
	idx := New[int]()
	for _, k := range []int{1, 2, 3} {
		_ = idx.InsertBottom(k)
	}
	if err := idx.MoveToTop(3); err != nil {
		t.Fatal(err)
	}
	if err := idx.MoveToTop(3); err != nil { // already on top: no-op
		t.Fatal(err)
	}
	if top, _ := idx.Top(); top != 3 {
		t.Errorf("Top() = %v, want 3", top)
	}
	if err := idx.MoveToBottom(3); err != nil {
		t.Fatal(err)
	}
	if bottom, _ := idx.Bottom(); bottom != 3 {
		t.Errorf("Bottom() = %v, want 3", bottom)
	}
}

func TestInsertAboveBelow(t *testing.T) {
	idx := New[int]()
	_ = idx.InsertTop(1)
	if err := idx.InsertAbove(1, 2); err != nil {
		t.Fatal(err)
	}
	if err := idx.InsertBelow(1, 3); err != nil {
		t.Fatal(err)
	}
	if got, want := idx.Dump(), []int{2, 1, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v want %v", got, want)
	}
}

func TestForwardBackwardAreMutualReverses(t *testing.T) {
	idx := New[int]()
	for _, k := range []int{1, 2, 3, 4, 5} {
		_ = idx.InsertBottom(k)
	}
	var fwd, bwd []int
	idx.Forward(func(k int) bool { fwd = append(fwd, k); return true })
	idx.Backward(func(k int) bool { bwd = append(bwd, k); return true })
	for i, j := 0, len(bwd)-1; i < j; i, j = i+1, j-1 {
		bwd[i], bwd[j] = bwd[j], bwd[i]
	}
	if !reflect.DeepEqual(fwd, bwd) {
		t.Errorf("forward %v is not the reverse of backward %v", fwd, bwd)
	}
}

func TestIndexLookup(t *testing.T) {
	idx := New[string]()
	_ = idx.InsertBottom("a")
	_ = idx.InsertBottom("b")
	_ = idx.InsertBottom("c")
	pos, err := idx.Index("b")
	if err != nil {
		t.Fatal(err)
	}
	if pos != 1 {
		t.Errorf("Index(b) = %d, want 1", pos)
	}
}

func TestPopTopBottom(t *testing.T) {
	idx := New[int]()
	_ = idx.InsertBottom(1)
	_ = idx.InsertBottom(2)
	_ = idx.InsertBottom(3)
	top, ok := idx.PopTop()
	if !ok || top != 1 {
		t.Errorf("PopTop() = %v, %v; want 1, true", top, ok)
	}
	bottom, ok := idx.PopBottom()
	if !ok || bottom != 3 {
		t.Errorf("PopBottom() = %v, %v; want 3, true", bottom, ok)
	}
	if idx.Len() != 1 {
		t.Errorf("Len() = %d, want 1", idx.Len())
	}
}

func TestClearThenReuse(t *testing.T) {
	idx := New[int]()
	_ = idx.InsertTop(1)
	_ = idx.InsertTop(2)
	idx.Clear()
	if idx.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", idx.Len())
	}
	if err := idx.InsertTop(1); err != nil {
		t.Errorf("InsertTop after Clear: %v", err)
	}
}
