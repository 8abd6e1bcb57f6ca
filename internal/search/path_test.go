package search

import (
	"slices"
	"testing"

	"load-route-service/internal/domain"
)

func TestReconstructStartOnly(t *testing.T) {
	start := Node{Location: ptA}

	path, err := Reconstruct(start, map[domain.Coordinate]Node{ptA: start})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(path) != 1 {
		t.Fatalf("path length = %d, want 1", len(path))
	}
	if ids := LoadIDs(path); len(ids) != 0 {
		t.Fatalf("load ids = %v, want empty", ids)
	}
}

func TestReconstructOrdersStartToFinish(t *testing.T) {
	start := Node{Location: ptA}
	atB := Node{Location: ptB, Parent: ptA, HasParent: true, LoadID: 10}
	atC := Node{Location: ptC, Parent: ptB, HasParent: true, LoadID: 20}
	atD := Node{Location: ptD, Parent: ptC, HasParent: true, LoadID: 30}

	closed := map[domain.Coordinate]Node{ptA: start, ptB: atB, ptC: atC}

	path, err := Reconstruct(atD, closed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := LoadIDs(path); !slices.Equal(got, []int64{10, 20, 30}) {
		t.Fatalf("load ids = %v, want [10 20 30]", got)
	}
}

func TestReconstructMissingParent(t *testing.T) {
	atC := Node{Location: ptC, Parent: ptB, HasParent: true, LoadID: 20}

	if _, err := Reconstruct(atC, map[domain.Coordinate]Node{}); err == nil {
		t.Fatal("expected error for missing parent")
	}
}

func TestReconstructDetectsLoop(t *testing.T) {
	atB := Node{Location: ptB, Parent: ptC, HasParent: true, LoadID: 1}
	atC := Node{Location: ptC, Parent: ptB, HasParent: true, LoadID: 2}

	if _, err := Reconstruct(atB, map[domain.Coordinate]Node{ptB: atB, ptC: atC}); err == nil {
		t.Fatal("expected error for a parent loop")
	}
}
