package memory

import (
	"context"
	"errors"
	"load-route-service/internal/domain"
	"load-route-service/internal/ports"
	"slices"
	"testing"
)

func TestResultStore(t *testing.T) {
	ctx := context.Background()
	s := NewResultStore()

	in := []domain.RouteResult{{TripID: 1, LoadIDs: []int64{5, 6}}}
	if err := s.SaveResults(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	in[0].LoadIDs[0] = 99

	got, err := s.GetResult(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !slices.Equal(got.LoadIDs, []int64{5, 6}) {
		t.Fatalf("load ids = %v, want [5 6]", got.LoadIDs)
	}

	if _, err := s.GetResult(ctx, 2); !errors.Is(err, ports.ErrResultNotFound) {
		t.Fatalf("err = %v, want ErrResultNotFound", err)
	}
}
