package search

import (
	"fmt"
	"slices"

	"load-route-service/internal/domain"
)

// Reconstruct walks parent links from best back to the start node and
// returns the nodes in start-to-best order.
//
// Each parent coordinate resolves to the node that closed it, which is the
// only node ever expanded there and therefore the one that produced the
// child.
func Reconstruct(best Node, closed map[domain.Coordinate]Node) ([]Node, error) {
	path := []Node{best}

	for cur := best; cur.HasParent; {
		parent, ok := closed[cur.Parent]
		if !ok {
			return nil, fmt.Errorf("reconstruct path: no closed state at %s", cur.Parent)
		}
		path = append(path, parent)
		if len(path) > len(closed)+1 {
			return nil, fmt.Errorf("reconstruct path: parent chain from %s does not reach the start", best.Location)
		}
		cur = parent
	}

	slices.Reverse(path)
	return path, nil
}

// LoadIDs lists the loads hauled along path, skipping the start node.
func LoadIDs(path []Node) []int64 {
	ids := make([]int64, 0, len(path))
	for _, n := range path {
		if n.HasParent {
			ids = append(ids, n.LoadID)
		}
	}
	return ids
}
