package analysis

import "slices"

// Graph is the internal reference graph: each declared table id maps to
// the distinct tables it references, in first-reference order.
type Graph struct {
	Edges map[string][]string `json:"edges"`
}

// ReachableFrom returns the set of tables reachable from the roots,
// roots included, following internal references. Referenced ids that
// were never declared still appear in the set.
func (g *Graph) ReachableFrom(roots ...string) map[string]bool {
	reached := make(map[string]bool)
	queue := slices.Clone(roots)

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if reached[id] {
			continue
		}
		reached[id] = true
		queue = append(queue, g.Edges[id]...)
	}
	return reached
}

// FindCycle returns one reference cycle when the graph contains any, as
// a path with the repeated table id at both ends, or nil. Nodes are
// visited in sorted order, so the same graph always yields the same
// answer.
func (g *Graph) FindCycle() []string {
	const (
		unvisited = iota
		visiting
		done
	)

	state := make(map[string]int, len(g.Edges))
	ids := make([]string, 0, len(g.Edges))
	for id := range g.Edges {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	var stack []string
	var cycle []string

	var visit func(id string) bool
	visit = func(id string) bool {
		state[id] = visiting
		stack = append(stack, id)

		for _, next := range g.Edges[id] {
			switch state[next] {
			case visiting:
				start := slices.Index(stack, next)
				cycle = append(slices.Clone(stack[start:]), next)
				return true
			case unvisited:
				if visit(next) {
					return true
				}
			}
		}

		stack = stack[:len(stack)-1]
		state[id] = done
		return false
	}

	for _, id := range ids {
		if state[id] == unvisited && visit(id) {
			return cycle
		}
	}
	return nil
}
