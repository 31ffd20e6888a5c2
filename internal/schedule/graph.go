package schedule

// graph is the materialised task index and forward/reverse adjacency built
// from a flat input list: consumer counts feed Kahn's algorithm on the
// reverse edge set, the input order feeds the assembler.
type graph struct {
	taskMap    map[string]*Task
	order      []string            // input order, for the assembler
	dependents map[string][]string // provider -> consumers (reverse of Dependencies)
}

// newGraph builds task_map and dependents from the flat input list and
// validates that every anchor identifier refers to a known task.
func newGraph(req Request) (*graph, error) {
	g := &graph{
		taskMap:    make(map[string]*Task, len(req.Tasks)),
		order:      make([]string, 0, len(req.Tasks)),
		dependents: make(map[string][]string),
	}

	for i := range req.Tasks {
		t := &req.Tasks[i]
		g.taskMap[t.ID] = t
		g.order = append(g.order, t.ID)
	}

	for i := range req.Tasks {
		t := &req.Tasks[i]
		for _, depID := range t.Dependencies {
			g.dependents[depID] = append(g.dependents[depID], t.ID)
		}
	}

	for taskID := range req.Anchors {
		if _, ok := g.taskMap[taskID]; !ok {
			return nil, errAnchorTaskNotFound(taskID)
		}
	}

	return g, nil
}

// consumerCounts returns a fresh copy of |dependents[id]| for every id that
// has at least one consumer.
func (g *graph) consumerCounts() map[string]int {
	counts := make(map[string]int, len(g.dependents))
	for id, consumers := range g.dependents {
		counts[id] = len(consumers)
	}
	return counts
}

// sinks returns task identifiers that appear in no other task's
// dependencies list: the initial backward-pass frontier. Input order, so
// the work order never depends on map iteration.
func (g *graph) sinks() []string {
	var result []string
	for _, id := range g.order {
		if _, hasConsumers := g.dependents[id]; !hasConsumers {
			result = append(result, id)
		}
	}
	return result
}
