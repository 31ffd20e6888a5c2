package schedule

import "time"

// backwardResult holds the Late Start/Finish computed by the backward pass,
// keyed by task ID.
type backwardResult struct {
	lateStart  map[string]time.Time
	lateFinish map[string]time.Time
}

// runBackward computes Late Finish/Late Start for every task by propagating
// anchor deadlines upstream through the dependency graph. It walks the
// reverse edge set with the consumer count as the Kahn in-degree, and
// tightens candidate finish times via min() whenever more than one anchor
// competes for the same task.
func runBackward(g *graph, anchors Anchors) (*backwardResult, error) {
	anchorTimes := make(map[string]time.Time, len(anchors))
	for taskID, raw := range anchors {
		t, err := parseAnchor(taskID, raw)
		if err != nil {
			return nil, err
		}
		anchorTimes[taskID] = t
	}

	sinks := g.sinks()
	var unresolved []string
	for _, id := range sinks {
		if _, ok := anchorTimes[id]; !ok {
			unresolved = append(unresolved, g.taskMap[id].Name)
		}
	}
	if len(unresolved) > 0 {
		return nil, errNoEndDateComputed(unresolved)
	}

	consumerCount := g.consumerCounts()
	candidateLF := make(map[string]time.Time)
	lateFinish := make(map[string]time.Time, len(g.taskMap))
	lateStart := make(map[string]time.Time, len(g.taskMap))

	queue := make([]string, 0, len(sinks))
	for _, id := range sinks {
		queue = append(queue, id)
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		lf, ok := finalizeLateFinish(id, anchorTimes, candidateLF)
		if !ok {
			// Every node reaching zero consumer_count has either an anchor
			// or an inherited candidate; this should be unreachable.
			return nil, errNoEndDateComputed([]string{g.taskMap[id].Name})
		}
		lateFinish[id] = lf
		lateStart[id] = lf.Add(-g.taskMap[id].Duration())

		for _, depID := range g.taskMap[id].Dependencies {
			if _, ok := g.taskMap[depID]; !ok {
				return nil, errTaskNotFound(depID)
			}
			candidate := lateStart[id]
			if existing, ok := candidateLF[depID]; !ok || candidate.Before(existing) {
				candidateLF[depID] = candidate
			}
			consumerCount[depID]--
			if consumerCount[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}

	if len(lateFinish) != len(g.taskMap) {
		return nil, errCycleDetected()
	}

	return &backwardResult{lateStart: lateStart, lateFinish: lateFinish}, nil
}

// finalizeLateFinish resolves a task's Late Finish once all of its consumers
// have contributed a candidate: when the task has both an anchor and a
// candidate, the earlier of the two wins via min(), per the multi-anchor
// tightening rule.
func finalizeLateFinish(id string, anchorTimes, candidateLF map[string]time.Time) (time.Time, bool) {
	anchorTime, isAnchor := anchorTimes[id]
	candTime, hasCandidate := candidateLF[id]

	switch {
	case isAnchor && hasCandidate:
		if anchorTime.Before(candTime) {
			return anchorTime, true
		}
		return candTime, true
	case isAnchor:
		return anchorTime, true
	case hasCandidate:
		return candTime, true
	default:
		return time.Time{}, false
	}
}
