package schedule

// Schedule computes the backwards critical-path schedule for req: Late
// Start/Finish propagated from anchor deadlines, Early Start/Finish
// propagated from sources, and the resulting slack/criticality per task.
//
// Schedule is a pure function of its input: it holds no state between
// calls and is safe to invoke concurrently from multiple goroutines over
// distinct requests.
func Schedule(req Request) ([]ScheduledTask, error) {
	if len(req.Tasks) == 0 {
		return []ScheduledTask{}, nil
	}

	g, err := newGraph(req)
	if err != nil {
		return nil, err
	}

	backward, err := runBackward(g, req.Anchors)
	if err != nil {
		return nil, err
	}

	forward, err := runForward(g, backward)
	if err != nil {
		return nil, err
	}

	return assemble(g, backward, forward), nil
}
