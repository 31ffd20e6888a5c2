package schedule

// assemble joins the backward and forward passes into the final output,
// preserving the caller's input order. start_date/end_date carry the Late
// Start/Finish computed from anchor deadlines; slack_minutes and is_critical
// are derived from how far ahead of its deadline a task could finish.
func assemble(g *graph, backward *backwardResult, forward *forwardResult) []ScheduledTask {
	out := make([]ScheduledTask, 0, len(g.order))

	for _, id := range g.order {
		t := g.taskMap[id]
		ls, ok := backward.lateStart[id]
		if !ok {
			continue
		}
		es, ok := forward.earlyStart[id]
		if !ok {
			es = ls
		}

		slackMinutes := int64(ls.Sub(es).Minutes())

		out = append(out, ScheduledTask{
			ID:           t.ID,
			Name:         t.Name,
			StartDate:    formatTimestamp(ls),
			EndDate:      formatTimestamp(backward.lateFinish[id]),
			Completed:    t.Completed,
			Notes:        t.Notes,
			IsMilestone:  t.IsMilestone,
			Subtasks:     t.Subtasks,
			SlackMinutes: slackMinutes,
			IsCritical:   slackMinutes <= 0,
		})
	}

	return out
}
