package tracker

// Reorder rearranges the habit sequence to follow order, a list of habit
// ids. Ids that match no habit are ignored. Habits missing from order are
// appended after the ordered ones in their previous relative order, so a
// stale or partial order can never drop a habit.
func (t *Tracker) Reorder(order []string) {
	byID := make(map[string]int, len(t.data.Habits))
	for i, h := range t.data.Habits {
		byID[h.ID] = i
	}

	next := make([]Habit, 0, len(t.data.Habits))
	placed := make(map[string]bool, len(order))
	for _, id := range order {
		if placed[id] {
			continue
		}
		if i, ok := byID[id]; ok {
			next = append(next, t.data.Habits[i])
			placed[id] = true
		}
	}
	for _, h := range t.data.Habits {
		if !placed[h.ID] {
			next = append(next, h)
		}
	}

	t.data.Habits = next
	t.save()
}

// MoveHabit shifts the habit at index from to index to, clamping to into
// range. Out-of-range from is a no-op.
func (t *Tracker) MoveHabit(from, to int) bool {
	n := len(t.data.Habits)
	if from < 0 || from >= n {
		return false
	}
	if to < 0 {
		to = 0
	}
	if to >= n {
		to = n - 1
	}
	if from == to {
		return false
	}

	h := t.data.Habits[from]
	rest := append(t.data.Habits[:from:from], t.data.Habits[from+1:]...)
	next := make([]Habit, 0, n)
	next = append(next, rest[:to]...)
	next = append(next, h)
	next = append(next, rest[to:]...)
	t.data.Habits = next
	t.save()
	return true
}
