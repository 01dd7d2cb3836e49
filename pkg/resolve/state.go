package resolve

// ChoiceTable maps a cluster index to its keeper path, or to unresolved.
type ChoiceTable struct {
	keepers  []string
	resolved []bool
}

// NewChoiceTable creates a table of n unresolved entries.
func NewChoiceTable(n int) ChoiceTable {
	return ChoiceTable{
		keepers:  make([]string, n),
		resolved: make([]bool, n),
	}
}

// Len returns the number of entries
func (t ChoiceTable) Len() int {
	return len(t.keepers)
}

// Keeper returns the keeper recorded for index i.
func (t ChoiceTable) Keeper(i int) (string, bool) {
	if i < 0 || i >= len(t.keepers) || !t.resolved[i] {
		return "", false
	}
	return t.keepers[i], true
}

// Set records keeper as the choice for index i.
func (t ChoiceTable) Set(i int, keeper string) {
	t.keepers[i] = keeper
	t.resolved[i] = true
}

// ClearRange marks every index in [from, to) unresolved.
func (t ChoiceTable) ClearRange(from, to int) {
	for i := max(from, 0); i < to && i < len(t.keepers); i++ {
		t.keepers[i] = ""
		t.resolved[i] = false
	}
}

// Complete reports whether every entry has a keeper.
func (t ChoiceTable) Complete() bool {
	for _, ok := range t.resolved {
		if !ok {
			return false
		}
	}
	return true
}

// Unresolved returns the indices without a keeper, ascending.
func (t ChoiceTable) Unresolved() []int {
	var out []int
	for i, ok := range t.resolved {
		if !ok {
			out = append(out, i)
		}
	}
	return out
}

// Visit is one committed position in the traversal history.
type Visit struct {
	Index    int
	Inferred bool
}

// History is an append-only log of committed positions with pop-to-undo.
type History struct {
	visits []Visit
}

// Push records a committed position.
func (h *History) Push(v Visit) {
	h.visits = append(h.visits, v)
}

// Pop removes and returns the most recent visit.
func (h *History) Pop() (Visit, bool) {
	if len(h.visits) == 0 {
		return Visit{}, false
	}
	v := h.visits[len(h.visits)-1]
	h.visits = h.visits[:len(h.visits)-1]
	return v, true
}

// Len returns the number of recorded visits
func (h *History) Len() int {
	return len(h.visits)
}

// Visits returns a copy of the log, oldest first.
func (h *History) Visits() []Visit {
	out := make([]Visit, len(h.visits))
	copy(out, h.visits)
	return out
}

// State is the complete session data of a traversal: the current position
// in [0, N], the choice table and the history of committed positions.
type State struct {
	Pos     int
	Choices ChoiceTable
	History History
}

// NewState creates the initial state for n clusters.
func NewState(n int) *State {
	return &State{Choices: NewChoiceTable(n)}
}

// Done reports whether every position has been passed.
func (s *State) Done() bool {
	return s.Pos >= s.Choices.Len()
}

// Commit records keeper for the current position and advances.
func (s *State) Commit(keeper string, inferred bool) {
	s.Choices.Set(s.Pos, keeper)
	s.History.Push(Visit{Index: s.Pos, Inferred: inferred})
	s.Pos++
}

// StepBack rewinds to the most recent prompted position and returns it.
//
// Inferred visits on top of the history are popped along the way: landing on
// one would re-infer it immediately and leave the user where they started.
// Every choice in [target, Pos) is cleared. With no prompted visit left the
// traversal restarts at 0. Popping past inferred visits is intentional and
// differs from popping only the latest visit.
func (s *State) StepBack() int {
	target := 0
	for {
		v, ok := s.History.Pop()
		if !ok {
			break
		}
		if !v.Inferred {
			target = v.Index
			break
		}
	}
	s.Choices.ClearRange(target, s.Pos)
	s.Pos = target
	return target
}
