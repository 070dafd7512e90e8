package core

// history is a persistent list of applied command symbols, newest first.
// Nodes are never modified, so snapshots share their common prefix.
type history struct {
	symbol byte
	prev   *history
	n      int
}

func (h *history) push(symbol byte) *history {
	return &history{symbol: symbol, prev: h, n: h.len() + 1}
}

func (h *history) len() int {
	if h == nil {
		return 0
	}
	return h.n
}

// String returns the symbols in the order they were applied.
func (h *history) String() string {
	buf := make([]byte, h.len())
	for i, node := len(buf)-1, h; node != nil; i, node = i-1, node.prev {
		buf[i] = node.symbol
	}
	return string(buf)
}

// snapshots is a stack of saved engine states.
type snapshots []State

func (s *snapshots) push(st State) {
	*s = append(*s, st)
}

func (s *snapshots) pop() (State, bool) {
	n := len(*s)
	if n == 0 {
		return State{}, false
	}
	st := (*s)[n-1]
	(*s)[n-1] = State{}
	*s = (*s)[:n-1]
	return st, true
}
