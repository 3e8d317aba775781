package triage

import (
	"sync"

	"github.com/ali-aktas/HocaLingo-sub002/internal/domain"
)

// decision is one reversible entry in a session's undo history.
type decision struct {
	concept *domain.Concept
	outcome domain.TriageOutcome
}

// undoStack is a bounded LIFO of decisions. Pushing past capacity evicts the
// oldest entry, which permanently commits that decision.
type undoStack struct {
	entries []decision
	depth   int
}

func newUndoStack(depth int) *undoStack {
	if depth < 1 {
		depth = 1
	}
	return &undoStack{
		entries: make([]decision, 0, depth),
		depth:   depth,
	}
}

// push records a decision, evicting the oldest one when the stack is full.
func (u *undoStack) push(d decision) {
	if len(u.entries) == u.depth {
		copy(u.entries, u.entries[1:])
		u.entries = u.entries[:u.depth-1]
	}
	u.entries = append(u.entries, d)
}

// pop removes and returns the most recent decision.
func (u *undoStack) pop() (decision, bool) {
	if len(u.entries) == 0 {
		return decision{}, false
	}
	d := u.entries[len(u.entries)-1]
	u.entries = u.entries[:len(u.entries)-1]
	return d, true
}

func (u *undoStack) len() int {
	return len(u.entries)
}

// session is one user's in-flight triage pass over a package. The queue is
// fixed at load time; cursor marks the next undecided concept. All access
// goes through mu so concurrent requests from the same user serialize.
type session struct {
	mu        sync.Mutex
	packageID string
	queue     []*domain.Concept
	cursor    int
	kept      int
	discarded int
	undo      *undoStack
}

func newSession(packageID string, queue []*domain.Concept, undoDepth int) *session {
	return &session{
		packageID: packageID,
		queue:     queue,
		undo:      newUndoStack(undoDepth),
	}
}

// head returns the concept awaiting a decision, or nil when the queue is done.
func (s *session) head() *domain.Concept {
	if s.cursor >= len(s.queue) {
		return nil
	}
	return s.queue[s.cursor]
}

func (s *session) remaining() int {
	return len(s.queue) - s.cursor
}

func (s *session) completed() bool {
	return s.cursor >= len(s.queue)
}
