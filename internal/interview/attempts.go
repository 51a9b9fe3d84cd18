package interview

import "sync"

// DefaultMaxAttempts is the retake budget per question. Recruiters cannot
// override it today, but the tracker takes it as a parameter so policy can
// become configuration later.
const DefaultMaxAttempts = 3

// AttemptState is the snapshot pushed to observers after every mutation, so an
// externally rendered progress view stays consistent without polling.
type AttemptState struct {
	AttemptsUsed  int
	MaxAttempts   int
	SelectedIndex int // -1 when nothing is selected
	HasSelection  bool
	Completed     bool
}

// AttemptObserver receives state snapshots. Called synchronously; keep it
// cheap.
type AttemptObserver func(AttemptState)

// AttemptTracker enforces the bounded-retake policy for one question: at most
// maxAttempts takes, one of which the candidate selects as their answer.
// Viewing a take is non-destructive; only Delete discards data.
type AttemptTracker struct {
	mu          sync.Mutex
	maxAttempts int
	takes       []*Take
	selected    int
	completed   bool
	observer    AttemptObserver
}

func NewAttemptTracker(maxAttempts int, observer AttemptObserver) *AttemptTracker {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &AttemptTracker{
		maxAttempts: maxAttempts,
		selected:    -1,
		observer:    observer,
	}
}

// AddTake appends a recorded take. Rejected once the budget is spent; a
// deletion frees a slot.
func (t *AttemptTracker) AddTake(take *Take) error {
	t.mu.Lock()
	if len(t.takes) >= t.maxAttempts {
		t.mu.Unlock()
		return ErrMaxAttempts
	}
	t.takes = append(t.takes, take)
	t.notifyLocked()
	t.mu.Unlock()
	return nil
}

// Select marks the take at index as the candidate's designated answer.
func (t *AttemptTracker) Select(index int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if index < 0 || index >= len(t.takes) {
		return ErrNoSelection
	}
	t.selected = index
	t.notifyLocked()
	return nil
}

// Delete removes the take at index and adjusts the selection: deleting the
// selected take clears the selection, deleting an earlier take shifts the
// selection down by one, deleting a later take leaves it untouched.
func (t *AttemptTracker) Delete(index int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if index < 0 || index >= len(t.takes) {
		return ErrNoSelection
	}
	t.takes = append(t.takes[:index], t.takes[index+1:]...)
	switch {
	case t.selected == index:
		t.selected = -1
	case t.selected > index:
		t.selected--
	}
	t.notifyLocked()
	return nil
}

// Take returns the take at index for playback without removing it.
func (t *AttemptTracker) Take(index int) (*Take, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if index < 0 || index >= len(t.takes) {
		return nil, ErrNoSelection
	}
	return t.takes[index], nil
}

// ConfirmedSelection returns the selected take, or nil when none is selected.
func (t *AttemptTracker) ConfirmedSelection() *Take {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.selected < 0 {
		return nil
	}
	return t.takes[t.selected]
}

// MarkCompleted locks in the selection when the candidate advances. Fails
// without a selection, so completed always implies a selected take existed.
func (t *AttemptTracker) MarkCompleted() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.selected < 0 {
		return ErrNoSelection
	}
	t.completed = true
	t.notifyLocked()
	return nil
}

// CanRecord reports whether a retake slot is still free.
func (t *AttemptTracker) CanRecord() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.takes) < t.maxAttempts
}

// State returns the current snapshot.
func (t *AttemptTracker) State() AttemptState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stateLocked()
}

func (t *AttemptTracker) stateLocked() AttemptState {
	return AttemptState{
		AttemptsUsed:  len(t.takes),
		MaxAttempts:   t.maxAttempts,
		SelectedIndex: t.selected,
		HasSelection:  t.selected >= 0,
		Completed:     t.completed,
	}
}

func (t *AttemptTracker) notifyLocked() {
	if t.observer != nil {
		t.observer(t.stateLocked())
	}
}
