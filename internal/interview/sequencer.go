package interview

import (
	"strings"
	"sync"

	"hireview/internal/dto"

	"github.com/rs/zerolog/log"
)

// State is the candidate flow's explicit finite-state machine. Transitions go
// strictly forward except Uploading→Recording on upload failure, which keeps
// the finalized takes so the candidate never re-records after a network error.
type State int

const (
	StateIntro State = iota
	StateSetup
	StateRecording
	StateUploading
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateIntro:
		return "intro"
	case StateSetup:
		return "setup"
	case StateRecording:
		return "recording"
	case StateUploading:
		return "uploading"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// FinalizedResponse is one question's confirmed take, accumulated in question
// order for the uploader.
type FinalizedResponse struct {
	Question dto.QuestionResponseDTO
	Take     *Take
}

// Sequencer steps through the ordered question list, advancing only on a
// confirmed selection, and accumulates exactly one finalized take per
// question. Backward navigation is allowed; future questions are locked.
type Sequencer struct {
	mu sync.Mutex

	state       State
	questions   []dto.QuestionResponseDTO
	trackers    []*AttemptTracker
	finalized   []*Take // slot per question, nil until confirmed
	current     int     // question the candidate is viewing
	furthest    int     // frontier: first question without a confirmed take
	name, email string

	maxAttempts  int
	requireSetup bool
	observer     func(questionIndex int, state AttemptState)
}

type SequencerOption func(*Sequencer)

// WithMaxAttempts overrides the per-question retake budget.
func WithMaxAttempts(n int) SequencerOption {
	return func(s *Sequencer) { s.maxAttempts = n }
}

// WithSetupStep toggles the camera-permission/demo step between intro and
// recording.
func WithSetupStep(enabled bool) SequencerOption {
	return func(s *Sequencer) { s.requireSetup = enabled }
}

// WithAttemptObserver installs a per-question observer receiving the question
// index alongside each tracker snapshot.
func WithAttemptObserver(observer func(questionIndex int, state AttemptState)) SequencerOption {
	return func(s *Sequencer) { s.observer = observer }
}

func NewSequencer(questions []dto.QuestionResponseDTO, opts ...SequencerOption) *Sequencer {
	s := &Sequencer{
		state:        StateIntro,
		questions:    questions,
		finalized:    make([]*Take, len(questions)),
		maxAttempts:  DefaultMaxAttempts,
		requireSetup: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.trackers = make([]*AttemptTracker, len(questions))
	for i := range s.trackers {
		var obs AttemptObserver
		if s.observer != nil {
			idx := i
			obs = func(state AttemptState) { s.observer(idx, state) }
		}
		s.trackers[i] = NewAttemptTracker(s.maxAttempts, obs)
	}
	return s
}

func (s *Sequencer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Begin confirms the candidate's identity and leaves the intro step. Name and
// email are the single validation gate before hardware access.
func (s *Sequencer) Begin(name, email string) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return ErrIdentityRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.questions) == 0 {
		return ErrNoQuestions
	}
	if s.state != StateIntro {
		return ErrInvalidTransition
	}
	s.name = name
	s.email = email
	if s.requireSetup {
		s.state = StateSetup
	} else {
		s.state = StateRecording
	}
	log.Debug().Str("state", s.state.String()).Msg("interview started")
	return nil
}

// FinishSetup leaves the optional camera-setup step.
func (s *Sequencer) FinishSetup() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateSetup {
		return ErrInvalidTransition
	}
	s.state = StateRecording
	return nil
}

// Candidate returns the identity confirmed at the intro gate.
func (s *Sequencer) Candidate() (name, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name, s.email
}

// CurrentQuestion returns the question the candidate is viewing and its index,
// or a zero value and -1 when the sequence is empty.
func (s *Sequencer) CurrentQuestion() (dto.QuestionResponseDTO, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.questions) == 0 {
		return dto.QuestionResponseDTO{}, -1
	}
	return s.questions[s.current], s.current
}

// Tracker exposes the attempt tracker for a question index.
func (s *Sequencer) Tracker(index int) *AttemptTracker {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.trackers) {
		return nil
	}
	return s.trackers[index]
}

// CurrentTracker is the tracker for the question in view, nil when the
// sequence is empty.
func (s *Sequencer) CurrentTracker() *AttemptTracker {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.trackers) == 0 {
		return nil
	}
	return s.trackers[s.current]
}

// Navigate moves the view to another question. Only the current question and
// already-visited ones are reachable; future questions stay locked.
func (s *Sequencer) Navigate(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRecording {
		return ErrInvalidTransition
	}
	if index < 0 || index > s.furthest {
		return ErrForwardNavigation
	}
	s.current = index
	return nil
}

// ConfirmSelection locks in the current question's selected take. At the
// frontier it advances to the next question, or to Uploading after the last
// one; on a revisited question it replaces the finalized take and returns the
// view to the frontier.
func (s *Sequencer) ConfirmSelection() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRecording {
		return ErrInvalidTransition
	}

	tracker := s.trackers[s.current]
	take := tracker.ConfirmedSelection()
	if take == nil {
		return ErrNoSelection
	}
	if err := tracker.MarkCompleted(); err != nil {
		return err
	}
	s.finalized[s.current] = take

	if s.current < s.furthest {
		// Revisit: the frontier does not move.
		s.current = s.furthest
		return nil
	}

	if s.furthest == len(s.questions)-1 {
		s.state = StateUploading
		log.Debug().Int("questions", len(s.questions)).Msg("all questions confirmed, ready to upload")
		return nil
	}
	s.furthest++
	s.current = s.furthest
	return nil
}

// Finalized returns the accumulated (question, take) sequence in question
// order. Complete only once the state machine has reached Uploading.
func (s *Sequencer) Finalized() []FinalizedResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	responses := make([]FinalizedResponse, 0, len(s.questions))
	for i, take := range s.finalized {
		if take == nil {
			continue
		}
		responses = append(responses, FinalizedResponse{Question: s.questions[i], Take: take})
	}
	return responses
}

// MarkUploadFailed returns the machine to a retry-capable state. The finalized
// takes are preserved; nothing needs re-recording.
func (s *Sequencer) MarkUploadFailed() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateUploading {
		return ErrInvalidTransition
	}
	s.state = StateRecording
	return nil
}

// MarkUploadComplete finishes the flow once the orchestrator reports full
// success.
func (s *Sequencer) MarkUploadComplete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateUploading {
		return ErrInvalidTransition
	}
	s.state = StateComplete
	return nil
}

// QuestionCount reports the interview length.
func (s *Sequencer) QuestionCount() int {
	return len(s.questions)
}
