package interview

import (
	"errors"
	"testing"

	"hireview/internal/dto"
)

func testQuestions(n int) []dto.QuestionResponseDTO {
	qs := make([]dto.QuestionResponseDTO, n)
	for i := range qs {
		qs[i] = dto.QuestionResponseDTO{
			ID:           uint(i + 1),
			QuestionText: "question",
			TimeLimit:    15,
			OrderIndex:   i,
		}
	}
	return qs
}

// startedSequencer returns a sequencer past the identity gate and the setup
// step, viewing question 0.
func startedSequencer(t *testing.T, n int, opts ...SequencerOption) *Sequencer {
	t.Helper()
	seq := NewSequencer(testQuestions(n), opts...)
	if err := seq.Begin("Ada Lovelace", "ada@example.com"); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := seq.FinishSetup(); err != nil {
		t.Fatalf("finish setup: %v", err)
	}
	return seq
}

func confirmTake(t *testing.T, seq *Sequencer, tag string) {
	t.Helper()
	tr := seq.CurrentTracker()
	if err := tr.AddTake(newTake(tag)); err != nil {
		t.Fatalf("add take: %v", err)
	}
	if err := tr.Select(tr.State().AttemptsUsed - 1); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := seq.ConfirmSelection(); err != nil {
		t.Fatalf("confirm: %v", err)
	}
}

func TestBeginRequiresIdentity(t *testing.T) {
	seq := NewSequencer(testQuestions(1))
	if err := seq.Begin("  ", "ada@example.com"); !errors.Is(err, ErrIdentityRequired) {
		t.Errorf("blank name: got %v, want ErrIdentityRequired", err)
	}
	if err := seq.Begin("Ada", ""); !errors.Is(err, ErrIdentityRequired) {
		t.Errorf("blank email: got %v, want ErrIdentityRequired", err)
	}
	if got := seq.State(); got != StateIntro {
		t.Errorf("state = %v, want intro", got)
	}
}

func TestBeginRejectsEmptyQuestionList(t *testing.T) {
	seq := NewSequencer(nil)
	if err := seq.Begin("Ada", "ada@example.com"); !errors.Is(err, ErrNoQuestions) {
		t.Errorf("got %v, want ErrNoQuestions", err)
	}
	if q, idx := seq.CurrentQuestion(); idx != -1 || q.ID != 0 {
		t.Errorf("CurrentQuestion = %+v at %d, want zero value and -1", q, idx)
	}
	if tr := seq.CurrentTracker(); tr != nil {
		t.Error("CurrentTracker returned a tracker for an empty sequence")
	}
}

func TestBeginSkipsSetupWhenDisabled(t *testing.T) {
	seq := NewSequencer(testQuestions(1), WithSetupStep(false))
	if err := seq.Begin("Ada", "ada@example.com"); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if got := seq.State(); got != StateRecording {
		t.Errorf("state = %v, want recording", got)
	}
}

func TestNavigateLocksFutureQuestions(t *testing.T) {
	seq := startedSequencer(t, 3)

	if err := seq.Navigate(1); !errors.Is(err, ErrForwardNavigation) {
		t.Errorf("jump ahead: got %v, want ErrForwardNavigation", err)
	}

	confirmTake(t, seq, "q1")
	if _, idx := seq.CurrentQuestion(); idx != 1 {
		t.Fatalf("current = %d, want 1 after confirming question 0", idx)
	}

	// Backward navigation is allowed once a question has been visited.
	if err := seq.Navigate(0); err != nil {
		t.Errorf("navigate back: %v", err)
	}
	if err := seq.Navigate(2); !errors.Is(err, ErrForwardNavigation) {
		t.Errorf("jump past frontier: got %v, want ErrForwardNavigation", err)
	}
}

func TestConfirmRequiresSelection(t *testing.T) {
	seq := startedSequencer(t, 1)
	seq.CurrentTracker().AddTake(newTake("a"))
	if err := seq.ConfirmSelection(); !errors.Is(err, ErrNoSelection) {
		t.Errorf("got %v, want ErrNoSelection", err)
	}
}

func TestConfirmOnRevisitReplacesTakeAndReturnsToFrontier(t *testing.T) {
	seq := startedSequencer(t, 3)
	confirmTake(t, seq, "q1-first")
	confirmTake(t, seq, "q2")

	// Revisit question 0 and swap in a different take.
	if err := seq.Navigate(0); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	confirmTake(t, seq, "q1-second")

	if _, idx := seq.CurrentQuestion(); idx != 2 {
		t.Errorf("current = %d, want the frontier question 2", idx)
	}

	confirmTake(t, seq, "q3")
	finalized := seq.Finalized()
	if len(finalized) != 3 {
		t.Fatalf("finalized %d responses, want 3", len(finalized))
	}
	if string(finalized[0].Take.Data) != "q1-second" {
		t.Errorf("question 0 take = %q, want the replacement", finalized[0].Take.Data)
	}
}

func TestLastConfirmationEntersUploading(t *testing.T) {
	seq := startedSequencer(t, 2)
	confirmTake(t, seq, "q1")
	if got := seq.State(); got != StateRecording {
		t.Fatalf("state after question 1 = %v, want recording", got)
	}
	confirmTake(t, seq, "q2")
	if got := seq.State(); got != StateUploading {
		t.Fatalf("state after last question = %v, want uploading", got)
	}

	finalized := seq.Finalized()
	if len(finalized) != 2 {
		t.Fatalf("finalized %d responses, want 2", len(finalized))
	}
	if finalized[0].Question.ID != 1 || finalized[1].Question.ID != 2 {
		t.Errorf("finalized order wrong: %+v", finalized)
	}
}

func TestUploadFailurePreservesFinalizedTakes(t *testing.T) {
	seq := startedSequencer(t, 2)
	confirmTake(t, seq, "q1")
	confirmTake(t, seq, "q2")

	if err := seq.MarkUploadFailed(); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	if got := seq.State(); got != StateRecording {
		t.Fatalf("state = %v, want recording for retry", got)
	}
	if got := len(seq.Finalized()); got != 2 {
		t.Errorf("finalized %d responses after failure, want 2 preserved", got)
	}

	// Re-confirming the last question re-enters uploading without new data.
	if err := seq.Navigate(1); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if err := seq.ConfirmSelection(); err != nil {
		t.Fatalf("re-confirm: %v", err)
	}
	if got := seq.State(); got != StateUploading {
		t.Fatalf("state = %v, want uploading again", got)
	}
	if err := seq.MarkUploadComplete(); err != nil {
		t.Fatalf("mark complete: %v", err)
	}
	if got := seq.State(); got != StateComplete {
		t.Errorf("state = %v, want complete", got)
	}
}

func TestWithMaxAttemptsAppliesToTrackers(t *testing.T) {
	seq := startedSequencer(t, 1, WithMaxAttempts(1))
	tr := seq.CurrentTracker()
	if err := tr.AddTake(newTake("only")); err != nil {
		t.Fatalf("take: %v", err)
	}
	if err := tr.AddTake(newTake("extra")); !errors.Is(err, ErrMaxAttempts) {
		t.Errorf("got %v, want ErrMaxAttempts with budget 1", err)
	}
}

func TestAttemptObserverReceivesQuestionIndex(t *testing.T) {
	var indices []int
	seq := startedSequencer(t, 2, WithAttemptObserver(func(idx int, st AttemptState) {
		indices = append(indices, idx)
	}))

	confirmTake(t, seq, "q1")
	seq.CurrentTracker().AddTake(newTake("q2"))

	// q1: add, select, mark-completed; q2: add.
	if len(indices) != 4 || indices[0] != 0 || indices[3] != 1 {
		t.Errorf("observer indices = %v", indices)
	}
}
