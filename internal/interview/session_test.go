package interview

import (
	"context"
	"errors"
	"testing"
	"time"

	"hireview/internal/dto"
)

// freshStreamDevice hands out a new stream per Open, matching real hardware
// where a released handle cannot be reused.
type freshStreamDevice struct {
	opens int
}

func (d *freshStreamDevice) Open(ctx context.Context) (MediaStream, error) {
	d.opens++
	return newFakeStream([]byte("chunk")), nil
}

// fakeSessionClient backs a full session: job fetch plus the submitter fakes.
type fakeSessionClient struct {
	fakeSubmitter
	job      *dto.JobResponseDTO
	fetchErr error
}

func (f *fakeSessionClient) FetchJob(ctx context.Context, linkID string) (*dto.JobResponseDTO, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.job, nil
}

func testSession(client *fakeSessionClient, setup SetupConfig) (*Session, *freshStreamDevice) {
	device := &freshStreamDevice{}
	engineOpts := []EngineOption{WithTickInterval(time.Millisecond), WithCountdownTicks(1)}
	return NewSession(device, client, setup, engineOpts, nil), device
}

func loadedSession(t *testing.T, questions int) (*Session, *fakeSessionClient, *freshStreamDevice) {
	t.Helper()
	client := &fakeSessionClient{
		job: &dto.JobResponseDTO{ID: 7, Title: "Backend Engineer", Questions: testQuestions(questions)},
	}
	sess, device := testSession(client, SetupConfig{SkipDemo: true})
	if err := sess.Load(context.Background(), "link-1"); err != nil {
		t.Fatalf("load: %v", err)
	}
	return sess, client, device
}

func TestSessionLoadRejectsEmptyJob(t *testing.T) {
	client := &fakeSessionClient{job: &dto.JobResponseDTO{ID: 7}}
	sess, _ := testSession(client, DefaultSetupConfig())
	if err := sess.Load(context.Background(), "link-1"); !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("got %v, want ErrNoQuestions", err)
	}
}

func TestSessionLoadPropagatesFetchError(t *testing.T) {
	client := &fakeSessionClient{fetchErr: ErrJobLinkNotFound}
	sess, _ := testSession(client, DefaultSetupConfig())
	if err := sess.Load(context.Background(), "bad-link"); !errors.Is(err, ErrJobLinkNotFound) {
		t.Fatalf("got %v, want ErrJobLinkNotFound", err)
	}
}

func TestSessionDemoTakeIsDiscarded(t *testing.T) {
	client := &fakeSessionClient{
		job: &dto.JobResponseDTO{ID: 7, Questions: testQuestions(1)},
	}
	setup := DefaultSetupConfig()
	setup.DemoTimeLimit = 2
	sess, device := testSession(client, setup)
	if err := sess.Load(context.Background(), "link-1"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := sess.Begin("Ada", "ada@example.com"); err != nil {
		t.Fatalf("begin: %v", err)
	}

	take, err := sess.RunDemo(context.Background(), EngineEvents{})
	if err != nil {
		t.Fatalf("demo: %v", err)
	}
	if take == nil {
		t.Fatal("demo returned no take for playback")
	}
	// The hardware handle must not leak into the recording stage.
	if sess.engine.Acquired() {
		t.Error("device still acquired after the demo")
	}
	if err := sess.FinishSetup(); err != nil {
		t.Fatalf("finish setup: %v", err)
	}
	// The demo take never reaches an attempt tracker.
	if used := sess.Sequencer().Tracker(0).State().AttemptsUsed; used != 0 {
		t.Errorf("demo take counted as an attempt: used=%d", used)
	}
	if device.opens != 1 {
		t.Errorf("device opened %d times for the demo, want 1", device.opens)
	}
}

func TestSessionFullFlow(t *testing.T) {
	sess, client, device := loadedSession(t, 2)
	defer sess.Close()

	if err := sess.Begin("Ada", "ada@example.com"); err != nil {
		t.Fatalf("begin: %v", err)
	}

	// Question 1: single take.
	if _, err := sess.RecordTake(context.Background(), EngineEvents{}); err != nil {
		t.Fatalf("record q1: %v", err)
	}
	if err := sess.SelectTake(0); err != nil {
		t.Fatalf("select q1: %v", err)
	}
	if err := sess.ConfirmSelection(); err != nil {
		t.Fatalf("confirm q1: %v", err)
	}

	// Question 2: retake, discard the first, keep the second.
	if _, err := sess.RecordTake(context.Background(), EngineEvents{}); err != nil {
		t.Fatalf("record q2 take 1: %v", err)
	}
	if _, err := sess.RecordTake(context.Background(), EngineEvents{}); err != nil {
		t.Fatalf("record q2 take 2: %v", err)
	}
	if err := sess.DeleteTake(0); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := sess.SelectTake(0); err != nil {
		t.Fatalf("select q2: %v", err)
	}
	if err := sess.ConfirmSelection(); err != nil {
		t.Fatalf("confirm q2: %v", err)
	}

	if got := sess.Sequencer().State(); got != StateUploading {
		t.Fatalf("state = %v, want uploading", got)
	}
	// Confirming the last answer releases the hardware before the upload.
	if sess.engine.Acquired() {
		t.Error("device still acquired entering the upload stage")
	}

	if err := sess.Upload(context.Background()); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if got := sess.Sequencer().State(); got != StateComplete {
		t.Errorf("state = %v, want complete", got)
	}
	if len(client.submissions) != 2 || client.completions != 1 {
		t.Errorf("submissions=%d completions=%d, want 2/1", len(client.submissions), client.completions)
	}
	if client.submissions[0].CandidateName != "Ada" {
		t.Errorf("identity fields missing: %+v", client.submissions[0])
	}
	if device.opens != 1 {
		t.Errorf("device opened %d times during recording, want 1 (handle reused across takes)", device.opens)
	}
}

func TestSessionUploadFailureThenRetry(t *testing.T) {
	sess, client, _ := loadedSession(t, 2)
	defer sess.Close()
	client.failAt = 2

	if err := sess.Begin("Ada", "ada@example.com"); err != nil {
		t.Fatalf("begin: %v", err)
	}
	for q := 0; q < 2; q++ {
		if _, err := sess.RecordTake(context.Background(), EngineEvents{}); err != nil {
			t.Fatalf("record q%d: %v", q+1, err)
		}
		if err := sess.SelectTake(0); err != nil {
			t.Fatalf("select q%d: %v", q+1, err)
		}
		if err := sess.ConfirmSelection(); err != nil {
			t.Fatalf("confirm q%d: %v", q+1, err)
		}
	}

	err := sess.Upload(context.Background())
	var upErr *UploadError
	if !errors.As(err, &upErr) {
		t.Fatalf("got %T, want *UploadError", err)
	}
	if got := sess.Sequencer().State(); got != StateRecording {
		t.Fatalf("state after failure = %v, want recording for retry", got)
	}
	// Finalized takes survive the failure; nothing is re-recorded.
	if got := len(sess.Sequencer().Finalized()); got != 2 {
		t.Fatalf("finalized = %d after failure, want 2", got)
	}

	client.failAt = 0
	if err := sess.Upload(context.Background()); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if got := sess.Sequencer().State(); got != StateComplete {
		t.Errorf("state = %v, want complete", got)
	}
	if len(client.submissions) != 2 || client.completions != 1 {
		t.Errorf("submissions=%d completions=%d, want 2/1 (acked item not re-sent)", len(client.submissions), client.completions)
	}
}

func TestSessionRecordTakeEnforcesBudget(t *testing.T) {
	sess, _, _ := loadedSession(t, 1)
	defer sess.Close()
	if err := sess.Begin("Ada", "ada@example.com"); err != nil {
		t.Fatalf("begin: %v", err)
	}

	for i := 0; i < DefaultMaxAttempts; i++ {
		if _, err := sess.RecordTake(context.Background(), EngineEvents{}); err != nil {
			t.Fatalf("take %d: %v", i+1, err)
		}
	}
	if _, err := sess.RecordTake(context.Background(), EngineEvents{}); !errors.Is(err, ErrMaxAttempts) {
		t.Errorf("got %v, want ErrMaxAttempts", err)
	}
}
