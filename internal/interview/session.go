package interview

import (
	"context"
	"fmt"

	"hireview/internal/dto"

	"github.com/rs/zerolog/log"
)

// SetupConfig is the explicit configuration for the optional camera-setup
// step. It travels with the session rather than through any ambient channel,
// so every consumer sees the same typed values.
type SetupConfig struct {
	SkipDemo      bool
	DemoScript    string
	DemoTimeLimit int // seconds
}

// DefaultSetupConfig mirrors the stock setup step: a 30-second optional demo
// take the candidate can replay and discard.
func DefaultSetupConfig() SetupConfig {
	return SetupConfig{
		DemoScript:    "Hello, this is a demo test and I am ready for the interview.",
		DemoTimeLimit: 30,
	}
}

// JobFetcher resolves a share link. *Client satisfies it.
type JobFetcher interface {
	FetchJob(ctx context.Context, linkID string) (*dto.JobResponseDTO, error)
}

// Session wires the capture engine, sequencer, and uploader into one candidate
// flow. The camera/microphone handle is exclusively owned: it is released
// before every stage handoff and on Close, never shared between the demo
// preview and the live recording UI.
type Session struct {
	engine   *CaptureEngine
	uploader *Uploader
	fetcher  JobFetcher
	setup    SetupConfig

	seq *Sequencer
	job *dto.JobResponseDTO

	seqOpts []SequencerOption
}

// SessionClient is everything the session needs from the network layer.
type SessionClient interface {
	JobFetcher
	Submitter
}

func NewSession(device Device, client SessionClient, setup SetupConfig, engineOpts []EngineOption, uploaderOpts []UploaderOption, seqOpts ...SequencerOption) *Session {
	return &Session{
		engine:   NewCaptureEngine(device, engineOpts...),
		uploader: NewUploader(client, uploaderOpts...),
		fetcher:  client,
		setup:    setup,
		seqOpts:  seqOpts,
	}
}

// Load fetches the interview definition and builds the question sequencer.
func (s *Session) Load(ctx context.Context, linkID string) error {
	job, err := s.fetcher.FetchJob(ctx, linkID)
	if err != nil {
		return err
	}
	if len(job.Questions) == 0 {
		return fmt.Errorf("job %d: %w", job.ID, ErrNoQuestions)
	}
	s.job = job
	opts := append([]SequencerOption{WithSetupStep(!s.setup.SkipDemo)}, s.seqOpts...)
	s.seq = NewSequencer(job.Questions, opts...)
	log.Info().Uint("jobID", job.ID).Int("questions", len(job.Questions)).Msg("interview loaded")
	return nil
}

// Sequencer exposes the flow state machine. Nil until Load succeeds.
func (s *Session) Sequencer() *Sequencer { return s.seq }

// Job returns the loaded interview definition.
func (s *Session) Job() *dto.JobResponseDTO { return s.job }

// Begin passes the identity gate.
func (s *Session) Begin(name, email string) error {
	return s.seq.Begin(name, email)
}

// RunDemo records the optional practice take during setup. The take is
// returned for playback and never uploaded; the hardware is released before
// the method returns so the recording stage starts from a clean handoff.
func (s *Session) RunDemo(ctx context.Context, ev EngineEvents) (*Take, error) {
	if s.seq.State() != StateSetup {
		return nil, ErrInvalidTransition
	}
	if s.setup.SkipDemo {
		return nil, nil
	}
	if err := s.engine.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.engine.Release()

	take, err := s.engine.Record(ctx, s.setup.DemoTimeLimit, ev)
	if err != nil {
		return nil, err
	}
	return take, nil
}

// FinishSetup releases any demo handle and moves to the recording stage.
func (s *Session) FinishSetup() error {
	s.engine.Release()
	return s.seq.FinishSetup()
}

// StopTake finalizes the in-flight take early, same as the candidate pressing
// stop.
func (s *Session) StopTake() { s.engine.Stop() }

// RecordTake records one take for the question currently in view and adds it
// to that question's attempt tracker. The device is acquired on first use and
// stays acquired across takes within the recording stage.
func (s *Session) RecordTake(ctx context.Context, ev EngineEvents) (*Take, error) {
	if s.seq.State() != StateRecording {
		return nil, ErrInvalidTransition
	}
	question, idx := s.seq.CurrentQuestion()
	tracker := s.seq.Tracker(idx)
	if !tracker.CanRecord() {
		return nil, ErrMaxAttempts
	}

	if !s.engine.Acquired() {
		if err := s.engine.Acquire(ctx); err != nil {
			return nil, err
		}
	}

	take, err := s.engine.Record(ctx, question.TimeLimit, ev)
	if err != nil {
		return nil, err
	}
	if err := tracker.AddTake(take); err != nil {
		return nil, err
	}
	return take, nil
}

// SelectTake marks a take of the current question as the candidate's answer.
func (s *Session) SelectTake(index int) error {
	return s.seq.CurrentTracker().Select(index)
}

// DeleteTake discards a take of the current question, freeing a retake slot.
func (s *Session) DeleteTake(index int) error {
	return s.seq.CurrentTracker().Delete(index)
}

// ConfirmSelection locks in the current question's answer and advances. After
// the last question the hardware is released before the upload stage begins.
func (s *Session) ConfirmSelection() error {
	if err := s.seq.ConfirmSelection(); err != nil {
		return err
	}
	if s.seq.State() == StateUploading {
		s.engine.Release()
	}
	return nil
}

// Upload drives the sequential submission of every finalized take and the
// completion handshake. On failure the sequencer returns to a retry-capable
// state with all finalized takes intact; calling Upload again resumes from the
// first unacknowledged item.
func (s *Session) Upload(ctx context.Context) error {
	if s.seq.State() == StateRecording && s.seq.QuestionCount() > 0 {
		// Retry path: all questions were already confirmed once.
		if len(s.seq.Finalized()) != s.seq.QuestionCount() {
			return ErrInvalidTransition
		}
		// Re-enter uploading by replaying the last confirmation.
		if err := s.reenterUploading(); err != nil {
			return err
		}
	}
	if s.seq.State() != StateUploading {
		return ErrInvalidTransition
	}

	name, email := s.seq.Candidate()
	err := s.uploader.Upload(ctx, s.job.ID, name, email, s.seq.Finalized())
	if err != nil {
		if stateErr := s.seq.MarkUploadFailed(); stateErr != nil {
			log.Warn().Err(stateErr).Msg("could not return sequencer to retry state")
		}
		return err
	}
	return s.seq.MarkUploadComplete()
}

func (s *Session) reenterUploading() error {
	// The sequencer only re-enters Uploading through a confirmed frontier
	// selection; after a failed upload every slot is still finalized, so
	// confirming the last question again is a no-op on the data.
	last := s.seq.QuestionCount() - 1
	if err := s.seq.Navigate(last); err != nil {
		return err
	}
	return s.seq.ConfirmSelection()
}

// Close releases the hardware handle. Safe on every exit path, including
// navigation away mid-take.
func (s *Session) Close() {
	s.engine.Release()
}
