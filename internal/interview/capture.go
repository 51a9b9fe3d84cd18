package interview

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultCountdownTicks = 3

type captureState int

const (
	captureIdle captureState = iota
	captureCountdown
	captureRecording
)

// EngineEvents are advisory UI callbacks. The authoritative stop is the
// engine's own timer; callbacks merely mirror its progress. Any field may be
// nil.
type EngineEvents struct {
	OnCountdown   func(remaining int)
	OnRecordStart func()
	OnTick        func(remaining int)
}

// CaptureEngine owns the live camera/microphone handle and produces takes
// under candidate control. Every take is preceded by a fixed, non-skippable
// countdown and auto-stops when the question's time limit elapses. The handle
// stays acquired across takes within one question and must be released when
// the candidate leaves the flow.
type CaptureEngine struct {
	device    Device
	countdown int
	tick      time.Duration

	mu       sync.Mutex
	stream   MediaStream
	state    captureState
	stop     chan struct{}
	stopOnce *sync.Once
	released chan struct{}
}

type EngineOption func(*CaptureEngine)

// WithTickInterval overrides the one-second cadence of the countdown and the
// advisory time-left counter. Tests use millisecond ticks.
func WithTickInterval(d time.Duration) EngineOption {
	return func(e *CaptureEngine) { e.tick = d }
}

// WithCountdownTicks overrides the pre-roll length.
func WithCountdownTicks(n int) EngineOption {
	return func(e *CaptureEngine) { e.countdown = n }
}

func NewCaptureEngine(device Device, opts ...EngineOption) *CaptureEngine {
	e := &CaptureEngine{
		device:    device,
		countdown: defaultCountdownTicks,
		tick:      time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Acquire opens the camera/microphone stream. Exactly one flow may hold the
// handle at a time; release before handing control to another stage.
func (e *CaptureEngine) Acquire(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stream != nil {
		return ErrAlreadyAcquired
	}
	stream, err := e.device.Open(ctx)
	if err != nil {
		return &PermissionError{Err: err}
	}
	e.stream = stream
	e.released = make(chan struct{})
	log.Debug().Msg("capture device acquired")
	return nil
}

// Acquired reports whether a live handle is held.
func (e *CaptureEngine) Acquired() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stream != nil
}

// Record runs one take: countdown, then chunk accumulation until the time
// limit elapses, Stop is called, or the context ends. It blocks for the
// duration of the take and returns the finalized blob.
//
// timeLimit is in ticks (seconds at the default interval). A second Record
// while one is in flight is rejected; the countdown cannot be skipped.
func (e *CaptureEngine) Record(ctx context.Context, timeLimit int, ev EngineEvents) (*Take, error) {
	e.mu.Lock()
	if e.stream == nil {
		e.mu.Unlock()
		return nil, ErrNotAcquired
	}
	if e.state != captureIdle {
		e.mu.Unlock()
		return nil, ErrCaptureBusy
	}
	e.state = captureCountdown
	stop := make(chan struct{})
	e.stop = stop
	e.stopOnce = &sync.Once{}
	stream := e.stream
	released := e.released
	e.mu.Unlock()

	defer e.setState(captureIdle)

	// One ticker drives the countdown, the advisory counter, and the
	// authoritative auto-stop; the deferred Stop cancels them together on any
	// exit path.
	ticker := time.NewTicker(e.tick)
	defer ticker.Stop()

	for remaining := e.countdown; remaining > 0; remaining-- {
		if ev.OnCountdown != nil {
			ev.OnCountdown(remaining)
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-released:
			return nil, ErrReleased
		}
	}

	e.setState(captureRecording)
	if ev.OnRecordStart != nil {
		ev.OnRecordStart()
	}

	collected := make(chan []byte, 1)
	quit := make(chan struct{})
	go collectChunks(stream, quit, collected)

	elapsed := 0
	remaining := timeLimit
recordLoop:
	for {
		select {
		case <-ticker.C:
			remaining--
			elapsed++
			if ev.OnTick != nil {
				ev.OnTick(remaining)
			}
			if remaining <= 0 {
				break recordLoop
			}
		case <-stop:
			break recordLoop
		case <-ctx.Done():
			close(quit)
			return nil, ctx.Err()
		case <-released:
			close(quit)
			return nil, ErrReleased
		}
	}

	close(quit)
	data := <-collected

	return &Take{
		Data:       data,
		MimeType:   stream.MimeType(),
		Duration:   elapsed,
		RecordedAt: time.Now(),
	}, nil
}

// Stop finalizes the in-flight take early. It has no effect during the
// countdown or while idle; racing the auto-stop timer is safe, whichever
// fires first wins and the other is a no-op.
func (e *CaptureEngine) Stop() {
	e.mu.Lock()
	state, stop, once := e.state, e.stop, e.stopOnce
	e.mu.Unlock()

	if state != captureRecording || stop == nil {
		return
	}
	once.Do(func() { close(stop) })
}

// Release stops all session timers, aborts any in-flight take, and closes the
// hardware tracks. Safe to call repeatedly and from teardown paths.
func (e *CaptureEngine) Release() {
	e.mu.Lock()
	stream := e.stream
	released := e.released
	e.stream = nil
	e.released = nil
	e.state = captureIdle
	e.mu.Unlock()

	if released != nil {
		close(released)
	}
	if stream != nil {
		if err := stream.Close(); err != nil {
			log.Warn().Err(err).Msg("closing capture stream")
		}
		log.Debug().Msg("capture device released")
	}
}

func (e *CaptureEngine) setState(s captureState) {
	e.mu.Lock()
	e.state = s
	e.mu.Unlock()
}

// collectChunks accumulates stream output until quit is closed, then drains
// whatever is already buffered and reports the finalized blob.
func collectChunks(stream MediaStream, quit <-chan struct{}, out chan<- []byte) {
	var buf []byte
	for {
		select {
		case chunk, ok := <-stream.Chunks():
			if !ok {
				out <- buf
				return
			}
			buf = append(buf, chunk...)
		case <-quit:
			for {
				select {
				case chunk, ok := <-stream.Chunks():
					if !ok {
						out <- buf
						return
					}
					buf = append(buf, chunk...)
				default:
					out <- buf
					return
				}
			}
		}
	}
}
