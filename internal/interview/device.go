package interview

import (
	"context"
	"time"
)

// Device grants access to the host's camera and microphone pair. Opening may
// fail with a permission denial or because the hardware is unavailable; both
// are terminal for the candidate session.
type Device interface {
	Open(ctx context.Context) (MediaStream, error)
}

// MediaStream is one live hardware handle. Chunks delivers encoded media as it
// is produced; the channel is closed when the stream ends. Close stops the
// underlying tracks and frees the device for the next acquirer.
type MediaStream interface {
	Chunks() <-chan []byte
	MimeType() string
	Close() error
}

// Take is one discrete recorded clip for a single question. Takes live only in
// memory: they are discarded on deletion or once the selected take has been
// uploaded.
type Take struct {
	Data       []byte
	MimeType   string
	Duration   int // seconds actually recorded
	RecordedAt time.Time
}
