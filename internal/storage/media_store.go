package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// MediaStore persists uploaded media artifacts and hands back the relative URL
// they are served under.
type MediaStore interface {
	Save(data []byte, candidateID, questionID uint) (url string, err error)
	// Remove deletes the artifact behind a previously returned URL. Used when
	// a retried submission replaces an earlier artifact.
	Remove(url string) error
}

const videoSubdir = "uploads/videos"

// localMediaStore writes artifacts under <root>/uploads/videos. Names embed a
// millisecond timestamp plus the candidate and question ids, so a resubmission
// never collides with the artifact it replaces.
type localMediaStore struct {
	root string
	now  func() time.Time
}

func NewLocalMediaStore(root string) (MediaStore, error) {
	dir := filepath.Join(root, videoSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating media directory %s: %w", dir, err)
	}
	return &localMediaStore{root: root, now: time.Now}, nil
}

func (s *localMediaStore) Save(data []byte, candidateID, questionID uint) (string, error) {
	filename := fmt.Sprintf("%d-%d-%d.webm", s.now().UnixMilli(), candidateID, questionID)
	path := filepath.Join(s.root, videoSubdir, filename)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to write media artifact")
		return "", fmt.Errorf("writing media artifact: %w", err)
	}
	return "/" + videoSubdir + "/" + filename, nil
}

func (s *localMediaStore) Remove(url string) error {
	name := filepath.Base(url)
	if name == "." || name == "/" {
		return fmt.Errorf("invalid artifact url %q", url)
	}
	path := filepath.Join(s.root, videoSubdir, name)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing media artifact: %w", err)
	}
	return nil
}
