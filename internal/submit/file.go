package submit

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
)

func init() {
	Register("file", "append records to a JSON solution file", newFileSink)
}

// fileSink keeps a JSON array file of records. Each submission rewrites the
// file through a temporary file and rename.
type fileSink struct {
	mu     sync.Mutex
	path   string
	logger *log.Logger
}

func newFileSink(opts Options) (Sink, error) {
	if opts.Path == "" {
		return nil, errors.New("submit: file sink needs a path")
	}
	return &fileSink{path: opts.Path, logger: opts.Logger}, nil
}

func (s *fileSink) Submit(ctx context.Context, sub Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := ReadRecords(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		records = nil
	}
	records = append(records, sub.Record)

	data, err := MarshalRecords(records)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("submit: creating %s: %w", dir, err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("submit: writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("submit: replacing %s: %w", s.path, err)
	}

	s.logger.Info("solution written", "path", s.path, "problem", sub.ProblemID, "seed", sub.Seed, "records", len(records))
	return nil
}

func (s *fileSink) Close() error {
	return nil
}
