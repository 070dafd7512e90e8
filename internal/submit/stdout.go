package submit

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
)

func init() {
	Register("stdout", "print each record as a JSON array on standard output", newStdoutSink)
}

// stdoutSink prints one JSON array per submission, ready to be posted as is.
type stdoutSink struct {
	mu sync.Mutex
	w  io.Writer
}

func newStdoutSink(opts Options) (Sink, error) {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}
	return &stdoutSink{w: w}, nil
}

func (s *stdoutSink) Submit(ctx context.Context, sub Submission) error {
	data, err := MarshalRecords([]Record{sub.Record})
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := fmt.Fprintf(s.w, "%s\n", data); err != nil {
		return fmt.Errorf("submit: writing record: %w", err)
	}
	return nil
}

func (s *stdoutSink) Close() error {
	return nil
}
