package submit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

func init() {
	Register("http", "POST records to the contest submission endpoint", newHTTPSink)
}

// httpSink posts each submission as a one-element JSON array, authenticated
// with HTTP basic auth using an empty user name and the API token.
type httpSink struct {
	url    string
	token  string
	client *http.Client
	logger *log.Logger
}

func newHTTPSink(opts Options) (Sink, error) {
	if opts.URL == "" {
		return nil, errors.New("submit: http sink needs a url")
	}
	if opts.APIToken == "" {
		return nil, errors.New("submit: http sink needs an api token")
	}
	url := opts.URL
	if strings.Contains(url, "%d") {
		url = fmt.Sprintf(url, opts.TeamID)
	}
	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &httpSink{url: url, token: opts.APIToken, client: client, logger: opts.Logger}, nil
}

func (s *httpSink) Submit(ctx context.Context, sub Submission) error {
	data, err := MarshalRecords([]Record{sub.Record})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("submit: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth("", s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("submit: posting to %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if readErr != nil {
			return fmt.Errorf("submit: %s returned %s, reading body: %w", s.url, resp.Status, readErr)
		}
		return fmt.Errorf("submit: %s returned %s: %s", s.url, resp.Status, strings.TrimSpace(string(body)))
	}
	if readErr != nil {
		s.logger.Warn("reading response body", "url", s.url, "err", readErr)
	}

	s.logger.Info("solution submitted", "problem", sub.ProblemID, "seed", sub.Seed, "tag", sub.Tag, "status", resp.StatusCode)
	return nil
}

func (s *httpSink) Close() error {
	s.client.CloseIdleConnections()
	return nil
}
