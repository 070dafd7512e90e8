package submit

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"github.com/nya3jp/icfpc2015/internal/storage"
)

func init() {
	Register("sqlite", "store solutions and scores in the local database", newSQLiteSink)
}

type sqliteSink struct {
	store  *storage.Store
	logger *log.Logger
}

func newSQLiteSink(opts Options) (Sink, error) {
	if opts.Store == nil {
		return nil, errors.New("submit: sqlite sink needs an open store")
	}
	return &sqliteSink{store: opts.Store, logger: opts.Logger}, nil
}

func (s *sqliteSink) Submit(ctx context.Context, sub Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id, err := s.store.SaveSolution(storage.SolutionEntry{
		ProblemID:  sub.ProblemID,
		Seed:       sub.Seed,
		Tag:        sub.Tag,
		Solution:   sub.Solution,
		Score:      sub.Score,
		PowerScore: sub.PowerScore,
		Reason:     sub.Reason,
	})
	if err != nil {
		return err
	}
	s.logger.Info("solution stored", "id", id, "problem", sub.ProblemID, "seed", sub.Seed, "score", sub.Score)
	return nil
}

// Close leaves the store open; its owner closes it.
func (s *sqliteSink) Close() error {
	return nil
}
