// Package inmem provides an in-memory implementation of dao.Store, suitable
// for local development and testing where persistence across restarts is
// not required.
package inmem

import "github.com/dekarrin/brickgrammar/server/dao"

// NewDatastore creates a new in-memory dao.Store with empty repositories.
func NewDatastore() dao.Store {
	return &store{
		grammars: NewGrammarsRepository(),
		runs:     NewRunsRepository(),
	}
}

type store struct {
	grammars *GrammarsRepository
	runs     *RunsRepository
}

func (s *store) Grammars() dao.GrammarRepository {
	return s.grammars
}

func (s *store) Runs() dao.RunRepository {
	return s.runs
}

func (s *store) Close() error {
	return nil
}
