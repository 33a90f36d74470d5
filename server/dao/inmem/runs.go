package inmem

import (
	"context"
	"fmt"
	"time"

	"github.com/dekarrin/brickgrammar/internal/util"
	"github.com/dekarrin/brickgrammar/server/dao"
	"github.com/google/uuid"
)

// NewRunsRepository creates an empty in-memory RunRepository.
func NewRunsRepository() *RunsRepository {
	return &RunsRepository{
		runs:            make(map[uuid.UUID]dao.Run),
		byGrammarIDIndex: make(map[uuid.UUID][]uuid.UUID),
	}
}

type RunsRepository struct {
	runs             map[uuid.UUID]dao.Run
	byGrammarIDIndex map[uuid.UUID][]uuid.UUID
}

func (r *RunsRepository) Close() error {
	return nil
}

func (r *RunsRepository) Create(ctx context.Context, run dao.Run) (dao.Run, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Run{}, fmt.Errorf("could not generate ID: %w", err)
	}

	run.ID = newUUID
	run.Created = time.Now()

	r.runs[run.ID] = run
	r.byGrammarIDIndex[run.GrammarID] = append(r.byGrammarIDIndex[run.GrammarID], run.ID)

	return run, nil
}

func (r *RunsRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.Run, error) {
	run, ok := r.runs[id]
	if !ok {
		return dao.Run{}, dao.ErrNotFound
	}
	return run, nil
}

func (r *RunsRepository) GetAllByGrammar(ctx context.Context, grammarID uuid.UUID) ([]dao.Run, error) {
	ids := r.byGrammarIDIndex[grammarID]
	all := make([]dao.Run, 0, len(ids))
	for _, id := range ids {
		all = append(all, r.runs[id])
	}

	all = util.SortBy(all, func(l, rr dao.Run) bool {
		return l.Created.Before(rr.Created)
	})

	return all, nil
}

func (r *RunsRepository) GetAll(ctx context.Context) ([]dao.Run, error) {
	all := make([]dao.Run, 0, len(r.runs))
	for k := range r.runs {
		all = append(all, r.runs[k])
	}

	all = util.SortBy(all, func(l, rr dao.Run) bool {
		return l.Created.Before(rr.Created)
	})

	return all, nil
}

func (r *RunsRepository) Delete(ctx context.Context, id uuid.UUID) (dao.Run, error) {
	run, ok := r.runs[id]
	if !ok {
		return dao.Run{}, dao.ErrNotFound
	}

	delete(r.runs, id)
	updated := util.SliceRemove(id, r.byGrammarIDIndex[run.GrammarID])
	if len(updated) < 1 {
		delete(r.byGrammarIDIndex, run.GrammarID)
	} else {
		r.byGrammarIDIndex[run.GrammarID] = updated
	}

	return run, nil
}
