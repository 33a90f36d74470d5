package inmem

import (
	"context"
	"fmt"
	"time"

	"github.com/dekarrin/brickgrammar/internal/util"
	"github.com/dekarrin/brickgrammar/server/dao"
	"github.com/google/uuid"
)

// NewGrammarsRepository creates an empty in-memory GrammarRepository.
func NewGrammarsRepository() *GrammarsRepository {
	return &GrammarsRepository{
		grammars:    make(map[uuid.UUID]dao.Grammar),
		byNameIndex: make(map[string]uuid.UUID),
	}
}

type GrammarsRepository struct {
	grammars    map[uuid.UUID]dao.Grammar
	byNameIndex map[string]uuid.UUID
}

func (r *GrammarsRepository) Close() error {
	return nil
}

func (r *GrammarsRepository) Create(ctx context.Context, g dao.Grammar) (dao.Grammar, error) {
	if _, ok := r.byNameIndex[g.Name]; ok {
		return dao.Grammar{}, dao.ErrConstraintViolation
	}

	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Grammar{}, fmt.Errorf("could not generate ID: %w", err)
	}

	now := time.Now()
	g.ID = newUUID
	g.Created = now
	g.Modified = now

	r.grammars[g.ID] = g
	r.byNameIndex[g.Name] = g.ID

	return g, nil
}

func (r *GrammarsRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.Grammar, error) {
	g, ok := r.grammars[id]
	if !ok {
		return dao.Grammar{}, dao.ErrNotFound
	}
	return g, nil
}

func (r *GrammarsRepository) GetByName(ctx context.Context, name string) (dao.Grammar, error) {
	id, ok := r.byNameIndex[name]
	if !ok {
		return dao.Grammar{}, dao.ErrNotFound
	}
	return r.grammars[id], nil
}

func (r *GrammarsRepository) GetAll(ctx context.Context) ([]dao.Grammar, error) {
	all := make([]dao.Grammar, 0, len(r.grammars))
	for k := range r.grammars {
		all = append(all, r.grammars[k])
	}

	all = util.SortBy(all, func(l, rr dao.Grammar) bool {
		return l.ID.String() < rr.ID.String()
	})

	return all, nil
}

func (r *GrammarsRepository) Update(ctx context.Context, id uuid.UUID, g dao.Grammar) (dao.Grammar, error) {
	existing, ok := r.grammars[id]
	if !ok {
		return dao.Grammar{}, dao.ErrNotFound
	}

	if g.Name != existing.Name {
		if _, ok := r.byNameIndex[g.Name]; ok {
			return dao.Grammar{}, dao.ErrConstraintViolation
		}
	}

	g.ID = id
	g.Created = existing.Created
	g.Modified = time.Now()

	r.grammars[id] = g
	if g.Name != existing.Name {
		delete(r.byNameIndex, existing.Name)
		r.byNameIndex[g.Name] = id
	}

	return g, nil
}

func (r *GrammarsRepository) Delete(ctx context.Context, id uuid.UUID) (dao.Grammar, error) {
	g, ok := r.grammars[id]
	if !ok {
		return dao.Grammar{}, dao.ErrNotFound
	}

	delete(r.grammars, id)
	delete(r.byNameIndex, g.Name)

	return g, nil
}
