// Package dao provides data access objects for use in the brickgrammar
// server.
package dao

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store holds all the repositories needed by the server.
type Store interface {
	Grammars() GrammarRepository
	Runs() RunRepository
	Close() error
}

// Grammar is a saved PCFG source text along with its metadata.
type Grammar struct {
	ID       uuid.UUID // PK, NOT NULL
	Name     string    // UNIQUE, NOT NULL
	Source   string    // NOT NULL
	Created  time.Time // NOT NULL
	Modified time.Time // NOT NULL
}

// GrammarRepository stores and retrieves Grammar resources.
type GrammarRepository interface {
	Create(ctx context.Context, g Grammar) (Grammar, error)
	GetByID(ctx context.Context, id uuid.UUID) (Grammar, error)
	GetByName(ctx context.Context, name string) (Grammar, error)
	GetAll(ctx context.Context) ([]Grammar, error)
	Update(ctx context.Context, id uuid.UUID, g Grammar) (Grammar, error)
	Delete(ctx context.Context, id uuid.UUID) (Grammar, error)
	Close() error
}

// Run is the recorded result of generating a sentence from a Grammar and
// interpreting it into placed elements.
type Run struct {
	ID             uuid.UUID // PK, NOT NULL
	GrammarID      uuid.UUID // FK (Many-to-One Grammar.ID), NOT NULL
	Seed           int64     // NOT NULL
	MaxSentenceLen int       // NOT NULL
	Sentence       []string  // NOT NULL, terminal lexemes of the generated sentence
	LDraw          string    // NOT NULL, the encoded model
	ElementCount   int       // NOT NULL
	VoxelCount     int       // NOT NULL
	Created        time.Time // NOT NULL
}

// RunRepository stores and retrieves Run resources.
type RunRepository interface {
	Create(ctx context.Context, r Run) (Run, error)
	GetByID(ctx context.Context, id uuid.UUID) (Run, error)
	GetAllByGrammar(ctx context.Context, grammarID uuid.UUID) ([]Run, error)
	GetAll(ctx context.Context) ([]Run, error)
	Delete(ctx context.Context, id uuid.UUID) (Run, error)
	Close() error
}
