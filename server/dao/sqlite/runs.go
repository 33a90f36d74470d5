package sqlite

import (
	"context"
	"database/sql"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/dekarrin/brickgrammar/server/dao"
	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
)

type RunsDB struct {
	db *sql.DB
}

func (repo *RunsDB) init() error {
	stmt := `CREATE TABLE IF NOT EXISTS runs (
		id TEXT NOT NULL PRIMARY KEY,
		grammar_id TEXT NOT NULL REFERENCES grammars(id) ON DELETE CASCADE,
		seed INTEGER NOT NULL,
		max_sentence_len INTEGER NOT NULL,
		sentence TEXT NOT NULL,
		ldraw TEXT NOT NULL,
		element_count INTEGER NOT NULL,
		voxel_count INTEGER NOT NULL,
		created INTEGER NOT NULL
	);`
	_, err := repo.db.Exec(stmt)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

// convertToDB_Sentence REZI-encodes the sentence's lexemes and base64-encodes
// the result for storage in a TEXT column.
func convertToDB_Sentence(sentence []string) string {
	encoded := rezi.EncBinary(sentence)
	return base64.StdEncoding.EncodeToString(encoded)
}

// convertFromDB_Sentence reverses convertToDB_Sentence.
func convertFromDB_Sentence(s string, target *[]string) error {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return fmt.Errorf("%w: %s", dao.ErrDecodingFailure, err.Error())
	}

	var sentence []string
	n, err := rezi.DecBinary(raw, &sentence)
	if err != nil {
		return fmt.Errorf("%w: REZI decode: %s", dao.ErrDecodingFailure, err.Error())
	}
	if n != len(raw) {
		return fmt.Errorf("%w: REZI decoded byte count mismatch; only consumed %d/%d bytes", dao.ErrDecodingFailure, n, len(raw))
	}

	*target = sentence
	return nil
}

func (repo *RunsDB) Create(ctx context.Context, r dao.Run) (dao.Run, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Run{}, fmt.Errorf("could not generate ID: %w", err)
	}

	_, err = repo.db.ExecContext(ctx,
		`INSERT INTO runs (id, grammar_id, seed, max_sentence_len, sentence, ldraw, element_count, voxel_count, created) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		convertToDB_UUID(newUUID),
		convertToDB_UUID(r.GrammarID),
		r.Seed,
		r.MaxSentenceLen,
		convertToDB_Sentence(r.Sentence),
		r.LDraw,
		r.ElementCount,
		r.VoxelCount,
		convertToDB_Time(time.Now()),
	)
	if err != nil {
		return dao.Run{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

func (repo *RunsDB) scanRow(row interface {
	Scan(dest ...interface{}) error
}) (dao.Run, error) {
	r := dao.Run{}
	var id, grammarID, sentence string
	var created int64

	err := row.Scan(&id, &grammarID, &r.Seed, &r.MaxSentenceLen, &sentence, &r.LDraw, &r.ElementCount, &r.VoxelCount, &created)
	if err != nil {
		return r, wrapDBError(err)
	}

	if err := convertFromDB_UUID(id, &r.ID); err != nil {
		return r, err
	}
	if err := convertFromDB_UUID(grammarID, &r.GrammarID); err != nil {
		return r, err
	}
	if err := convertFromDB_Sentence(sentence, &r.Sentence); err != nil {
		return r, err
	}
	if err := convertFromDB_Time(created, &r.Created); err != nil {
		return r, err
	}

	return r, nil
}

func (repo *RunsDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Run, error) {
	row := repo.db.QueryRowContext(ctx,
		`SELECT id, grammar_id, seed, max_sentence_len, sentence, ldraw, element_count, voxel_count, created FROM runs WHERE id = ?;`,
		convertToDB_UUID(id),
	)
	return repo.scanRow(row)
}

func (repo *RunsDB) GetAllByGrammar(ctx context.Context, grammarID uuid.UUID) ([]dao.Run, error) {
	rows, err := repo.db.QueryContext(ctx,
		`SELECT id, grammar_id, seed, max_sentence_len, sentence, ldraw, element_count, voxel_count, created FROM runs WHERE grammar_id = ? ORDER BY created;`,
		convertToDB_UUID(grammarID),
	)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()
	return repo.scanAll(rows)
}

func (repo *RunsDB) GetAll(ctx context.Context) ([]dao.Run, error) {
	rows, err := repo.db.QueryContext(ctx,
		`SELECT id, grammar_id, seed, max_sentence_len, sentence, ldraw, element_count, voxel_count, created FROM runs ORDER BY created;`,
	)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()
	return repo.scanAll(rows)
}

func (repo *RunsDB) scanAll(rows *sql.Rows) ([]dao.Run, error) {
	var all []dao.Run
	for rows.Next() {
		r, err := repo.scanRow(rows)
		if err != nil {
			return all, err
		}
		all = append(all, r)
	}
	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}
	return all, nil
}

func (repo *RunsDB) Delete(ctx context.Context, id uuid.UUID) (dao.Run, error) {
	curVal, err := repo.GetByID(ctx, id)
	if err != nil {
		return curVal, err
	}

	res, err := repo.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, convertToDB_UUID(id))
	if err != nil {
		return curVal, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return curVal, wrapDBError(err)
	}
	if rowsAff < 1 {
		return curVal, dao.ErrNotFound
	}

	return curVal, nil
}

func (repo *RunsDB) Close() error {
	return nil
}
