package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dekarrin/brickgrammar/server/dao"
	"github.com/google/uuid"
)

type GrammarsDB struct {
	db *sql.DB
}

func (repo *GrammarsDB) init() error {
	stmt := `CREATE TABLE IF NOT EXISTS grammars (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		source TEXT NOT NULL,
		created INTEGER NOT NULL,
		modified INTEGER NOT NULL
	);`
	_, err := repo.db.Exec(stmt)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (repo *GrammarsDB) Create(ctx context.Context, g dao.Grammar) (dao.Grammar, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Grammar{}, fmt.Errorf("could not generate ID: %w", err)
	}

	now := time.Now()

	_, err = repo.db.ExecContext(ctx,
		`INSERT INTO grammars (id, name, source, created, modified) VALUES (?, ?, ?, ?, ?)`,
		convertToDB_UUID(newUUID),
		g.Name,
		g.Source,
		convertToDB_Time(now),
		convertToDB_Time(now),
	)
	if err != nil {
		return dao.Grammar{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

func (repo *GrammarsDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Grammar, error) {
	g := dao.Grammar{ID: id}
	var created, modified int64

	row := repo.db.QueryRowContext(ctx, `SELECT name, source, created, modified FROM grammars WHERE id = ?;`, convertToDB_UUID(id))
	if err := row.Scan(&g.Name, &g.Source, &created, &modified); err != nil {
		return g, wrapDBError(err)
	}

	if err := convertFromDB_Time(created, &g.Created); err != nil {
		return g, err
	}
	if err := convertFromDB_Time(modified, &g.Modified); err != nil {
		return g, err
	}

	return g, nil
}

func (repo *GrammarsDB) GetByName(ctx context.Context, name string) (dao.Grammar, error) {
	var id string
	var created, modified int64
	g := dao.Grammar{Name: name}

	row := repo.db.QueryRowContext(ctx, `SELECT id, source, created, modified FROM grammars WHERE name = ?;`, name)
	if err := row.Scan(&id, &g.Source, &created, &modified); err != nil {
		return g, wrapDBError(err)
	}

	if err := convertFromDB_UUID(id, &g.ID); err != nil {
		return g, err
	}
	if err := convertFromDB_Time(created, &g.Created); err != nil {
		return g, err
	}
	if err := convertFromDB_Time(modified, &g.Modified); err != nil {
		return g, err
	}

	return g, nil
}

func (repo *GrammarsDB) GetAll(ctx context.Context) ([]dao.Grammar, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, name, source, created, modified FROM grammars ORDER BY id;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.Grammar
	for rows.Next() {
		var g dao.Grammar
		var id string
		var created, modified int64

		if err := rows.Scan(&id, &g.Name, &g.Source, &created, &modified); err != nil {
			return nil, wrapDBError(err)
		}
		if err := convertFromDB_UUID(id, &g.ID); err != nil {
			return all, err
		}
		if err := convertFromDB_Time(created, &g.Created); err != nil {
			return all, err
		}
		if err := convertFromDB_Time(modified, &g.Modified); err != nil {
			return all, err
		}

		all = append(all, g)
	}

	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}

func (repo *GrammarsDB) Update(ctx context.Context, id uuid.UUID, g dao.Grammar) (dao.Grammar, error) {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE grammars SET name=?, source=?, modified=? WHERE id=?;`,
		g.Name,
		g.Source,
		convertToDB_Time(time.Now()),
		convertToDB_UUID(id),
	)
	if err != nil {
		return dao.Grammar{}, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return dao.Grammar{}, wrapDBError(err)
	}
	if rowsAff < 1 {
		return dao.Grammar{}, dao.ErrNotFound
	}

	return repo.GetByID(ctx, id)
}

func (repo *GrammarsDB) Delete(ctx context.Context, id uuid.UUID) (dao.Grammar, error) {
	curVal, err := repo.GetByID(ctx, id)
	if err != nil {
		return curVal, err
	}

	res, err := repo.db.ExecContext(ctx, `DELETE FROM grammars WHERE id = ?`, convertToDB_UUID(id))
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

func (repo *GrammarsDB) Close() error {
	return nil
}
