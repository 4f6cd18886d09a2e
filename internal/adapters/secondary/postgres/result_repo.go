package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"benchreg/internal/core/domain"
	ports "benchreg/internal/core/ports/output"
)

type resultRepo struct {
	pool *pgxpool.Pool
}

// NewResultRepository creates a new ResultRepository
func NewResultRepository(pool *pgxpool.Pool) ports.ResultRepository {
	return &resultRepo{pool: pool}
}

const resultColumns = `
	id, created_at, modified_at, owner, fingerprint, name,
	benchmark, dataset, model, results, metadata, approval_status
`

func (r *resultRepo) Create(ctx context.Context, res *domain.Result) error {
	query := `
		INSERT INTO results
			(owner, fingerprint, name, benchmark, dataset, model,
			 results, metadata, approval_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, modified_at
	`

	err := r.pool.QueryRow(ctx, query,
		res.Owner, res.Fingerprint, res.Name, res.Benchmark, res.Dataset, res.Model,
		res.Metrics, res.Metadata, res.ApprovalStatus,
	).Scan(&res.ID, &res.CreatedAt, &res.ModifiedAt)
	if err != nil {
		return fmt.Errorf("create result: %w", err)
	}
	return nil
}

func (r *resultRepo) GetByID(ctx context.Context, id int64) (*domain.Result, error) {
	query := `SELECT ` + resultColumns + ` FROM results WHERE id = $1`

	res, err := scanResult(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get result by id: %w", err)
	}
	return res, nil
}

func (r *resultRepo) List(ctx context.Context, owner int64) ([]*domain.Result, error) {
	query := `SELECT ` + resultColumns + ` FROM results`
	args := []any{}
	if owner != 0 {
		query += ` WHERE owner = $1`
		args = append(args, owner)
	}
	query += ` ORDER BY id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var results []*domain.Result
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

func scanResult(row pgx.Row) (*domain.Result, error) {
	var res domain.Result
	err := row.Scan(
		&res.ID, &res.CreatedAt, &res.ModifiedAt, &res.Owner, &res.Fingerprint,
		&res.Name, &res.Benchmark, &res.Dataset, &res.Model,
		&res.Metrics, &res.Metadata, &res.ApprovalStatus,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}
