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

type benchmarkRepo struct {
	pool *pgxpool.Pool
}

// NewBenchmarkRepository creates a new BenchmarkRepository
func NewBenchmarkRepository(pool *pgxpool.Pool) ports.BenchmarkRepository {
	return &benchmarkRepo{pool: pool}
}

const benchmarkColumns = `
	id, created_at, modified_at, owner, fingerprint, name, description, docs_url,
	demo_dataset_tarball_url, demo_dataset_tarball_hash,
	data_preparation_mlcube, reference_model_mlcube, data_evaluator_mlcube,
	state, approval_status
`

func (r *benchmarkRepo) Create(ctx context.Context, b *domain.Benchmark) error {
	query := `
		INSERT INTO benchmarks
			(owner, fingerprint, name, description, docs_url,
			 demo_dataset_tarball_url, demo_dataset_tarball_hash,
			 data_preparation_mlcube, reference_model_mlcube, data_evaluator_mlcube,
			 state, approval_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, modified_at
	`

	err := r.pool.QueryRow(ctx, query,
		b.Owner, b.Fingerprint, b.Name, b.Description, b.DocsURL,
		b.DemoDatasetURL, b.DemoDatasetHash,
		b.DataPreparationCube, b.ReferenceModelCube, b.EvaluatorCube,
		b.State, b.ApprovalStatus,
	).Scan(&b.ID, &b.CreatedAt, &b.ModifiedAt)
	if err != nil {
		return fmt.Errorf("create benchmark: %w", err)
	}
	return nil
}

func (r *benchmarkRepo) GetByID(ctx context.Context, id int64) (*domain.Benchmark, error) {
	query := `SELECT ` + benchmarkColumns + ` FROM benchmarks WHERE id = $1`

	b, err := scanBenchmark(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get benchmark by id: %w", err)
	}
	return b, nil
}

func (r *benchmarkRepo) List(ctx context.Context, owner int64) ([]*domain.Benchmark, error) {
	query := `SELECT ` + benchmarkColumns + ` FROM benchmarks`
	args := []any{}
	if owner != 0 {
		query += ` WHERE owner = $1`
		args = append(args, owner)
	}
	query += ` ORDER BY id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list benchmarks: %w", err)
	}
	defer rows.Close()

	var benchmarks []*domain.Benchmark
	for rows.Next() {
		b, err := scanBenchmark(rows)
		if err != nil {
			return nil, fmt.Errorf("scan benchmark: %w", err)
		}
		benchmarks = append(benchmarks, b)
	}
	return benchmarks, rows.Err()
}

func (r *benchmarkRepo) ListModels(ctx context.Context, benchmarkID int64) ([]int64, error) {
	query := `
		SELECT model_mlcube FROM associations
		WHERE benchmark = $1 AND model_mlcube <> 0 AND approval_status = $2
		ORDER BY model_mlcube
	`

	rows, err := r.pool.Query(ctx, query, benchmarkID, domain.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("list benchmark models: %w", err)
	}
	defer rows.Close()

	var models []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan benchmark model: %w", err)
		}
		models = append(models, id)
	}
	return models, rows.Err()
}

func scanBenchmark(row pgx.Row) (*domain.Benchmark, error) {
	var b domain.Benchmark
	err := row.Scan(
		&b.ID, &b.CreatedAt, &b.ModifiedAt, &b.Owner, &b.Fingerprint,
		&b.Name, &b.Description, &b.DocsURL,
		&b.DemoDatasetURL, &b.DemoDatasetHash,
		&b.DataPreparationCube, &b.ReferenceModelCube, &b.EvaluatorCube,
		&b.State, &b.ApprovalStatus,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
