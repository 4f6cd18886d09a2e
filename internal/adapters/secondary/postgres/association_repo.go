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

type associationRepo struct {
	pool *pgxpool.Pool
}

// NewAssociationRepository creates a new AssociationRepository
func NewAssociationRepository(pool *pgxpool.Pool) ports.AssociationRepository {
	return &associationRepo{pool: pool}
}

const associationColumns = `
	id, created_at, modified_at, benchmark, dataset, model_mlcube,
	approval_status, approved_at, initiated_by, benchmark_owner
`

func (r *associationRepo) Create(ctx context.Context, a *domain.Association) error {
	query := `
		INSERT INTO associations
			(benchmark, dataset, model_mlcube, approval_status,
			 initiated_by, benchmark_owner)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, modified_at
	`

	err := r.pool.QueryRow(ctx, query,
		a.Benchmark, a.Dataset, a.ModelCube, a.ApprovalStatus,
		a.Initiator, a.BenchmarkOwner,
	).Scan(&a.ID, &a.CreatedAt, &a.ModifiedAt)
	if err != nil {
		return fmt.Errorf("create association: %w", err)
	}
	a.RequestedAt = a.CreatedAt
	return nil
}

func (r *associationRepo) Get(ctx context.Context, benchmarkID, counterpartID int64, kind domain.Kind) (*domain.Association, error) {
	counterpart := "dataset"
	if kind == domain.KindCube {
		counterpart = "model_mlcube"
	}
	query := fmt.Sprintf(`
		SELECT %s FROM associations
		WHERE benchmark = $1 AND %s = $2
		ORDER BY created_at DESC
		LIMIT 1
	`, associationColumns, counterpart)

	a, err := scanAssociation(r.pool.QueryRow(ctx, query, benchmarkID, counterpartID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get association: %w", err)
	}
	return a, nil
}

func (r *associationRepo) ListByUser(ctx context.Context, userID int64, kind domain.Kind, benchmarkID int64) ([]*domain.Association, error) {
	counterpart := "dataset"
	if kind == domain.KindCube {
		counterpart = "model_mlcube"
	}

	query := fmt.Sprintf(`
		SELECT %s FROM associations
		WHERE %s <> 0 AND (initiated_by = $1 OR benchmark_owner = $1)
	`, associationColumns, counterpart)
	args := []any{userID}
	if benchmarkID != 0 {
		query += ` AND benchmark = $2`
		args = append(args, benchmarkID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list associations: %w", err)
	}
	defer rows.Close()

	var associations []*domain.Association
	for rows.Next() {
		a, err := scanAssociation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan association: %w", err)
		}
		associations = append(associations, a)
	}
	return associations, rows.Err()
}

func (r *associationRepo) UpdateStatus(ctx context.Context, a *domain.Association) error {
	query := `
		UPDATE associations
		SET approval_status = $1, approved_at = $2, modified_at = NOW()
		WHERE id = $3
	`

	result, err := r.pool.Exec(ctx, query, a.ApprovalStatus, a.DecidedAt, a.ID)
	if err != nil {
		return fmt.Errorf("update association status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanAssociation(row pgx.Row) (*domain.Association, error) {
	var a domain.Association
	err := row.Scan(
		&a.ID, &a.CreatedAt, &a.ModifiedAt, &a.Benchmark, &a.Dataset, &a.ModelCube,
		&a.ApprovalStatus, &a.DecidedAt, &a.Initiator, &a.BenchmarkOwner,
	)
	if err != nil {
		return nil, err
	}
	a.RequestedAt = a.CreatedAt
	return &a, nil
}
