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

type datasetRepo struct {
	pool *pgxpool.Pool
}

// NewDatasetRepository creates a new DatasetRepository
func NewDatasetRepository(pool *pgxpool.Pool) ports.DatasetRepository {
	return &datasetRepo{pool: pool}
}

const datasetColumns = `
	id, created_at, modified_at, owner, fingerprint, name, description, location,
	data_preparation_mlcube, input_data_hash, split_seed,
	generated_metadata, user_metadata, state, is_valid
`

func (r *datasetRepo) Create(ctx context.Context, d *domain.Dataset) error {
	query := `
		INSERT INTO datasets
			(owner, fingerprint, name, description, location,
			 data_preparation_mlcube, input_data_hash, split_seed,
			 generated_metadata, user_metadata, state, is_valid)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, modified_at
	`

	err := r.pool.QueryRow(ctx, query,
		d.Owner, d.Fingerprint, d.Name, d.Description, d.Location,
		d.DataPreparationCube, d.InputDataHash, d.SplitSeed,
		d.GeneratedMetadata, d.UserMetadata, d.State, d.IsValid,
	).Scan(&d.ID, &d.CreatedAt, &d.ModifiedAt)
	if err != nil {
		return fmt.Errorf("create dataset: %w", err)
	}
	return nil
}

func (r *datasetRepo) GetByID(ctx context.Context, id int64) (*domain.Dataset, error) {
	query := `SELECT ` + datasetColumns + ` FROM datasets WHERE id = $1`

	d, err := scanDataset(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get dataset by id: %w", err)
	}
	return d, nil
}

func (r *datasetRepo) List(ctx context.Context, owner int64) ([]*domain.Dataset, error) {
	query := `SELECT ` + datasetColumns + ` FROM datasets`
	args := []any{}
	if owner != 0 {
		query += ` WHERE owner = $1`
		args = append(args, owner)
	}
	query += ` ORDER BY id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	defer rows.Close()

	var datasets []*domain.Dataset
	for rows.Next() {
		d, err := scanDataset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan dataset: %w", err)
		}
		datasets = append(datasets, d)
	}
	return datasets, rows.Err()
}

func scanDataset(row pgx.Row) (*domain.Dataset, error) {
	var d domain.Dataset
	err := row.Scan(
		&d.ID, &d.CreatedAt, &d.ModifiedAt, &d.Owner, &d.Fingerprint,
		&d.Name, &d.Description, &d.Location,
		&d.DataPreparationCube, &d.InputDataHash, &d.SplitSeed,
		&d.GeneratedMetadata, &d.UserMetadata, &d.State, &d.IsValid,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
