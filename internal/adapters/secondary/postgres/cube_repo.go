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

type cubeRepo struct {
	pool *pgxpool.Pool
}

// NewCubeRepository creates a new CubeRepository
func NewCubeRepository(pool *pgxpool.Pool) ports.CubeRepository {
	return &cubeRepo{pool: pool}
}

const cubeColumns = `
	id, created_at, modified_at, owner, fingerprint, name,
	git_mlcube_url, mlcube_hash, git_parameters_url, parameters_hash,
	image_tarball_url, image_tarball_hash,
	additional_files_tarball_url, additional_files_tarball_hash,
	image, state
`

func (r *cubeRepo) Create(ctx context.Context, c *domain.Cube) error {
	query := `
		INSERT INTO mlcubes
			(owner, fingerprint, name,
			 git_mlcube_url, mlcube_hash, git_parameters_url, parameters_hash,
			 image_tarball_url, image_tarball_hash,
			 additional_files_tarball_url, additional_files_tarball_hash,
			 image, state)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, modified_at
	`

	err := r.pool.QueryRow(ctx, query,
		c.Owner, c.Fingerprint, c.Name,
		c.ManifestURL, c.ManifestHash, c.ParametersURL, c.ParametersHash,
		c.ImageTarballURL, c.ImageTarballHash,
		c.AdditionalFilesURL, c.AdditionalFilesHash,
		c.Image, c.State,
	).Scan(&c.ID, &c.CreatedAt, &c.ModifiedAt)
	if err != nil {
		return fmt.Errorf("create mlcube: %w", err)
	}
	return nil
}

func (r *cubeRepo) GetByID(ctx context.Context, id int64) (*domain.Cube, error) {
	query := `SELECT ` + cubeColumns + ` FROM mlcubes WHERE id = $1`

	c, err := scanCube(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get mlcube by id: %w", err)
	}
	return c, nil
}

func (r *cubeRepo) List(ctx context.Context, owner int64) ([]*domain.Cube, error) {
	query := `SELECT ` + cubeColumns + ` FROM mlcubes`
	args := []any{}
	if owner != 0 {
		query += ` WHERE owner = $1`
		args = append(args, owner)
	}
	query += ` ORDER BY id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list mlcubes: %w", err)
	}
	defer rows.Close()

	var cubes []*domain.Cube
	for rows.Next() {
		c, err := scanCube(rows)
		if err != nil {
			return nil, fmt.Errorf("scan mlcube: %w", err)
		}
		cubes = append(cubes, c)
	}
	return cubes, rows.Err()
}

func scanCube(row pgx.Row) (*domain.Cube, error) {
	var c domain.Cube
	err := row.Scan(
		&c.ID, &c.CreatedAt, &c.ModifiedAt, &c.Owner, &c.Fingerprint, &c.Name,
		&c.ManifestURL, &c.ManifestHash, &c.ParametersURL, &c.ParametersHash,
		&c.ImageTarballURL, &c.ImageTarballHash,
		&c.AdditionalFilesURL, &c.AdditionalFilesHash,
		&c.Image, &c.State,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
