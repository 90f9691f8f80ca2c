package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sibiraj15/url-shortener/internal/config"
	"github.com/Sibiraj15/url-shortener/internal/domain"
)

var (
	ErrNotFound      = errors.New("link not found")
	ErrDuplicateCode = errors.New("code already exists")
)

const uniqueViolationCode = "23505"

const schema = `
CREATE TABLE IF NOT EXISTS links (
	code         TEXT PRIMARY KEY,
	target_url   TEXT NOT NULL,
	clicks       BIGINT NOT NULL DEFAULT 0,
	last_clicked TIMESTAMPTZ,
	created_at   TIMESTAMPTZ NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_links_created_at ON links (created_at DESC);

CREATE TABLE IF NOT EXISTS http_metrics (
	time        TIMESTAMPTZ NOT NULL,
	method      TEXT NOT NULL,
	path        TEXT NOT NULL,
	status_code INT NOT NULL,
	duration_ms DOUBLE PRECISION NOT NULL,
	client_ip   TEXT NOT NULL,
	error       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS infra_metrics (
	time          TIMESTAMPTZ NOT NULL,
	pool_acquired INT NOT NULL,
	pool_idle     INT NOT NULL,
	pool_total    INT NOT NULL,
	pool_max      INT NOT NULL,
	goroutines    INT NOT NULL,
	heap_alloc_mb DOUBLE PRECISION NOT NULL
);
`

// LinkRepository is the durable store for Link records. The unique key on
// code is the authoritative guard against concurrent allocations racing on
// the same code.
type LinkRepository struct {
	pool *pgxpool.Pool
}

func NewLinkRepository(ctx context.Context, cfg *config.DatabaseConfig) (*LinkRepository, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=%d",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode, cfg.MaxConns,
	)

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	repo := &LinkRepository{pool: pool}
	if err := repo.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return repo, nil
}

// NewLinkRepositoryFromPool wraps an existing pool without running
// migrations. Used by tests that manage their own database lifecycle.
func NewLinkRepositoryFromPool(pool *pgxpool.Pool) *LinkRepository {
	return &LinkRepository{pool: pool}
}

func (r *LinkRepository) migrate(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, schema)
	return err
}

// Migrate creates the schema. Exported for test setups.
func (r *LinkRepository) Migrate(ctx context.Context) error {
	return r.migrate(ctx)
}

func (r *LinkRepository) Pool() *pgxpool.Pool {
	return r.pool
}

func (r *LinkRepository) Close() {
	r.pool.Close()
}

func (r *LinkRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

const linkColumns = "code, target_url, clicks, last_clicked, created_at, updated_at"

func scanLink(row pgx.Row) (*domain.Link, error) {
	var l domain.Link
	err := row.Scan(&l.Code, &l.TargetURL, &l.Clicks, &l.LastClicked, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *LinkRepository) FindByCode(ctx context.Context, code string) (*domain.Link, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+linkColumns+" FROM links WHERE code = $1", code)
	return scanLink(row)
}

// Insert persists a new Link. A concurrent insert of the same code loses to
// the primary key and surfaces as ErrDuplicateCode.
func (r *LinkRepository) Insert(ctx context.Context, link *domain.Link) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO links (code, target_url, clicks, last_clicked, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		link.Code, link.TargetURL, link.Clicks, link.LastClicked, link.CreatedAt, link.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return ErrDuplicateCode
		}
		return err
	}
	return nil
}

func (r *LinkRepository) DeleteByCode(ctx context.Context, code string) (*domain.Link, error) {
	row := r.pool.QueryRow(ctx,
		"DELETE FROM links WHERE code = $1 RETURNING "+linkColumns, code)
	return scanLink(row)
}

func (r *LinkRepository) ListAll(ctx context.Context) ([]domain.Link, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+linkColumns+" FROM links ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := []domain.Link{}
	for rows.Next() {
		var l domain.Link
		if err := rows.Scan(&l.Code, &l.TargetURL, &l.Clicks, &l.LastClicked, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

// IncrementClicks bumps the click counter and touches last_clicked and
// updated_at in a single statement, so concurrent redirects on the same code
// never lose an increment.
func (r *LinkRepository) IncrementClicks(ctx context.Context, code string) (*domain.Link, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE links
		 SET clicks = clicks + 1, last_clicked = now(), updated_at = now()
		 WHERE code = $1
		 RETURNING `+linkColumns, code)
	return scanLink(row)
}
