package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Adhandevelop/taller-powerby/internal/models"
)

const (
	queryTimeout        = 3 * time.Second
	uniqueViolationCode = "23505"
)

// Nullable columns are coalesced so rows written by other tools still scan into strings.
const productColumns = `"IdProducto",
	COALESCE("NombreProducto", ''),
	COALESCE("Proveedor", ''),
	COALESCE("Categoria", ''),
	COALESCE("CantidadPorUnidad", ''),
	COALESCE("PrecioUnidad", ''),
	COALESCE("UnidadesEnExistencia", ''),
	COALESCE("UnidadesEnPedido", ''),
	COALESCE("NivelNuevoPedido", ''),
	COALESCE("Suspendido", '')`

type PostgresProductRepository struct {
	db *sql.DB

	selectAll  string
	selectByID string
	insert     string
	update     string
	delete     string
	count      string
}

// NewPostgresProductRepository binds the repository to the given pool and table.
func NewPostgresProductRepository(db *sql.DB, table string) *PostgresProductRepository {
	t := pgx.Identifier{table}.Sanitize()
	return &PostgresProductRepository{
		db:         db,
		selectAll:  fmt.Sprintf(`SELECT %s FROM %s ORDER BY "IdProducto"`, productColumns, t),
		selectByID: fmt.Sprintf(`SELECT %s FROM %s WHERE "IdProducto" = $1`, productColumns, t),
		insert: fmt.Sprintf(`INSERT INTO %s (
	"IdProducto", "NombreProducto", "Proveedor", "Categoria", "CantidadPorUnidad",
	"PrecioUnidad", "UnidadesEnExistencia", "UnidadesEnPedido", "NivelNuevoPedido", "Suspendido"
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING %s`, t, productColumns),
		update: fmt.Sprintf(`UPDATE %s SET
	"IdProducto" = $1,
	"NombreProducto" = $2,
	"Proveedor" = $3,
	"Categoria" = $4,
	"CantidadPorUnidad" = $5,
	"PrecioUnidad" = $6,
	"UnidadesEnExistencia" = $7,
	"UnidadesEnPedido" = $8,
	"NivelNuevoPedido" = $9,
	"Suspendido" = $10
WHERE "IdProducto" = $11
RETURNING %s`, t, productColumns),
		delete: fmt.Sprintf(`DELETE FROM %s WHERE "IdProducto" = $1 RETURNING %s`, t, productColumns),
		count:  fmt.Sprintf(`SELECT COUNT(*) FROM %s`, t),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.IdProducto,
		&p.NombreProducto,
		&p.Proveedor,
		&p.Categoria,
		&p.CantidadPorUnidad,
		&p.PrecioUnidad,
		&p.UnidadesEnExistencia,
		&p.UnidadesEnPedido,
		&p.NivelNuevoPedido,
		&p.Suspendido,
	)
	return p, err
}

func productArgs(p models.Product) []any {
	return []any{
		p.IdProducto,
		p.NombreProducto,
		p.Proveedor,
		p.Categoria,
		p.CantidadPorUnidad,
		p.PrecioUnidad,
		p.UnidadesEnExistencia,
		p.UnidadesEnPedido,
		p.NivelNuevoPedido,
		p.Suspendido,
	}
}

// writeError maps a unique violation to ErrDuplicatedValueUnique and keeps the
// driver message so callers can report it verbatim.
func writeError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return fmt.Errorf("%w: %s", ErrDuplicatedValueUnique, pgErr.Message)
	}
	return fmt.Errorf("failed to %s product: %w", op, err)
}

func (r *PostgresProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, r.selectAll)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (r *PostgresProductRepository) GetByID(ctx context.Context, id string) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, r.selectByID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to get product %q: %w", id, err)
	}
	return p, nil
}

func (r *PostgresProductRepository) Create(ctx context.Context, product models.Product) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, r.insert, productArgs(product)...))
	if err != nil {
		return models.Product{}, writeError("insert", err)
	}
	return p, nil
}

func (r *PostgresProductRepository) Update(ctx context.Context, id string, product models.Product) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	args := append(productArgs(product), id)
	p, err := scanProduct(r.db.QueryRowContext(ctx, r.update, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, writeError("update", err)
	}
	return p, nil
}

func (r *PostgresProductRepository) Delete(ctx context.Context, id string) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, r.delete, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to delete product %q: %w", id, err)
	}
	return p, nil
}

func (r *PostgresProductRepository) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var n int
	if err := r.db.QueryRowContext(ctx, r.count).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}

func (r *PostgresProductRepository) Ping(ctx context.Context) (time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var now time.Time
	if err := r.db.QueryRowContext(ctx, `SELECT NOW()`).Scan(&now); err != nil {
		return time.Time{}, fmt.Errorf("database unreachable: %w", err)
	}
	return now, nil
}
