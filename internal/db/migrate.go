package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

const tableExistsQuery = `SELECT EXISTS (
	SELECT FROM information_schema.tables
	WHERE table_schema = current_schema() AND table_name = $1
)`

const createTableTemplate = `CREATE TABLE IF NOT EXISTS %s (
	"IdProducto" VARCHAR(255) PRIMARY KEY,
	"NombreProducto" VARCHAR(255),
	"Proveedor" VARCHAR(255),
	"Categoria" VARCHAR(255),
	"CantidadPorUnidad" VARCHAR(255),
	"PrecioUnidad" VARCHAR(255),
	"UnidadesEnExistencia" VARCHAR(255),
	"UnidadesEnPedido" VARCHAR(255),
	"NivelNuevoPedido" VARCHAR(255),
	"Suspendido" VARCHAR(255)
)`

// TableExists looks the table up in the catalog of the current schema.
func TableExists(ctx context.Context, db *sql.DB, table string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var exists bool
	if err := db.QueryRowContext(ctx, tableExistsQuery, table).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check table %q: %w", table, err)
	}
	return exists, nil
}

// Migrate creates the product table when it is missing. It reports whether
// the table had to be created. Safe to run on every start.
func Migrate(ctx context.Context, db *sql.DB, table string) (bool, error) {
	exists, err := TableExists(ctx, db, table)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	ddl := fmt.Sprintf(createTableTemplate, pgx.Identifier{table}.Sanitize())
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return false, fmt.Errorf("failed to create table %q: %w", table, err)
	}
	return true, nil
}
