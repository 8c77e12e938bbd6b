package handlers_integrated_test_suite

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/Adhandevelop/taller-powerby/internal/config"
	"github.com/Adhandevelop/taller-powerby/internal/db"
	api "github.com/Adhandevelop/taller-powerby/internal/http"
	handler "github.com/Adhandevelop/taller-powerby/internal/http/handlers"
	"github.com/Adhandevelop/taller-powerby/internal/repo"
)

// setupRouter wires the router to a throwaway table in the database named by
// DATABASE_URL. Tests are skipped when it is not set.
func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integrated handler tests")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, config.DatabaseConfig{URL: dbURL, SSLMode: os.Getenv("PGSSLMODE")})
	if err != nil {
		t.Fatalf("could not connect to database: %v", err)
	}

	table := fmt.Sprintf("productos_it_%d", time.Now().UnixNano())
	if _, err := db.Migrate(ctx, database, table); err != nil {
		t.Fatalf("migration failed: %v", err)
	}
	t.Cleanup(func() {
		dropTable(database, table)
		database.Close()
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	productRepo := repo.NewPostgresProductRepository(database, table)
	return api.NewRouter(api.RouterConfig{
		Handler: handler.NewHandler(productRepo, logger),
		Logger:  logger,
	})
}

func dropTable(database *sql.DB, table string) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if _, err := database.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %q`, table)); err != nil {
		fmt.Println(fmt.Errorf("failed to drop table %s: %w", table, err))
	}
}

func do(r http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	var body io.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
