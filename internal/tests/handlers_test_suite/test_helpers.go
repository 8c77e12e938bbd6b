package handlers_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"time"

	api "github.com/Adhandevelop/taller-powerby/internal/http"
	handler "github.com/Adhandevelop/taller-powerby/internal/http/handlers"
	"github.com/Adhandevelop/taller-powerby/internal/models"
	"github.com/Adhandevelop/taller-powerby/internal/repo"
)

var errDatabaseDown = errors.New("connection refused")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRouter(productRepo repo.ProductRepository) http.Handler {
	logger := discardLogger()
	return api.NewRouter(api.RouterConfig{
		Handler: handler.NewHandler(productRepo, logger),
		Logger:  logger,
	})
}

// setupRouter returns a router backed by a fresh in-memory repository.
func setupRouter() (http.Handler, *repo.InMemoryProductRepository) {
	productRepo := repo.NewInMemoryProductRepository()
	return newRouter(productRepo), productRepo
}

func widget() models.Product {
	return models.Product{
		IdProducto:           "P1",
		NombreProducto:       "Widget",
		Proveedor:            "Acme",
		Categoria:            "Tools",
		CantidadPorUnidad:    "1 box",
		PrecioUnidad:         "9.99",
		UnidadesEnExistencia: "10",
		UnidadesEnPedido:     "0",
		NivelNuevoPedido:     "5",
		Suspendido:           models.SuspendidoFalse,
	}
}

// formPayload mirrors what the browser client sends: camelCase keys.
func formPayload(p models.Product) map[string]string {
	return map[string]string{
		"idProducto":           p.IdProducto,
		"nombreProducto":       p.NombreProducto,
		"proveedor":            p.Proveedor,
		"categoria":            p.Categoria,
		"cantidadPorUnidad":    p.CantidadPorUnidad,
		"precioUnidad":         p.PrecioUnidad,
		"unidadesEnExistencia": p.UnidadesEnExistencia,
		"unidadesEnPedido":     p.UnidadesEnPedido,
		"nivelNuevoPedido":     p.NivelNuevoPedido,
		"suspendido":           p.Suspendido,
	}
}

func doJSON(r http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	return doRaw(r, method, path, body)
}

func doRaw(r http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func saveProduct(r http.Handler, p models.Product) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/api/save-data", formPayload(p))
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}

// failingRepo reports errDatabaseDown from every call.
type failingRepo struct{}

func (failingRepo) GetAll(context.Context) ([]models.Product, error) {
	return nil, errDatabaseDown
}

func (failingRepo) GetByID(context.Context, string) (models.Product, error) {
	return models.Product{}, errDatabaseDown
}

func (failingRepo) Create(context.Context, models.Product) (models.Product, error) {
	return models.Product{}, errDatabaseDown
}

func (failingRepo) Update(context.Context, string, models.Product) (models.Product, error) {
	return models.Product{}, errDatabaseDown
}

func (failingRepo) Delete(context.Context, string) (models.Product, error) {
	return models.Product{}, errDatabaseDown
}

func (failingRepo) Count(context.Context) (int, error) {
	return 0, errDatabaseDown
}

func (failingRepo) Ping(context.Context) (time.Time, error) {
	return time.Time{}, errDatabaseDown
}

func mustJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
