package handlers_integrated_test_suite

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	handler "github.com/Adhandevelop/taller-powerby/internal/http/handlers"
	"github.com/Adhandevelop/taller-powerby/internal/models"
)

func TestProductLifecycle(t *testing.T) {
	r := setupRouter(t)

	if w := do(r, http.MethodGet, "/api/productos", nil); strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("expected empty list, got %d %s", w.Code, w.Body.String())
	}

	p := models.Product{
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

	if w := do(r, http.MethodPost, "/api/save-data", p); w.Code != http.StatusOK {
		t.Fatalf("create: expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}

	w := do(r, http.MethodPost, "/api/save-data", p)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("duplicate: expected 500, got %d", w.Code)
	}
	var errResp handler.ErrorResponse
	json.NewDecoder(w.Body).Decode(&errResp)
	if !strings.Contains(errResp.Error, "duplicate key") {
		t.Errorf("expected driver message, got %q", errResp.Error)
	}

	updated := p
	updated.NombreProducto = "Gadget"
	if w := do(r, http.MethodPut, "/api/productos/P1", updated); w.Code != http.StatusOK {
		t.Fatalf("update: expected 200 OK, got %d", w.Code)
	}

	w = do(r, http.MethodGet, "/api/productos/P1", nil)
	var got models.Product
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if got != updated {
		t.Errorf("expected %+v, got %+v", updated, got)
	}

	if w := do(r, http.MethodDelete, "/api/productos/P1", nil); w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200 OK, got %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/api/productos/P1", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
}

func TestStatusHandler(t *testing.T) {
	r := setupRouter(t)

	w := do(r, http.MethodGet, "/api/status", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var resp handler.StatusResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if !resp.Success || resp.Database.ServerTime == nil {
		t.Errorf("unexpected status %+v", resp)
	}
}
