package handlers_test_suite

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	handler "github.com/Adhandevelop/taller-powerby/internal/http/handlers"
)

const csvHeader = "IdProducto,NombreProducto,Proveedor,Categoria,CantidadPorUnidad,PrecioUnidad,UnidadesEnExistencia,UnidadesEnPedido,NivelNuevoPedido,Suspendido\n"

func importCSV(r http.Handler, csvData, mode string) *httptest.ResponseRecorder {
	body, contentType := multipartCSV(csvData, "productos.csv")
	path := "/api/import-productos"
	if mode != "" {
		path += "?mode=" + mode
	}
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeImport(t *testing.T, w *httptest.ResponseRecorder) handler.ImportProductsResult {
	t.Helper()
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var resp handler.ImportProductsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Error("expected success to be true")
	}
	return resp.Data
}

func TestImportProductsHandler(t *testing.T) {
	t.Run("File with unique valid products", func(t *testing.T) {
		r, productRepo := setupRouter()
		csvData := csvHeader +
			"P1,Widget,Acme,Tools,1 box,9.99,10,0,5,FALSO\n" +
			"P2,Gadget,Acme,Tools,1 unit,4.50,3,1,2,VERDADERO\n"

		res := decodeImport(t, importCSV(r, csvData, ""))

		if res.ImportedProductsCount != 2 {
			t.Errorf("expected 2 imported products, got %d", res.ImportedProductsCount)
		}
		if len(res.Errors) != 0 {
			t.Errorf("expected no errors, got %v", res.Errors)
		}
		p, err := productRepo.GetByID(t.Context(), "P1")
		if err != nil {
			t.Fatalf("expected P1 to be stored: %v", err)
		}
		if p != widget() {
			t.Errorf("expected %+v, got %+v", widget(), p)
		}
	})

	t.Run("Duplicated product in default mode (skip)", func(t *testing.T) {
		r, productRepo := setupRouter()
		saveProduct(r, widget())
		csvData := csvHeader +
			"P1,Replaced,Acme,Tools,1 box,1.00,1,0,5,FALSO\n" +
			"P2,Gadget,Acme,Tools,1 unit,4.50,3,1,2,VERDADERO\n"

		res := decodeImport(t, importCSV(r, csvData, ""))

		if res.ImportedProductsCount != 1 {
			t.Errorf("expected 1 imported product, got %d", res.ImportedProductsCount)
		}
		if len(res.Errors) != 1 {
			t.Fatalf("expected 1 error, got %v", res.Errors)
		}
		if res.Errors[0].Row != 2 || res.Errors[0].IdProducto != "P1" {
			t.Errorf("unexpected error entry %+v", res.Errors[0])
		}
		p, _ := productRepo.GetByID(t.Context(), "P1")
		if p.NombreProducto != "Widget" {
			t.Errorf("expected P1 untouched, got %q", p.NombreProducto)
		}
	})

	t.Run("Duplicated product in update mode", func(t *testing.T) {
		r, productRepo := setupRouter()
		saveProduct(r, widget())
		csvData := csvHeader + "P1,Replaced,Acme,Tools,1 box,1.00,1,0,5,FALSO\n"

		res := decodeImport(t, importCSV(r, csvData, "update"))

		if res.ImportedProductsCount != 1 || len(res.Errors) != 0 {
			t.Errorf("expected 1 import and no errors, got %+v", res)
		}
		p, _ := productRepo.GetByID(t.Context(), "P1")
		if p.NombreProducto != "Replaced" || p.PrecioUnidad != "1.00" {
			t.Errorf("expected P1 overwritten, got %+v", p)
		}
	})

	t.Run("Row without IdProducto", func(t *testing.T) {
		r, productRepo := setupRouter()
		csvData := csvHeader + ",Nameless,Acme,Tools,1 box,1.00,1,0,5,FALSO\n"

		res := decodeImport(t, importCSV(r, csvData, ""))

		if res.ImportedProductsCount != 0 || len(res.Errors) != 1 {
			t.Errorf("expected the row to be rejected, got %+v", res)
		}
		if n, _ := productRepo.Count(t.Context()); n != 0 {
			t.Errorf("expected no rows, got %d", n)
		}
	})

	t.Run("Missing file", func(t *testing.T) {
		r, _ := setupRouter()
		req := httptest.NewRequest(http.MethodPost, "/api/import-productos", strings.NewReader(""))
		req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}

func TestExportProductsHandler(t *testing.T) {
	r, _ := setupRouter()
	second := widget()
	second.IdProducto = "P2"
	second.NombreProducto = "Gadget, large"
	saveProduct(r, second)
	saveProduct(r, widget())

	w := get(r, "/api/export-productos")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("expected text/csv, got %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("expected attachment disposition, got %q", cd)
	}

	rows, err := csv.NewReader(w.Body).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header and 2 rows, got %d", len(rows))
	}
	if strings.Join(rows[0], ",")+"\n" != csvHeader {
		t.Errorf("unexpected header %v", rows[0])
	}
	if rows[1][0] != "P1" || rows[2][0] != "P2" {
		t.Errorf("expected rows ordered by id, got %s then %s", rows[1][0], rows[2][0])
	}
	if rows[2][1] != "Gadget, large" {
		t.Errorf("expected quoted field to survive, got %q", rows[2][1])
	}
}

func TestExportThenImport_RoundTrip(t *testing.T) {
	src, _ := setupRouter()
	saveProduct(src, widget())

	exported := get(src, "/api/export-productos").Body.String()

	dst, productRepo := setupRouter()
	res := decodeImport(t, importCSV(dst, exported, ""))
	if res.ImportedProductsCount != 1 {
		t.Fatalf("expected 1 imported product, got %+v", res)
	}
	p, _ := productRepo.GetByID(t.Context(), "P1")
	if p != widget() {
		t.Errorf("expected %+v, got %+v", widget(), p)
	}
}
