package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/Adhandevelop/taller-powerby/internal/models"
	repo "github.com/Adhandevelop/taller-powerby/internal/repo"
)

const maxImportBytes = 10 << 20

// ExportProductsHandler godoc
// @Summary Export products as CSV
// @Description Columns match the table columns, one row per product, ordered by IdProducto.
// @Tags import
// @Produce text/csv
// @Success 200 {string} string "CSV file"
// @Failure 500 {object} ErrorResponse
// @Router /api/export-productos [get]
func (h *Handler) ExportProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := h.productRepo.GetAll(r.Context())
	if err != nil {
		h.writeServerError(w, r, "failed to export products", err)
		return
	}

	csvContent, err := gocsv.MarshalString(&products)
	if err != nil {
		h.writeServerError(w, r, "failed to encode CSV", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="productos.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(csvContent)); err != nil {
		h.logger.Error("failed to write CSV export", "error", err)
	}
}

// ImportProductsHandler godoc
// @Summary Import products via CSV
// @Description Header row must use the column names. mode=skip (default) reports existing ids as errors, mode=update overwrites them.
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Param mode query string false "Import mode (skip|update)"
// @Success 200 {object} ImportProductsResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/import-productos [post]
func (h *Handler) ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	mode := strings.ToLower(r.URL.Query().Get("mode"))
	if mode != "update" {
		mode = "skip" // default
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "missing file")
		return
	}
	defer file.Close()

	var records []*models.Product
	if err := gocsv.Unmarshal(file, &records); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid CSV: %v", err))
		return
	}

	result := ImportProductsResult{Errors: []ImportError{}}
	for i, rec := range records {
		rowNum := i + 2 // header is row 1

		if !hasID(*rec) {
			result.Errors = append(result.Errors, ImportError{Row: rowNum, Description: "missing IdProducto"})
			continue
		}

		_, err := h.productRepo.Create(r.Context(), *rec)
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			if mode == "skip" {
				result.Errors = append(result.Errors, ImportError{Row: rowNum, IdProducto: rec.IdProducto, Description: "product already exists"})
				continue
			}
			_, err = h.productRepo.Update(r.Context(), rec.IdProducto, *rec)
		}
		if err != nil {
			h.logger.Warn("import row failed", "row", rowNum, "IdProducto", rec.IdProducto, "error", err)
			result.Errors = append(result.Errors, ImportError{Row: rowNum, IdProducto: rec.IdProducto, Description: err.Error()})
			continue
		}
		result.ImportedProductsCount++
	}

	h.writeJSON(w, http.StatusOK, ImportProductsResponse{Success: true, Data: result})
}
