package handlers

import (
	"errors"
	"net/http"

	"github.com/Adhandevelop/taller-powerby/internal/models"
	repo "github.com/Adhandevelop/taller-powerby/internal/repo"
)

// GetProductsHandler godoc
// @Summary List all products
// @Description Returns every product ordered by IdProducto. An empty table yields an empty array.
// @Tags productos
// @Produce json
// @Success 200 {array} models.Product
// @Failure 500 {object} ErrorResponse
// @Router /api/productos [get]
func (h *Handler) GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := h.productRepo.GetAll(r.Context())
	if err != nil {
		h.writeServerError(w, r, "failed to list products", err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	h.writeJSON(w, http.StatusOK, products)
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags productos
// @Produce json
// @Param id path string true "IdProducto (percent-encoded)"
// @Success 200 {object} models.Product
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/productos/{id} [get]
func (h *Handler) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	product, err := h.productRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			h.writeError(w, http.StatusNotFound, msgNotFound)
			return
		}
		h.writeServerError(w, r, "failed to get product", err)
		return
	}
	h.writeJSON(w, http.StatusOK, product)
}

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Inserts all ten fields. IdProducto must not be blank. A duplicated IdProducto is reported as a 500 with the database message.
// @Tags productos
// @Accept json
// @Produce json
// @Param product body models.Product true "Product to add"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/save-data [post]
func (h *Handler) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req models.Product
	if err := readJSON(w, r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	if !hasID(req) {
		h.writeError(w, http.StatusBadRequest, msgMissingID)
		return
	}

	created, err := h.productRepo.Create(r.Context(), req)
	if err != nil {
		h.writeServerError(w, r, "failed to save product", err)
		return
	}
	h.writeJSON(w, http.StatusOK, SuccessResponse{Success: true, Data: created})
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Description Overwrites every column of the product stored under id, IdProducto included. IdProducto must not be blank.
// @Tags productos
// @Accept json
// @Produce json
// @Param id path string true "IdProducto (percent-encoded)"
// @Param product body models.Product true "Updated product"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/productos/{id} [put]
func (h *Handler) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	var req models.Product
	if err := readJSON(w, r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	if !hasID(req) {
		h.writeError(w, http.StatusBadRequest, msgMissingID)
		return
	}

	updated, err := h.productRepo.Update(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			h.writeError(w, http.StatusNotFound, msgNotFound)
			return
		}
		h.writeServerError(w, r, "failed to update product", err)
		return
	}
	h.writeJSON(w, http.StatusOK, SuccessResponse{Success: true, Data: updated})
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Tags productos
// @Produce json
// @Param id path string true "IdProducto (percent-encoded)"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/productos/{id} [delete]
func (h *Handler) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	deleted, err := h.productRepo.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			h.writeError(w, http.StatusNotFound, msgNotFound)
			return
		}
		h.writeServerError(w, r, "failed to delete product", err)
		return
	}
	h.writeJSON(w, http.StatusOK, SuccessResponse{Success: true, Data: deleted})
}
