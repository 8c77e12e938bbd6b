package handlers

import (
	"log/slog"

	repo "github.com/Adhandevelop/taller-powerby/internal/repo"
)

// Handler serves the product API on top of a ProductRepository.
type Handler struct {
	productRepo repo.ProductRepository
	logger      *slog.Logger
}

func NewHandler(productRepo repo.ProductRepository, logger *slog.Logger) *Handler {
	return &Handler{
		productRepo: productRepo,
		logger:      logger,
	}
}
