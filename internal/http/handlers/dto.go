package handlers

import (
	"time"

	"github.com/Adhandevelop/taller-powerby/internal/models"
)

// SuccessResponse is the envelope returned by mutation endpoints.
type SuccessResponse struct {
	Success bool           `json:"success"`
	Data    models.Product `json:"data"`
}

// ErrorResponse is the envelope returned on every failure.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type DatabaseStatus struct {
	URL          string     `json:"url"`
	Connection   string     `json:"connection"`
	ServerTime   *time.Time `json:"serverTime,omitempty"`
	ProductCount *int       `json:"productCount,omitempty"`
}

type StatusResponse struct {
	Success   bool           `json:"success"`
	Message   string         `json:"message,omitempty"`
	Error     string         `json:"error,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Database  DatabaseStatus `json:"database"`
}

type ImportError struct {
	Row         int    `json:"row"`
	IdProducto  string `json:"IdProducto,omitempty"`
	Description string `json:"description"`
}

type ImportProductsResult struct {
	ImportedProductsCount int           `json:"imported"`
	Errors                []ImportError `json:"errors"`
}

type ImportProductsResponse struct {
	Success bool                 `json:"success"`
	Data    ImportProductsResult `json:"data"`
}
