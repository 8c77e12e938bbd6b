package repo

import (
	"context"
	"errors"
	"time"

	"github.com/Adhandevelop/taller-powerby/internal/models"
)

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (models.Product, error)
	Create(ctx context.Context, product models.Product) (models.Product, error)
	// Update overwrites every column, the key included, of the row currently stored under id.
	Update(ctx context.Context, id string, product models.Product) (models.Product, error)
	Delete(ctx context.Context, id string) (models.Product, error)
	Count(ctx context.Context) (int, error)
	// Ping runs a trivial round trip and returns the database clock.
	Ping(ctx context.Context) (time.Time, error)
}

// ErrProductNotFound is returned when no row matches the requested id.
var ErrProductNotFound = errors.New("product not found")

// ErrDuplicatedValueUnique is returned when a write collides with an existing IdProducto.
var ErrDuplicatedValueUnique = errors.New("duplicated value for unique field")
