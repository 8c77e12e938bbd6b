package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Adhandevelop/taller-powerby/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products map[string]models.Product
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: map[string]models.Product{},
	}
}

// GetAll returns every product ordered by IdProducto.
func (r *InMemoryProductRepository) GetAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].IdProducto < products[j].IdProducto
	})
	return products, nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(_ context.Context, id string) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	return p, nil
}

// Create adds a new product to the repository.
func (r *InMemoryProductRepository) Create(_ context.Context, product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[product.IdProducto]; exists {
		return models.Product{}, ErrDuplicatedValueUnique
	}
	r.products[product.IdProducto] = product
	return product, nil
}

// Update replaces the product stored under id, re-keying it when IdProducto changes.
func (r *InMemoryProductRepository) Update(_ context.Context, id string, product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return models.Product{}, ErrProductNotFound
	}
	if product.IdProducto != id {
		if _, taken := r.products[product.IdProducto]; taken {
			return models.Product{}, ErrDuplicatedValueUnique
		}
		delete(r.products, id)
	}
	r.products[product.IdProducto] = product
	return product, nil
}

// Delete removes a product from the repository by its ID.
func (r *InMemoryProductRepository) Delete(_ context.Context, id string) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	delete(r.products, id)
	return p, nil
}

func (r *InMemoryProductRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.products), nil
}

func (r *InMemoryProductRepository) Ping(_ context.Context) (time.Time, error) {
	return time.Now().UTC(), nil
}

func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	r.products = map[string]models.Product{}
	r.mu.Unlock()
}
