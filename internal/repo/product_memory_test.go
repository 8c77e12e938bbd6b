package repo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Adhandevelop/taller-powerby/internal/models"
	"github.com/Adhandevelop/taller-powerby/internal/repo"
)

func sampleProduct(id, name string) models.Product {
	return models.Product{
		IdProducto:           id,
		NombreProducto:       name,
		Proveedor:            "Exotic Liquids",
		Categoria:            "Bebidas",
		CantidadPorUnidad:    "10 cajas x 20 bolsas",
		PrecioUnidad:         "18",
		UnidadesEnExistencia: "39",
		UnidadesEnPedido:     "0",
		NivelNuevoPedido:     "10",
		Suspendido:           models.SuspendidoFalse,
	}
}

func TestInMemory_InsertThenGetReturnsSameFields(t *testing.T) {
	ctx := context.Background()
	r := repo.NewInMemoryProductRepository()

	want := sampleProduct("P1", "Widget")
	if _, err := r.Create(ctx, want); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := r.GetByID(ctx, "P1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestInMemory_ListEmpty(t *testing.T) {
	products, err := repo.NewInMemoryProductRepository().GetAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if products == nil || len(products) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", products)
	}
}

func TestInMemory_ListOrderedByID(t *testing.T) {
	ctx := context.Background()
	r := repo.NewInMemoryProductRepository()
	for _, id := range []string{"P3", "P1", "P2"} {
		if _, err := r.Create(ctx, sampleProduct(id, "item "+id)); err != nil {
			t.Fatalf("create %s failed: %v", id, err)
		}
	}

	products, _ := r.GetAll(ctx)
	for i, id := range []string{"P1", "P2", "P3"} {
		if products[i].IdProducto != id {
			t.Errorf("position %d: expected %s, got %s", i, id, products[i].IdProducto)
		}
	}
}

func TestInMemory_DuplicateInsertKeepsFirstRow(t *testing.T) {
	ctx := context.Background()
	r := repo.NewInMemoryProductRepository()

	first := sampleProduct("P1", "Widget")
	if _, err := r.Create(ctx, first); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err := r.Create(ctx, sampleProduct("P1", "Gadget"))
	if !errors.Is(err, repo.ErrDuplicatedValueUnique) {
		t.Fatalf("expected ErrDuplicatedValueUnique, got %v", err)
	}

	got, _ := r.GetByID(ctx, "P1")
	if got != first {
		t.Errorf("first row changed: %+v", got)
	}
}

func TestInMemory_UpdateOverwritesOnlyTarget(t *testing.T) {
	ctx := context.Background()
	r := repo.NewInMemoryProductRepository()
	other := sampleProduct("P2", "Other")
	r.Create(ctx, sampleProduct("P1", "Widget"))
	r.Create(ctx, other)

	changed := sampleProduct("P1", "Widget Pro")
	changed.PrecioUnidad = "25"
	changed.Suspendido = models.SuspendidoTrue

	updated, err := r.Update(ctx, "P1", changed)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated != changed {
		t.Errorf("expected %+v, got %+v", changed, updated)
	}

	got, _ := r.GetByID(ctx, "P2")
	if got != other {
		t.Errorf("untouched row changed: %+v", got)
	}
}

func TestInMemory_UpdateCanChangeKey(t *testing.T) {
	ctx := context.Background()
	r := repo.NewInMemoryProductRepository()
	r.Create(ctx, sampleProduct("P1", "Widget"))

	if _, err := r.Update(ctx, "P1", sampleProduct("P9", "Widget")); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if _, err := r.GetByID(ctx, "P1"); !errors.Is(err, repo.ErrProductNotFound) {
		t.Errorf("expected old key to be gone, got %v", err)
	}
	if _, err := r.GetByID(ctx, "P9"); err != nil {
		t.Errorf("expected new key to exist, got %v", err)
	}
}

func TestInMemory_UpdateMissing(t *testing.T) {
	_, err := repo.NewInMemoryProductRepository().Update(context.Background(), "nope", sampleProduct("nope", "x"))
	if !errors.Is(err, repo.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestInMemory_DeleteThenGetIsNotFound(t *testing.T) {
	ctx := context.Background()
	r := repo.NewInMemoryProductRepository()
	want := sampleProduct("P1", "Widget")
	r.Create(ctx, want)

	deleted, err := r.Delete(ctx, "P1")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted != want {
		t.Errorf("expected deleted row %+v, got %+v", want, deleted)
	}

	if _, err := r.GetByID(ctx, "P1"); !errors.Is(err, repo.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
	if _, err := r.Delete(ctx, "P1"); !errors.Is(err, repo.ErrProductNotFound) {
		t.Errorf("expected second delete to be not found, got %v", err)
	}
}
