package catalog

import (
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/commerce/internal/domain"
	"github.com/vladislavdragonenkov/commerce/internal/storage/memory"
)

func TestServiceAddProduct(t *testing.T) {
	svc := NewService(memory.NewProductRepository(), nil)

	created, err := svc.AddProduct("  Keyboard  ", 12900, 40)
	if err != nil {
		t.Fatalf("AddProduct failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected assigned id")
	}
	if created.Name != "Keyboard" {
		t.Fatalf("unexpected name: %q", created.Name)
	}
	if created.PriceMinor != 12900 || created.Quantity != 40 {
		t.Fatalf("unexpected product: %+v", created)
	}

	got, err := svc.Get(created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("unexpected product: %+v", got)
	}
}

func TestServiceAddProduct_Validation(t *testing.T) {
	svc := NewService(memory.NewProductRepository(), nil)

	if _, err := svc.AddProduct("  ", 100, 1); !errors.Is(err, domain.ErrProductNameRequired) {
		t.Fatalf("expected ErrProductNameRequired, got %v", err)
	}
	if _, err := svc.AddProduct("Keyboard", -1, 1); !errors.Is(err, domain.ErrProductPriceInvalid) {
		t.Fatalf("expected ErrProductPriceInvalid, got %v", err)
	}
	if _, err := svc.AddProduct("Keyboard", 100, -1); !errors.Is(err, domain.ErrProductQtyInvalid) {
		t.Fatalf("expected ErrProductQtyInvalid, got %v", err)
	}
}

func TestServiceAddProduct_NameTaken(t *testing.T) {
	svc := NewService(memory.NewProductRepository(), nil)

	if _, err := svc.AddProduct("Keyboard", 100, 1); err != nil {
		t.Fatalf("first AddProduct failed: %v", err)
	}
	if _, err := svc.AddProduct("Keyboard", 200, 2); !errors.Is(err, domain.ErrProductNameTaken) {
		t.Fatalf("expected ErrProductNameTaken, got %v", err)
	}
}

func TestServiceGet_NotFound(t *testing.T) {
	svc := NewService(memory.NewProductRepository(), nil)

	if _, err := svc.Get("missing"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if _, err := svc.Get(""); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound for empty id, got %v", err)
	}
}
