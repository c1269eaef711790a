package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/diewo77/autoparts/internal/models"
	"github.com/diewo77/autoparts/internal/store"
	"github.com/google/uuid"
)

// SearchLimit caps part suggestions in the invoice editor.
const SearchLimit = 5

// CatalogService manages parts and customers.
type CatalogService struct {
	store store.Store
}

func NewCatalogService(st store.Store) *CatalogService {
	return &CatalogService{store: st}
}

func (s *CatalogService) ListParts(ctx context.Context) ([]models.Part, error) {
	return s.store.Parts().List(ctx)
}

func (s *CatalogService) GetPart(ctx context.Context, sku string) (models.Part, error) {
	return s.store.Parts().Get(ctx, sku)
}

// SavePart creates or overwrites the part with p.SKU.
func (s *CatalogService) SavePart(ctx context.Context, p models.Part) (models.Part, error) {
	return s.store.Parts().Put(ctx, p)
}

// DeletePart removes a part. Invoices keep their snapshotted lines.
func (s *CatalogService) DeletePart(ctx context.Context, sku string) error {
	return s.store.Parts().Delete(ctx, sku)
}

// SearchForInvoice returns in-stock parts whose name or SKU contains q,
// ignoring case, at most SearchLimit of them.
func (s *CatalogService) SearchForInvoice(ctx context.Context, q string) ([]models.Part, error) {
	q = strings.ToLower(strings.TrimSpace(q))
	out := []models.Part{}
	if q == "" {
		return out, nil
	}
	parts, err := s.store.Parts().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	for _, p := range parts {
		if p.QuantityInStock <= 0 {
			continue
		}
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.SKU), q) {
			out = append(out, p)
			if len(out) == SearchLimit {
				break
			}
		}
	}
	return out, nil
}

func (s *CatalogService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return s.store.Customers().List(ctx)
}

func (s *CatalogService) GetCustomer(ctx context.Context, id string) (models.Customer, error) {
	return s.store.Customers().Get(ctx, id)
}

// SaveCustomer stores c, assigning an id to new customers.
func (s *CatalogService) SaveCustomer(ctx context.Context, c models.Customer) (models.Customer, error) {
	if c.ID == "" {
		c.ID = "CUST-" + uuid.NewString()
	}
	return s.store.Customers().Put(ctx, c)
}

// DeleteCustomer removes a customer. Invoices pointing at it are left as is.
func (s *CatalogService) DeleteCustomer(ctx context.Context, id string) error {
	return s.store.Customers().Delete(ctx, id)
}

// CustomerNames maps customer ids to names for list views.
func (s *CatalogService) CustomerNames(ctx context.Context) (map[string]string, error) {
	customers, err := s.store.Customers().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	names := make(map[string]string, len(customers))
	for _, c := range customers {
		names[c.ID] = c.Name
	}
	return names, nil
}

// CustomerName resolves id, returning placeholder when the customer is gone.
func (s *CatalogService) CustomerName(ctx context.Context, id, placeholder string) (string, error) {
	c, err := s.store.Customers().Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return placeholder, nil
	}
	if err != nil {
		return "", err
	}
	return c.Name, nil
}
