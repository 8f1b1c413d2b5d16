package store

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"aurelialuxe.com/boutique/pkg/models"
	"aurelialuxe.com/boutique/pkg/pricing"
	"aurelialuxe.com/boutique/pkg/snapshot"
)

type Sort string

const (
	SortNewest    Sort = "newest"
	SortPriceAsc  Sort = "price_asc"
	SortPriceDesc Sort = "price_desc"
	SortRating    Sort = "rating"
)

// AllFilter matches every value of a filter field, as does an empty string
const AllFilter = "All"

// Filter narrows the catalog listing
type Filter struct {
	Category string
	Metal    models.MetalPurity
	Stone    models.StoneType
	Sort     Sort
}

func matches(want, got string) bool {
	return want == "" || want == AllFilter || strings.EqualFold(want, got)
}

func (m *Manager) Products() []models.Product {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneProducts(m.products)
}

func (m *Manager) Product(id string) (models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := m.productIndex(id); i >= 0 {
		return m.products[i].Clone(), nil
	}
	return models.Product{}, ErrNotFound
}

func (m *Manager) ProductBySKU(sku string) (models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.products {
		if strings.EqualFold(p.SKU, sku) {
			return p.Clone(), nil
		}
	}
	return models.Product{}, ErrNotFound
}

// Categories lists the distinct categories in catalog order
func (m *Manager) Categories() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[string]struct{})
	var categories []string
	for _, p := range m.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories
}

// FilterProducts returns the pieces matching every set field of f. Price sorts
// order by base price and keep catalog order for ties; newest keeps catalog order.
func (m *Manager) FilterProducts(f Filter) []models.Product {
	m.mu.RLock()
	out := make([]models.Product, 0, len(m.products))
	for _, p := range m.products {
		if matches(f.Category, p.Category) && matches(string(f.Metal), string(p.MetalPurity)) && matches(string(f.Stone), string(p.StoneType)) {
			out = append(out, p.Clone())
		}
	}
	m.mu.RUnlock()

	switch f.Sort {
	case SortPriceAsc:
		slices.SortStableFunc(out, func(a, b models.Product) int { return cmp.Compare(a.BasePrice, b.BasePrice) })
	case SortPriceDesc:
		slices.SortStableFunc(out, func(a, b models.Product) int { return cmp.Compare(b.BasePrice, a.BasePrice) })
	case SortRating:
		slices.SortStableFunc(out, func(a, b models.Product) int { return cmp.Compare(b.AverageRating(), a.AverageRating()) })
	}
	return out
}

// Quote prices a catalog piece for a metal and stone selection. Empty
// selections fall back to the piece's own.
func (m *Manager) Quote(productID string, metal models.MetalPurity, stone models.StoneType) (pricing.Price, error) {
	product, err := m.Product(productID)
	if err != nil {
		return pricing.Price{}, err
	}
	if metal == "" {
		metal = product.MetalPurity
	}
	if stone == "" {
		stone = product.StoneType
	}
	return m.rules.Calculate(product, metal, stone), nil
}

// WishlistProducts returns the signed-in member's saved pieces that are still in the catalog
func (m *Manager) WishlistProducts() []models.Product {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.currentUser()
	if !ok {
		return []models.Product{}
	}
	out := make([]models.Product, 0, len(user.Wishlist))
	for _, p := range m.products {
		if user.HasInWishlist(p.ID) {
			out = append(out, p.Clone())
		}
	}
	return out
}

// SaveProduct creates or replaces a catalog piece. A piece without an id is
// new and gets a generated id, and a SKU when none was given.
func (m *Manager) SaveProduct(ctx context.Context, product models.Product) (models.Product, error) {
	if _, err := m.requireAdmin(); err != nil {
		return models.Product{}, err
	}

	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if product.SKU == "" {
		product.SKU = models.GenerateSKU(product.Category)
	}
	if product.Images == nil {
		product.Images = []string{}
	}
	if product.Reviews == nil {
		product.Reviews = []models.Review{}
	}
	if err := models.Validate(product); err != nil {
		return models.Product{}, err
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.mu.RLock()
	taken := m.skuTaken(product.SKU, product.ID)
	m.mu.RUnlock()
	if taken {
		return models.Product{}, ErrSKUTaken
	}

	if m.gateway != nil {
		if err := m.gateway.UpsertProduct(ctx, product); err != nil {
			return models.Product{}, translate("save product", err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.productIndex(product.ID); i >= 0 {
		m.products[i] = product.Clone()
	} else {
		m.products = append(m.products, product.Clone())
	}
	m.cache.Save(snapshot.KeyProducts, m.products)

	m.logger.Info("product saved", zap.String("id", product.ID), zap.String("sku", product.SKU))
	return product.Clone(), nil
}

func (m *Manager) DeleteProduct(ctx context.Context, id string) error {
	if _, err := m.requireAdmin(); err != nil {
		return err
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.mu.RLock()
	known := m.productIndex(id) >= 0
	m.mu.RUnlock()
	if !known {
		return ErrNotFound
	}

	if m.gateway != nil {
		if err := m.gateway.DeleteProduct(ctx, id); err != nil {
			return translate("delete product", err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.productIndex(id); i >= 0 {
		m.products = slices.Delete(slices.Clone(m.products), i, i+1)
	}
	m.cache.Save(snapshot.KeyProducts, m.products)

	m.logger.Info("product deleted", zap.String("id", id))
	return nil
}

func (m *Manager) SiteContent() models.SiteContent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.siteContent
}

// UpdateSiteContent replaces the site copy wholesale. The copy is persisted
// first; when that fails the current copy is kept and the error returned.
func (m *Manager) UpdateSiteContent(ctx context.Context, content models.SiteContent) error {
	if _, err := m.requireAdmin(); err != nil {
		return err
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	if m.gateway != nil {
		if err := m.gateway.UpsertSiteContent(ctx, content); err != nil {
			return translate("update site content", err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.siteContent = content
	m.cache.Save(snapshot.KeySiteContent, m.siteContent)
	return nil
}

func cloneProducts(products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	for i, p := range products {
		out[i] = p.Clone()
	}
	return out
}
