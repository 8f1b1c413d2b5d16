package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"aurelialuxe.com/boutique/pkg/gateway"
	"aurelialuxe.com/boutique/pkg/models"
	"aurelialuxe.com/boutique/pkg/pricing"
	"aurelialuxe.com/boutique/pkg/snapshot"
)

// AddToCart appends a new bag line for product. Empty metal or stone fall back
// to the product's own. The final price is computed now and never recomputed.
// Adding the same piece twice gives two lines.
func (m *Manager) AddToCart(product models.Product, metal models.MetalPurity, stone models.StoneType) models.CartItem {
	if metal == "" {
		metal = product.MetalPurity
	}
	if stone == "" {
		stone = product.StoneType
	}

	price := m.rules.Calculate(product, metal, stone)
	item := models.CartItem{
		Product:       product.Clone(),
		Quantity:      1,
		SelectedMetal: metal,
		SelectedStone: stone,
		FinalPrice:    price.Final,
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cart = append(m.cart, item)
	m.cache.Save(snapshot.KeyCart, m.cart)
	return item.Clone()
}

// AddProductToCart looks the product up by id before adding it
func (m *Manager) AddProductToCart(productID string, metal models.MetalPurity, stone models.StoneType) (models.CartItem, error) {
	product, err := m.Product(productID)
	if err != nil {
		return models.CartItem{}, err
	}
	return m.AddToCart(product, metal, stone), nil
}

// RemoveFromCart removes the line at index. Out of range indexes are ignored.
func (m *Manager) RemoveFromCart(index int) {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	m.mu.Lock()
	defer m.mu.Unlock()
	if index < 0 || index >= len(m.cart) {
		return
	}
	cart := make([]models.CartItem, 0, len(m.cart)-1)
	cart = append(cart, m.cart[:index]...)
	m.cart = append(cart, m.cart[index+1:]...)
	m.cache.Save(snapshot.KeyCart, m.cart)
}

func (m *Manager) ClearCart() {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cart = []models.CartItem{}
	m.cache.Save(snapshot.KeyCart, m.cart)
}

func (m *Manager) Cart() []models.CartItem {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneCart(m.cart)
}

// CartTotal sums the frozen final prices of the bag
func (m *Manager) CartTotal() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return pricing.Total(m.cart)
}

// SubmitConsultation turns the bag into a consultation request. The order is
// added to the signed-in member's history and the bag is emptied.
func (m *Manager) SubmitConsultation(ctx context.Context, contact models.Contact) (models.Order, error) {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.mu.RLock()
	items := cloneCart(m.cart)
	user, signedIn := m.currentUser()
	m.mu.RUnlock()

	if len(items) == 0 {
		return models.Order{}, ErrEmptyBag
	}

	order := models.Order{
		ID:        uuid.NewString(),
		Date:      time.Now().UTC(),
		Items:     items,
		Total:     pricing.Total(items),
		Status:    models.OrderPending,
		RefNumber: models.GenerateRefNumber(),
		Contact:   contact,
	}

	var history []models.Order
	if signedIn {
		history = append(user.Clone().OrderHistory, order.Clone())
		if m.gateway != nil {
			if err := m.gateway.UpdateUser(ctx, user.ID, gateway.UserPatch{OrderHistory: &history}); err != nil {
				return models.Order{}, translate("record consultation", err)
			}
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if signedIn {
		if i := m.userIndex(user.ID); i >= 0 {
			m.users[i].OrderHistory = history
			m.saveUsers()
		}
	}
	m.cart = append([]models.CartItem{}, m.cart[min(len(items), len(m.cart)):]...)
	m.cache.Save(snapshot.KeyCart, m.cart)

	m.logger.Info("consultation requested",
		zap.String("ref", order.RefNumber),
		zap.Int("items", len(order.Items)),
		zap.Int("pieces", order.GetItemCount()),
		zap.Float64("total", order.Total),
	)
	return order, nil
}

func cloneCart(items []models.CartItem) []models.CartItem {
	out := make([]models.CartItem, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}
