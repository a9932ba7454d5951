package services

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/trangvt/claria/internal/models"
	"github.com/trangvt/claria/internal/state"
)

type CartItem struct {
	ServiceID   string `json:"service_id"`
	ServiceName string `json:"service_name"`
	UnitPrice   int64  `json:"price"`
	Quantity    int    `json:"quantity"`
}

type Cart struct {
	Items     []CartItem `json:"items"`
	Total     int64      `json:"total"`
	ItemCount int        `json:"item_count"`
}

type CartValidation struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// RecomputeCartTotals derives total and item count from the lines.
func RecomputeCartTotals(cart *Cart) {
	cart.Total = 0
	cart.ItemCount = 0
	for _, item := range cart.Items {
		cart.Total += item.UnitPrice * int64(item.Quantity)
		cart.ItemCount += item.Quantity
	}
}

// ValidateCart returns every violation, not just the first.
func ValidateCart(cart Cart) CartValidation {
	errors := make([]string, 0)
	if len(cart.Items) == 0 {
		errors = append(errors, "cart is empty")
	}
	for _, item := range cart.Items {
		if item.Quantity <= 0 {
			errors = append(errors, fmt.Sprintf("invalid quantity for %s", item.ServiceName))
		}
		if item.UnitPrice <= 0 {
			errors = append(errors, fmt.Sprintf("invalid price for %s", item.ServiceName))
		}
	}
	return CartValidation{IsValid: len(errors) == 0, Errors: errors}
}

// CartOrderInfo builds the human-readable order summary sent to the payment
// gateway.
func CartOrderInfo(cart Cart) string {
	switch len(cart.Items) {
	case 0:
		return "Medical service payment"
	case 1:
		return fmt.Sprintf("Payment: %s", cart.Items[0].ServiceName)
	default:
		return fmt.Sprintf("Payment for %d medical services", len(cart.Items))
	}
}

type CartStore interface {
	Get(key string) (string, bool, error)
	Set(key string, value string) error
	Remove(key string) error
}

// CartService keeps one persisted cart per patient in the key-value store and
// publishes every change through an observable cell. A corrupt or missing
// stored cart silently falls back to empty.
type CartService struct {
	store CartStore

	mu    sync.Mutex
	cells map[string]*state.Cell[Cart]
}

func NewCartService(store CartStore) *CartService {
	return &CartService{
		store: store,
		cells: make(map[string]*state.Cell[Cart]),
	}
}

func cartKey(patientID string) string {
	return "cart:" + patientID
}

func emptyCart() Cart {
	return Cart{Items: []CartItem{}}
}

func (service *CartService) cell(patientID string) *state.Cell[Cart] {
	service.mu.Lock()
	defer service.mu.Unlock()
	cell, ok := service.cells[patientID]
	if !ok {
		cell = state.NewCell(emptyCart())
		service.cells[patientID] = cell
	}
	return cell
}

func (service *CartService) Get(patientID string) Cart {
	raw, found, err := service.store.Get(cartKey(patientID))
	if err != nil || !found {
		return emptyCart()
	}

	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil || cart.Items == nil {
		return emptyCart()
	}
	RecomputeCartTotals(&cart)
	return cart
}

func (service *CartService) Subscribe(patientID string, fn func(Cart)) func() {
	return service.cell(patientID).Subscribe(fn)
}

func (service *CartService) AddItem(patientID string, item CartItem) (Cart, error) {
	cart := service.Get(patientID)

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ServiceID == item.ServiceID {
			cart.Items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, item)
	}

	return service.save(patientID, cart)
}

// UpdateQuantity sets the quantity for a line; zero or negative removes it.
func (service *CartService) UpdateQuantity(patientID string, serviceID string, quantity int) (Cart, error) {
	cart := service.Get(patientID)

	if quantity <= 0 {
		return service.removeLine(patientID, cart, serviceID)
	}
	for i := range cart.Items {
		if cart.Items[i].ServiceID == serviceID {
			cart.Items[i].Quantity = quantity
			break
		}
	}
	return service.save(patientID, cart)
}

func (service *CartService) RemoveItem(patientID string, serviceID string) (Cart, error) {
	return service.removeLine(patientID, service.Get(patientID), serviceID)
}

func (service *CartService) Clear(patientID string) (Cart, error) {
	return service.save(patientID, emptyCart())
}

func (service *CartService) removeLine(patientID string, cart Cart, serviceID string) (Cart, error) {
	filtered := make([]CartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		if item.ServiceID != serviceID {
			filtered = append(filtered, item)
		}
	}
	cart.Items = filtered
	return service.save(patientID, cart)
}

func (service *CartService) save(patientID string, cart Cart) (Cart, error) {
	RecomputeCartTotals(&cart)

	encoded, err := json.Marshal(cart)
	if err != nil {
		return cart, fmt.Errorf("encode cart: %w", err)
	}
	if err := service.store.Set(cartKey(patientID), string(encoded)); err != nil {
		return cart, fmt.Errorf("persist cart: %w", err)
	}

	service.cell(patientID).Set(cart)
	return cart, nil
}

// CartItemFromService builds a cart line for a catalog service.
func CartItemFromService(medicalService models.MedicalService, quantity int) CartItem {
	return CartItem{
		ServiceID:   medicalService.ID,
		ServiceName: medicalService.Name,
		UnitPrice:   medicalService.Price,
		Quantity:    quantity,
	}
}
