package services

import (
	"errors"
	"testing"

	"github.com/trangvt/claria/internal/models"
)

type memoryKV struct {
	values  map[string]string
	failGet bool
}

func newMemoryKV() *memoryKV {
	return &memoryKV{values: make(map[string]string)}
}

func (kv *memoryKV) Get(key string) (string, bool, error) {
	if kv.failGet {
		return "", false, errors.New("store unavailable")
	}
	value, ok := kv.values[key]
	return value, ok, nil
}

func (kv *memoryKV) Set(key string, value string) error {
	kv.values[key] = value
	return nil
}

func (kv *memoryKV) Remove(key string) error {
	delete(kv.values, key)
	return nil
}

func TestCartAddItemMergesLines(t *testing.T) {
	service := NewCartService(newMemoryKV())
	item := CartItem{ServiceID: "svc-1", ServiceName: "Ultrasound", UnitPrice: 100000, Quantity: 1}

	if _, err := service.AddItem("p1", item); err != nil {
		t.Fatalf("add item: %v", err)
	}
	item.Quantity = 2
	cart, err := service.AddItem("p1", item)
	if err != nil {
		t.Fatalf("add item: %v", err)
	}

	if len(cart.Items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 3 {
		t.Fatalf("expected merged quantity 3, got %d", cart.Items[0].Quantity)
	}
	if cart.Total != 300000 {
		t.Fatalf("expected total 300000, got %d", cart.Total)
	}
	if cart.ItemCount != 3 {
		t.Fatalf("expected item count 3, got %d", cart.ItemCount)
	}
}

func TestCartUpdateQuantityZeroRemovesLine(t *testing.T) {
	service := NewCartService(newMemoryKV())
	_, _ = service.AddItem("p1", CartItem{ServiceID: "svc-1", ServiceName: "Ultrasound", UnitPrice: 100000, Quantity: 2})

	cart, err := service.UpdateQuantity("p1", "svc-1", 0)
	if err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if len(cart.Items) != 0 || cart.Total != 0 {
		t.Fatalf("expected an empty cart, got %+v", cart)
	}
}

func TestCartSurvivesAcrossLoads(t *testing.T) {
	kv := newMemoryKV()
	first := NewCartService(kv)
	_, _ = first.AddItem("p1", CartItem{ServiceID: "svc-1", ServiceName: "Ultrasound", UnitPrice: 100000, Quantity: 2})

	// A fresh service instance over the same store sees the persisted cart.
	second := NewCartService(kv)
	cart := second.Get("p1")
	if cart.Total != 200000 || cart.ItemCount != 2 {
		t.Fatalf("expected persisted cart, got %+v", cart)
	}
}

func TestCartCorruptStateFallsBackToEmpty(t *testing.T) {
	kv := newMemoryKV()
	kv.values["cart:p1"] = "{not json"
	service := NewCartService(kv)

	cart := service.Get("p1")
	if len(cart.Items) != 0 || cart.Total != 0 {
		t.Fatalf("corrupt stored cart must read as empty, got %+v", cart)
	}

	kv.failGet = true
	cart = service.Get("p1")
	if len(cart.Items) != 0 {
		t.Fatalf("store errors must read as empty, got %+v", cart)
	}
}

func TestCartSubscribePublishesChanges(t *testing.T) {
	service := NewCartService(newMemoryKV())

	var seen []Cart
	unsubscribe := service.Subscribe("p1", func(cart Cart) {
		seen = append(seen, cart)
	})

	_, _ = service.AddItem("p1", CartItem{ServiceID: "svc-1", ServiceName: "Ultrasound", UnitPrice: 100000, Quantity: 1})
	_, _ = service.Clear("p1")

	if len(seen) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(seen))
	}
	if seen[0].Total != 100000 || seen[1].Total != 0 {
		t.Fatalf("unexpected notification payloads: %+v", seen)
	}

	unsubscribe()
	_, _ = service.AddItem("p1", CartItem{ServiceID: "svc-1", ServiceName: "Ultrasound", UnitPrice: 100000, Quantity: 1})
	if len(seen) != 2 {
		t.Fatal("unsubscribed callback must not fire")
	}
}

func TestValidateCart(t *testing.T) {
	empty := ValidateCart(Cart{Items: []CartItem{}})
	if empty.IsValid || len(empty.Errors) != 1 {
		t.Fatalf("empty cart should fail with one error, got %+v", empty)
	}

	broken := ValidateCart(Cart{Items: []CartItem{
		{ServiceID: "a", ServiceName: "Consult", UnitPrice: 100000, Quantity: 0},
		{ServiceID: "b", ServiceName: "Panel", UnitPrice: 0, Quantity: 1},
	}})
	if broken.IsValid {
		t.Fatal("cart with invalid lines should fail")
	}
	if len(broken.Errors) != 2 {
		t.Fatalf("expected every violation reported, got %v", broken.Errors)
	}

	valid := ValidateCart(Cart{Items: []CartItem{
		{ServiceID: "a", ServiceName: "Consult", UnitPrice: 100000, Quantity: 1},
	}})
	if !valid.IsValid {
		t.Fatalf("expected valid cart, got %v", valid.Errors)
	}
}

func TestCartOrderInfo(t *testing.T) {
	if got := CartOrderInfo(Cart{}); got != "Medical service payment" {
		t.Fatalf("unexpected empty-cart info %q", got)
	}
	one := Cart{Items: []CartItem{{ServiceName: "Ultrasound"}}}
	if got := CartOrderInfo(one); got != "Payment: Ultrasound" {
		t.Fatalf("unexpected single-item info %q", got)
	}
	two := Cart{Items: []CartItem{{ServiceName: "A"}, {ServiceName: "B"}}}
	if got := CartOrderInfo(two); got != "Payment for 2 medical services" {
		t.Fatalf("unexpected multi-item info %q", got)
	}
}

func TestCartItemFromService(t *testing.T) {
	item := CartItemFromService(models.MedicalService{ID: "svc-1", Name: "Ultrasound", Price: 150000}, 2)
	if item.ServiceID != "svc-1" || item.ServiceName != "Ultrasound" || item.UnitPrice != 150000 || item.Quantity != 2 {
		t.Fatalf("unexpected cart item %+v", item)
	}
}
