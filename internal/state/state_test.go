package state

import "testing"

func TestCellGetReturnsLastWrite(t *testing.T) {
	cell := NewCell(1)
	if got := cell.Get(); got != 1 {
		t.Fatalf("expected initial value 1, got %d", got)
	}

	cell.Set(2)
	cell.Set(3)
	if got := cell.Get(); got != 3 {
		t.Fatalf("expected last write 3, got %d", got)
	}
}

func TestCellNotifiesInRegistrationOrder(t *testing.T) {
	cell := NewCell("")

	var order []int
	cell.Subscribe(func(string) { order = append(order, 1) })
	cell.Subscribe(func(string) { order = append(order, 2) })
	cell.Subscribe(func(string) { order = append(order, 3) })

	cell.Set("change")
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("expected callbacks in registration order, got %v", order)
	}
}

func TestCellSubscribeDoesNotReplayCurrentValue(t *testing.T) {
	cell := NewCell(42)

	fired := false
	cell.Subscribe(func(int) { fired = true })
	if fired {
		t.Fatal("subscribing must not invoke the callback with the current value")
	}

	cell.Set(43)
	if !fired {
		t.Fatal("expected the callback on the next change")
	}
}

func TestCellUnsubscribe(t *testing.T) {
	cell := NewCell(0)

	calls := 0
	unsubscribe := cell.Subscribe(func(int) { calls++ })
	cell.Set(1)
	unsubscribe()
	cell.Set(2)

	if calls != 1 {
		t.Fatalf("expected one call before unsubscribe, got %d", calls)
	}

	// Removing twice is a no-op.
	unsubscribe()
	cell.Set(3)
	if calls != 1 {
		t.Fatalf("expected no calls after unsubscribe, got %d", calls)
	}
}
