package enums_test

import (
	"testing"

	"github.com/xypherlux/storefront-backend/pkg/enums"
)

func TestParseOrderStatus(t *testing.T) {
	status, err := enums.ParseOrderStatus("pending")
	if err != nil {
		t.Fatalf("ParseOrderStatus returned error: %v", err)
	}
	if status != enums.OrderStatusPending {
		t.Fatalf("unexpected status: %s", status)
	}

	if _, err := enums.ParseOrderStatus("teleported"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestOrderStatusIsValid(t *testing.T) {
	for _, status := range []enums.OrderStatus{
		enums.OrderStatusPending,
		enums.OrderStatusProcessing,
		enums.OrderStatusShipped,
		enums.OrderStatusDelivered,
		enums.OrderStatusCancelled,
	} {
		if !status.IsValid() {
			t.Fatalf("expected %s to be valid", status)
		}
	}

	if enums.OrderStatus("returned").IsValid() {
		t.Fatal("expected unknown status to be invalid")
	}
}
