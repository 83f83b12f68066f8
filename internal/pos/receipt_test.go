package pos

import (
	"strings"
	"testing"

	"github.com/tillworks/tillpos/internal/domain"
)

func TestBuildReceipt(t *testing.T) {
	svc, _, _ := checkoutFixture(t)
	tx, err := svc.CompleteCheckout(domain.PayCash, 30)
	if err != nil {
		t.Fatal(err)
	}

	r := svc.BuildReceipt(tx)
	if r.ReceiptNo != tx.ID {
		t.Errorf("receipt no = %q, want %q", r.ReceiptNo, tx.ID)
	}
	if r.BusinessName != svc.Settings().BusinessName {
		t.Errorf("business name = %q", r.BusinessName)
	}
	if len(r.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(r.Lines))
	}
	if r.Lines[0].Quantity != 2 || r.Lines[0].Total != 20 {
		t.Errorf("first line = %+v", r.Lines[0])
	}
	if r.ChangeDue != 5.5 {
		t.Errorf("change due = %v, want 5.50", r.ChangeDue)
	}
	if r.Footer != svc.Settings().ReceiptFooter {
		t.Errorf("footer = %q", r.Footer)
	}
}

func TestReceiptRender(t *testing.T) {
	svc, _, _ := checkoutFixture(t)
	tx, err := svc.CompleteCheckout(domain.PayCash, 30)
	if err != nil {
		t.Fatal(err)
	}

	out := svc.BuildReceipt(tx).Render()
	for _, want := range []string{
		svc.Settings().BusinessName,
		tx.ID,
		"Widget",
		"Gadget",
		"Subtotal",
		"Discount",
		"TOTAL",
		"Change",
		svc.Settings().ReceiptFooter,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered receipt missing %q:\n%s", want, out)
		}
	}
}

func TestReceiptRenderCard(t *testing.T) {
	svc, _, _ := checkoutFixture(t)
	tx, err := svc.CompleteCheckout(domain.PayCard, 0)
	if err != nil {
		t.Fatal(err)
	}
	out := svc.BuildReceipt(tx).Render()
	if strings.Contains(out, "Change") {
		t.Error("card receipt shows change line")
	}
	if !strings.Contains(out, "Paid by") {
		t.Error("card receipt missing payment method line")
	}
}
