package slots

import (
	"testing"
	"time"

	"kasmoni-app-go/internal/domain/month"
)

func TestFormValueRoundTrip(t *testing.T) {
	monthDate := month.Of(2024, time.June)
	value := FormValue(3, 7, monthDate)
	if value != "3_7_2024-06" {
		t.Fatalf("unexpected form value %q", value)
	}

	ref, err := ParseRef(value)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	groupID, memberID, parsedMonth, ok := ref.Composite()
	if !ok {
		t.Fatal("expected composite ref")
	}
	if groupID != 3 || memberID != 7 || parsedMonth != monthDate {
		t.Fatalf("round trip mismatch: %d %d %s", groupID, memberID, parsedMonth)
	}
}

func TestParseRefNumericID(t *testing.T) {
	ref, err := ParseRef("42")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ref.IsComposite() {
		t.Fatal("expected resolved ref")
	}
	slotID, ok := ref.SlotID()
	if !ok || slotID != 42 {
		t.Fatalf("expected slot id 42, got %d", slotID)
	}
}

func TestParseRefRejectsGarbage(t *testing.T) {
	for _, value := range []string{"", "abc", "1_2", "1_x_2024-06", "1_2_June"} {
		if _, err := ParseRef(value); err == nil {
			t.Fatalf("expected error for %q", value)
		}
	}
}

func TestMatchingKeys(t *testing.T) {
	monthDate := month.Of(2024, time.June)
	if got := SlotKey(3, 7, monthDate); got != "3-7-2024-06" {
		t.Fatalf("unexpected slot key %q", got)
	}
	if got := PaymentKey(7, 3, 42); got != "7-3-42" {
		t.Fatalf("unexpected payment key %q", got)
	}
}
