package simulator

import "testing"

func TestExtractSlot(t *testing.T) {
	cases := []struct {
		name string
		text string
		slot SlotType
		want string
	}{
		{"Name from my name is", "My name is Wesley", SlotName, "Wesley"},
		{"Name from i am", "I am Ana", SlotName, "Ana"},
		{"Name from contraction", "I'm Carlos", SlotName, "Carlos"},
		{"Name in Portuguese", "meu nome é João", SlotName, "João"},
		{"Name fallback last word", "good evening it is Pedro", SlotName, "Pedro"},
		{"Name too short to guess", "ok", SlotName, ""},
		{"Reservation yes", "Yes, I have a reservation", SlotReservation, "yes"},
		{"Reservation no", "No, I don't", SlotReservation, "no"},
		{"Reservation unclear", "maybe", SlotReservation, ""},
		{"Dates presence marker", "three nights please", SlotDates, "extracted"},
		{"Dates absence", "I like this hotel", SlotDates, ""},
		{"Payment credit card", "credit card", SlotPayment, "credit_card"},
		{"Payment cash", "cash, please", SlotPayment, "cash"},
		{"Payment debit", "debit", SlotPayment, "debit_card"},
		{"View beach", "a beach view please", SlotView, "beach"},
		{"View city", "city view", SlotView, "city"},
		{"Bed king", "a king bed", SlotBed, "king"},
		{"Bed twin", "two singles please", SlotBed, "twin"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractSlot(tc.text, tc.slot); got != tc.want {
				t.Errorf("ExtractSlot(%q, %q) = %q, want %q", tc.text, tc.slot, got, tc.want)
			}
		})
	}
}
