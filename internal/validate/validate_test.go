package validate

import "testing"

func TestEmail(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"ana@example.com", true},
		{"  ana@example.com  ", true},
		{"ana@example", false},
		{"@example.com", false},
		{"", false},
		{"this-address-is-way-too-long-for-a-login-form-field-xxxxx@example.com", false},
	}
	for _, tc := range cases {
		if _, ok := Email(tc.in); ok != tc.ok {
			t.Errorf("Email(%q) ok = %v, want %v", tc.in, ok, tc.ok)
		}
	}
}

func TestID(t *testing.T) {
	if _, ok := ID("prod-42_A"); !ok {
		t.Errorf("valid id rejected")
	}
	for _, bad := range []string{"", "  ", "has space", "semi;colon", "../../etc"} {
		if _, ok := ID(bad); ok {
			t.Errorf("ID(%q) accepted", bad)
		}
	}
}

func TestName(t *testing.T) {
	if got, ok := Name("  Rex  "); !ok || got != "Rex" {
		t.Errorf("Name = (%q, %v)", got, ok)
	}
	if _, ok := Name(""); ok {
		t.Errorf("empty name accepted")
	}
}

func TestQty(t *testing.T) {
	cases := map[string]int{
		"3":   3,
		"0":   1,
		"-5":  1,
		"abc": 1,
		"":    1,
		"50":  50,
		"999": 50,
	}
	for in, want := range cases {
		if got := Qty(in); got != want {
			t.Errorf("Qty(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestDate(t *testing.T) {
	if _, ok := Date("2026-09-10"); !ok {
		t.Errorf("valid date rejected")
	}
	for _, bad := range []string{"2026-13-01", "10/09/2026", "tomorrow", ""} {
		if _, ok := Date(bad); ok {
			t.Errorf("Date(%q) accepted", bad)
		}
	}
}

func TestTimeOfDay(t *testing.T) {
	for _, good := range []string{"00:00", "09:30", "23:59"} {
		if _, ok := TimeOfDay(good); !ok {
			t.Errorf("TimeOfDay(%q) rejected", good)
		}
	}
	for _, bad := range []string{"24:00", "9:30", "12:60", "noon", ""} {
		if _, ok := TimeOfDay(bad); ok {
			t.Errorf("TimeOfDay(%q) accepted", bad)
		}
	}
}

func TestPaymentMethod(t *testing.T) {
	if got, ok := PaymentMethod(" card "); !ok || got != "CARD" {
		t.Errorf("PaymentMethod = (%q, %v)", got, ok)
	}
	if _, ok := PaymentMethod("BITCOIN"); ok {
		t.Errorf("unknown method accepted")
	}
}

func TestPassword(t *testing.T) {
	if Password("short") {
		t.Errorf("short password accepted")
	}
	if !Password("longenough") {
		t.Errorf("valid password rejected")
	}
}
