package format

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain integer", "1234", "$1,234"},
		{"with cents", "1234.5", "$1,234.50"},
		{"already formatted", "$12,345", "$12,345"},
		{"millions", "1234567", "$1,234,567"},
		{"small", "7", "$7"},
		{"negative", "-50", "-$50"},
		{"empty", "", NotAvailable},
		{"letters only", "abc", NotAvailable},
		{"malformed", "1.2.3", NotAvailable},
		{"rounding carries", "9.999", "$10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.raw); got != tt.want {
				t.Errorf("Currency(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"2023-05-01", "05/01/2023"},
		{"2023-05-01T10:00:00Z", "05/01/2023"},
		{"2023-05", "05/2023"},
		{"", NotAvailable},
		{"sometime last year", "sometime last year"},
	}

	for _, tt := range tests {
		if got := Date(tt.raw); got != tt.want {
			t.Errorf("Date(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"11", "Current"},
		{"97", "Charge-off"},
		{"da", "Delete Account"},
		{"42", "Status 42"},
		{"", NotAvailable},
	}

	for _, tt := range tests {
		if got := Status(tt.code); got != tt.want {
			t.Errorf("Status(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestMaskAccount(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"1234567890", "******7890"},
		{"XXXX1234", "XXXX1234"},
		{"123", "123"},
		{"€€1", "€€1"},
		{"№45678", "**5678"},
		{"", NotAvailable},
	}

	for _, tt := range tests {
		if got := MaskAccount(tt.raw); got != tt.want {
			t.Errorf("MaskAccount(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestInitials(t *testing.T) {
	if got := Initials("capital one bank"); got != "CO" {
		t.Errorf("Initials = %q, want CO", got)
	}
	if got := Initials("  "); got != NotAvailable {
		t.Errorf("Initials(blank) = %q, want %q", got, NotAvailable)
	}
}

func TestUtilization(t *testing.T) {
	if got := Utilization("$500", "$1,000"); got != "50%" {
		t.Errorf("Utilization = %q, want 50%%", got)
	}
	if got := Utilization("500", "0"); got != NotAvailable {
		t.Errorf("Utilization with zero limit = %q, want %q", got, NotAvailable)
	}
}

func TestPaymentPattern(t *testing.T) {
	if got := PaymentPattern("CCCCCC"); got != "No lates" {
		t.Errorf("PaymentPattern = %q, want No lates", got)
	}
	if got := PaymentPattern("C1C12C"); got != "30d:2 60d:1" {
		t.Errorf("PaymentPattern = %q, want 30d:2 60d:1", got)
	}
}
