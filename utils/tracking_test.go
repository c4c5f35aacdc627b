package utils

import "testing"

func TestValidTrackingNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		// Plain identifiers
		{"bl number", "BL2024001", true},
		{"container number", "CONT002", true},
		{"chassis number", "CH003", true},
		{"lowercase", "cont002", true},
		{"digits only", "123456", true},
		{"letters only", "MAEU", true},
		{"single character", "A", true},

		// Rejected forms
		{"empty string", "", false},
		{"embedded bang", "BL!2024", false},
		{"hyphenated", "BL-2024", false},
		{"inner space", "BL 2024", false},
		{"leading space", " BL2024", false},
		{"underscore", "BL_2024", false},
		{"unicode letter", "BLÄ2024", false},
		{"sql-ish input", "1' OR '1'='1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidTrackingNumber(tt.input)
			if result != tt.expected {
				t.Errorf("ValidTrackingNumber(%q) = %v, expected %v",
					tt.input, result, tt.expected)
			}
		})
	}
}

func TestNormalizeTrackingNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no change", "BL2024001", "BL2024001"},
		{"leading and trailing spaces", "  BL2024001  ", "BL2024001"},
		{"tabs and newlines", "\tBL2024001\n", "BL2024001"},
		{"only whitespace", "   ", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeTrackingNumber(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeTrackingNumber(%q) = %q, expected %q",
					tt.input, result, tt.expected)
			}
		})
	}
}
