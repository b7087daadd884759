package configurator_test

import (
	"testing"

	"autoquote/internal/configurator"

	"github.com/stretchr/testify/assert"
)

func TestAmountFromInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain integer", "1000", "1000"},
		{"decimal point", "1234.56", "1234.56"},
		{"comma decimal", "1234,56", "1234.56"},
		{"thousand separators", "1.234,56", "1234.56"},
		{"whitespace", "  42.5  ", "42.5"},
		{"empty", "", "0"},
		{"garbage", "abc", "0"},
		{"mixed garbage", "12a4", "0"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := configurator.AmountFromInput(tt.input)
			assert.True(t, got.Equal(dec(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestQuantityFromInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"normal", "3", 3},
		{"one", "1", 1},
		{"zero floors to one", "0", 1},
		{"negative floors to one", "-2", 1},
		{"garbage defaults to one", "two", 1},
		{"empty defaults to one", "", 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, configurator.QuantityFromInput(tt.input))
		})
	}
}
