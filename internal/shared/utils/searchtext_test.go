package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldSearchText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain ascii is lowercased", "Sourdough Basics", "sourdough basics"},
		{"french accents fold away", "Crème Brûlée au Chalumeau", "creme brulee au chalumeau"},
		{"uppercase accents fold too", "PÂTISSERIE Élémentaire", "patisserie elementaire"},
		{"cedilla and ligature survive folding", "Leçon de français", "lecon de francais"},
		{"already folded text is unchanged", "creme brulee", "creme brulee"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FoldSearchText(tt.input))
		})
	}
}
