package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateID(t *testing.T) {
	t.Run("KnownVectors", func(t *testing.T) {
		// Derivable by hand: rolling hash over "Inks_Black".
		require.Equal(t, "32d4568d", GenerateID("Inks", "Black"))
		require.Equal(t, "2fe89ff4", GenerateID("Inks", "Blue"))
		require.Equal(t, "592405a", GenerateID("Stationery", "A4 Paper"))
	})

	t.Run("Deterministic", func(t *testing.T) {
		first := GenerateID("Inks", "Black")
		for i := 0; i < 100; i++ {
			require.Equal(t, first, GenerateID("Inks", "Black"))
		}
	})

	t.Run("TrimsSurroundingWhitespace", func(t *testing.T) {
		require.Equal(t, GenerateID("Inks", "Black"), GenerateID("  Inks  ", "Black\t"))
		require.Equal(t, GenerateID("Inks", "Black"), GenerateID("Inks", " Black "))
	})

	t.Run("DistinctInputsUsuallyDiffer", func(t *testing.T) {
		require.NotEqual(t, GenerateID("Inks", "Black"), GenerateID("Inks", "Blue"))
		require.NotEqual(t, GenerateID("A", "B"), GenerateID("B", "A"))
	})

	t.Run("TotalOnEmptyInputs", func(t *testing.T) {
		require.NotEmpty(t, GenerateID("", ""))
	})
}
