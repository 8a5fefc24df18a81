package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPositionStringFormat(t *testing.T) {
	p := Position{Filename: "main.onyx", Line: 3, Column: 7}
	require.Equal(t, "main.onyx:3:7", p.String())
}

func TestPositionStringUnknown(t *testing.T) {
	require.Equal(t, "<unknown>", Position{}.String())
}

func TestPositionIsValid(t *testing.T) {
	require.False(t, Position{}.IsValid())
	require.True(t, Position{Filename: "a.onyx"}.IsValid())
}

func TestInternalPositionIsValid(t *testing.T) {
	require.True(t, InternalPosition.IsValid())
	require.Equal(t, "<compiler internal>", InternalPosition.Filename)
}

func TestKindString(t *testing.T) {
	require.Equal(t, "Function", KindFunction.String())
	require.Equal(t, "Unknown", Kind(999).String())
}
