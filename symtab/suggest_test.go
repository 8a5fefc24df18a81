package symtab

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSuggestFindsCloseTypo(t *testing.T) {
	got := Suggest("coutn", []string{"count", "total", "sum"})
	require.Equal(t, "count", got)
}

func TestSuggestEmptyCandidates(t *testing.T) {
	require.Equal(t, "", Suggest("count", nil))
}

func TestSuggestEmptyWant(t *testing.T) {
	require.Equal(t, "", Suggest("", []string{"count"}))
}
