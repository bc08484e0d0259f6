package interactive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/nftops/internal/domain/config"
)

func TestFuzzySearch(t *testing.T) {
	items := []string{"Auction_V1", "MarketplacePresetWithFee_V2", "Multicall_V1"}
	search := createFuzzySearchFunc(items)

	tests := []struct {
		input string
		want  []bool
	}{
		{"", []bool{true, true, true}},
		{"auction", []bool{true, false, false}},
		{"mpwf", []bool{false, true, false}},
		{"_v1", []bool{true, false, true}},
		{"zzz", []bool{false, false, false}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			for i := range items {
				assert.Equal(t, tt.want[i], search(tt.input, i), items[i])
			}
		})
	}
}

func TestSelectOptionNonInteractive(t *testing.T) {
	s := NewSelectorAdapter(&config.RuntimeConfig{NonInteractive: true})
	ctx := context.Background()

	idx, err := s.SelectOption(ctx, "Select", []string{"only"})
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	_, err = s.SelectOption(ctx, "Select", []string{"a", "b"})
	assert.ErrorContains(t, err, "non-interactive")

	_, err = s.SelectOption(ctx, "Select", nil)
	assert.Error(t, err)
}

func TestConfirmSkipped(t *testing.T) {
	ctx := context.Background()

	ok, err := NewSelectorAdapter(&config.RuntimeConfig{Yes: true}).Confirm(ctx, "Deploy?")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = NewSelectorAdapter(&config.RuntimeConfig{NonInteractive: true}).Confirm(ctx, "Deploy?")
	require.NoError(t, err)
	assert.True(t, ok)
}
