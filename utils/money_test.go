package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriceCents(t *testing.T) {
	cases := map[string]int64{
		"$25.00":    2500,
		"0.25":      25,
		"$1,299.99": 129999,
		" 3 ":       300,
		"":          0,
		"$0.005":    1,
	}
	for in, want := range cases {
		got, err := ParsePriceCents(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParsePriceCentsRejectsGarbage(t *testing.T) {
	_, err := ParsePriceCents("free")
	assert.Error(t, err)

	_, err = ParsePriceCents("-1.00")
	assert.Error(t, err)
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "0.00", FormatCents(0))
	assert.Equal(t, "25.50", FormatCents(2550))
	assert.Equal(t, "$1299.99", FormatUSD(129999))
}
