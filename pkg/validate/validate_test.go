package validate

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorsCollectsAndFlattens(t *testing.T) {
	var errs Errors
	errs.Add(nil)
	require.NoError(t, errs.Err())

	errs.Add(NonNegative("a", -1))
	errs.Add(Errors{NonNegativeInt("b", -2), Probability("c", 2)})
	errs.Add(Ordered("d", 1, 0))

	err := errs.Err()
	require.Error(t, err)
	assert.Len(t, errs, 4)
	assert.Contains(t, err.Error(), "4 configuration errors")

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "a", cfgErr.Field)
}

func TestHelpersAcceptValidValues(t *testing.T) {
	assert.NoError(t, NonNegative("a", 0))
	assert.NoError(t, NonNegativeInt("b", 0))
	assert.NoError(t, Probability("c", 1))
	assert.NoError(t, Ordered("d", 1, 1))
}

func TestHelpersRejectNonFinite(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)

	tests := map[string]error{
		"finite NaN":          Finite("a", nan),
		"finite infinity":     Finite("a", -inf),
		"non-negative NaN":    NonNegative("a", nan),
		"non-negative inf":    NonNegative("a", inf),
		"probability NaN":     Probability("a", nan),
		"ordered NaN minimum": Ordered("a", nan, 1),
		"ordered inf maximum": Ordered("a", 0, inf),
	}

	for name, err := range tests {
		t.Run(name, func(t *testing.T) {
			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, "a", cfgErr.Field)
		})
	}

	assert.NoError(t, Finite("a", -3))
}

func TestSingleErrorMessage(t *testing.T) {
	err := Errors{&ConfigurationError{Field: "shape", Reason: "unknown shape"}}
	assert.Equal(t, `config "shape": unknown shape`, err.Error())
}
