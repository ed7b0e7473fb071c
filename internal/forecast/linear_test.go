package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictZeroVectorReturnsIntercept(t *testing.T) {
	model := DefaultLinearModel()

	got, err := model.Predict(make([]float64, WindowSize))
	require.NoError(t, err)

	assert.Equal(t, 1.1008575337049606, got)
}

func TestPredictDeterministic(t *testing.T) {
	model := DefaultLinearModel()
	features := make([]float64, WindowSize)
	for i := range features {
		features[i] = float64(i)*1.7 - 12.3
	}

	first, err := model.Predict(features)
	require.NoError(t, err)
	second, err := model.Predict(features)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPredictKnownDotProduct(t *testing.T) {
	model := NewLinearModel([]float64{1, 2}, 0.5)

	got, err := model.Predict([]float64{3, 4})
	require.NoError(t, err)

	assert.Equal(t, 11.5, got)
}

func TestPredictShapeMismatch(t *testing.T) {
	model := DefaultLinearModel()

	for _, n := range []int{0, 13, 15} {
		_, err := model.Predict(make([]float64, n))

		var serr *ShapeMismatchError
		require.ErrorAs(t, err, &serr, "length %d", n)
		assert.Equal(t, n, serr.Got)
		assert.Equal(t, WindowSize, serr.Want)
	}
}

func TestNewLinearModelCopiesCoefficients(t *testing.T) {
	coeffs := []float64{1, 1}
	model := NewLinearModel(coeffs, 0)
	coeffs[0] = 100

	got, err := model.Predict([]float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, 2.0, got)
}
