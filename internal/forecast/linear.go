package forecast

// LinearModel evaluates a fixed-coefficient linear predictor: the dot product
// of a feature vector with the coefficients, plus an intercept. It holds no
// mutable state and is safe for concurrent use.
type LinearModel struct {
	coefficients []float64
	intercept    float64
}

// NewLinearModel builds a LinearModel from its parameters. The coefficient
// slice is copied; the model never mutates after construction.
func NewLinearModel(coefficients []float64, intercept float64) LinearModel {
	c := make([]float64, len(coefficients))
	copy(c, coefficients)
	return LinearModel{coefficients: c, intercept: intercept}
}

// Predict computes sum(features[i] * coefficients[i]) + intercept. The
// feature vector length must equal the coefficient count exactly; there is
// no truncation or padding. No rounding is applied.
func (m LinearModel) Predict(features []float64) (float64, error) {
	if len(features) != len(m.coefficients) {
		return 0, &ShapeMismatchError{Got: len(features), Want: len(m.coefficients)}
	}

	sum := m.intercept
	for i, f := range features {
		sum += f * m.coefficients[i]
	}
	return sum, nil
}

// defaultCoefficients are the shipped ridge parameters of the embedded model,
// fitted offline against the minimum-temperature column of the window,
// earliest day first.
var defaultCoefficients = []float64{
	-0.0035735961824473,
	0.0096942347128355,
	-0.0144061126179871,
	0.0211247893120571,
	-0.0033899448500301,
	0.0094930068818915,
	-0.0186590364095621,
	0.0246198389721347,
	-0.0057314209133927,
	0.0181337435182929,
	0.0322013821648322,
	0.0745965782419304,
	0.1850930070258621,
	0.6560564971389836,
}

const defaultIntercept = 1.1008575337049606

// DefaultLinearModel returns the embedded model with its shipped parameters.
func DefaultLinearModel() LinearModel {
	return NewLinearModel(defaultCoefficients, defaultIntercept)
}
