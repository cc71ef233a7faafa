package models

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// OLSRegression computes the exact least squares line using QR factorization of the [1 x] design
// matrix. It serves as the reference optimum that gradient descent approaches.
type OLSRegression struct {
	intercept float64
	coef      float64
}

func NewOLSRegression() *OLSRegression {
	return &OLSRegression{}
}

func (o *OLSRegression) Fit(x, y []float64) error {
	if err := validateTrainingData(x, y); err != nil {
		return err
	}
	m := len(x)
	if m < 2 {
		return ErrInsufficientPoints
	}

	ones := make([]float64, m)
	floats.AddConst(1.0, ones)

	var design mat.Dense
	design.Stack(mat.NewDense(1, m, ones), mat.NewDense(1, m, x))
	X := design.T()
	Y := mat.NewDense(1, m, y)

	qr := new(mat.QR)
	qr.Factorize(X)

	q := new(mat.Dense)
	r := new(mat.Dense)

	qr.QTo(q)
	qr.RTo(r)
	yq := new(mat.Dense)
	yq.Mul(Y, q)

	// constant x leaves the slope column in the span of the intercept column
	eps := 1e-10 * math.Max(1.0, floats.Norm(x, 2))

	n := 2
	c := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		if math.Abs(r.At(i, i)) < eps {
			return ErrSingularDesign
		}
		c[i] = yq.At(0, i)
		for j := i + 1; j < n; j++ {
			c[i] -= c[j] * r.At(i, j)
		}
		c[i] /= r.At(i, i)
	}

	o.intercept = c[0]
	o.coef = c[1]
	return nil
}

func (o *OLSRegression) Predict(x float64) float64 {
	return o.coef*x + o.intercept
}

func (o *OLSRegression) PredictAll(x []float64) []float64 {
	res := make([]float64, len(x))
	floats.ScaleTo(res, o.coef, x)
	floats.AddConst(o.intercept, res)
	return res
}

func (o *OLSRegression) Score(x, y []float64) (float64, error) {
	if err := validateTrainingData(x, y); err != nil {
		return 0.0, err
	}
	return stat.RSquaredFrom(o.PredictAll(x), y, nil), nil
}

func (o *OLSRegression) Intercept() float64 {
	return o.intercept
}

func (o *OLSRegression) Coef() float64 {
	return o.coef
}
