package dataset

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
)

// GenerateX returns n evenly spaced feature values starting at start
func GenerateX(n int, start, step float64) []float64 {
	x := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		x = append(x, start+step*float64(i))
	}
	return x
}

type Series []float64

func (s Series) Add(src Series) Series {
	floats.Add(s, src)
	return s
}

func GenerateLineY(x []float64, slope, intercept float64) Series {
	y := make([]float64, 0, len(x))
	for _, v := range x {
		y = append(y, slope*v+intercept)
	}
	return Series(y)
}

// GenerateNoise returns n normally distributed values scaled by noiseScale. The same seed always
// produces the same series.
func GenerateNoise(n int, noiseScale float64, seed uint64) Series {
	r := rand.New(rand.NewPCG(seed, seed))
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, r.NormFloat64()*noiseScale)
	}
	return Series(y)
}
