package regressor

// Point is a single (x, y) pair on the original feature scale
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Results are the numeric outputs of a fit handed to renderers
type Results struct {
	// Line holds the fitted line evaluated at the minimum and maximum training feature
	Line        [2]Point `json:"line"`
	Predictions []Point  `json:"predictions"`
	Scores      *Scores  `json:"scores"`
}
