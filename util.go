package regressor

import (
	"math"

	"github.com/aouyang1/go-regressor/dataset"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// LineSeries generates an echart multi-line chart indexed by position, e.g. cost by iteration. Each
// series is plotted against its own index.
func LineSeries(title string, seriesName []string, y [][]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	var maxLen int
	for _, series := range y {
		maxLen = max(maxLen, len(series))
	}
	idx := make([]int, 0, maxLen)
	for i := 0; i < maxLen; i++ {
		idx = append(idx, i+1)
	}

	lineData := make([][]opts.LineData, len(y))
	for i := 0; i < len(y); i++ {
		lineData[i] = make([]opts.LineData, 0, len(y[i]))
		for j := 0; j < len(y[i]); j++ {
			lineData[i] = append(lineData[i], opts.LineData{Value: y[i][j]})
		}
	}

	line = line.SetXAxis(idx)
	for i, series := range seriesName {
		if i >= len(lineData) {
			break
		}
		line = line.AddSeries(series, lineData[i])
	}
	return line
}

// ScatterFit generates an echart scatter chart of the training data and the predictions with the
// fitted line overlaid through its two endpoints
func ScatterFit(title string, trainingData *dataset.Dataset, res *Results) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
		charts.WithXAxisOpts(
			opts.XAxis{
				Name: "Mileage",
				Type: "value",
			},
		),
		charts.WithYAxisOpts(
			opts.YAxis{
				Name: "Price",
				Type: "value",
			},
		),
	)

	scatterDataActual := make([]opts.ScatterData, 0, len(trainingData.X))
	for i := 0; i < len(trainingData.X); i++ {
		if math.IsNaN(trainingData.X[i]) || math.IsNaN(trainingData.Y[i]) {
			continue
		}
		scatterDataActual = append(scatterDataActual, opts.ScatterData{Value: []interface{}{trainingData.X[i], trainingData.Y[i]}})
	}

	scatterDataPrediction := make([]opts.ScatterData, 0, len(res.Predictions))
	for _, p := range res.Predictions {
		scatterDataPrediction = append(scatterDataPrediction, opts.ScatterData{Value: []interface{}{p.X, p.Y}})
	}

	lineDataFit := make([]opts.LineData, 0, len(res.Line))
	for _, p := range res.Line {
		lineDataFit = append(lineDataFit, opts.LineData{Value: []interface{}{p.X, p.Y}})
	}

	line := charts.NewLine()
	line.AddSeries("Linear regression", lineDataFit,
		charts.WithLineStyleOpts(opts.LineStyle{Width: 1}),
	)

	scatter.AddSeries("Initial Data", scatterDataActual).
		AddSeries("Prediction", scatterDataPrediction,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "red"}),
		)
	scatter.Overlap(line)
	return scatter
}
