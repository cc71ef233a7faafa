package regressor

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Coefficients of a line y = Intercept + Slope * x
type Coefficients struct {
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
}

// Model represents a serializeable summary of a fit storing the options, coefficients on both
// feature scales and fit scores
type Model struct {
	Options    *Options      `json:"options"`
	Iterations int           `json:"iterations"`
	Weights    Coefficients  `json:"weights"`
	Scaled     Coefficients  `json:"scaled_weights"`
	Reference  *Coefficients `json:"least_squares_weights,omitempty"`
	Scores     *Scores       `json:"scores"`
	Results    *Results      `json:"results"`
}

// TablePrint writes a human readable summary of the model
func (m Model) TablePrint(w io.Writer, prefix, indent string) error {
	if _, err := fmt.Fprintf(w, "%sRegression:\n", prefix); err != nil {
		return err
	}

	if m.Options != nil {
		if _, err := fmt.Fprintf(w, "%s%sScale Divisor: %.3f\n", prefix, indentExpand(indent, 1), m.Options.ScaleDivisor); err != nil {
			return err
		}
		if m.Options.FitOptions != nil {
			if _, err := fmt.Fprintf(w, "%s%sLearning Rate: %g    Iterations: %d/%d\n",
				prefix, indentExpand(indent, 1),
				m.Options.FitOptions.LearningRate, m.Iterations, m.Options.FitOptions.Iterations); err != nil {
				return err
			}
		}
	}

	if m.Scores != nil {
		if _, err := fmt.Fprintf(w, "%s%sScores:\n", prefix, indentExpand(indent, 0)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s%sMAPE: %.3f    MSE: %.3f    R2: %.3f\n",
			prefix, indentExpand(indent, 1),
			m.Scores.MAPE,
			m.Scores.MSE,
			m.Scores.R2,
		); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "%s%sWeights:\n", prefix, indentExpand(indent, 0)); err != nil {
		return err
	}
	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tbl, "%s%sFit\tIntercept\tSlope\t\n", prefix, indentExpand(indent, 1)); err != nil {
		return err
	}
	rows := []struct {
		name string
		c    *Coefficients
	}{
		{"Descent", &m.Weights},
		{"Scaled", &m.Scaled},
		{"LeastSquares", m.Reference},
	}
	for _, row := range rows {
		if row.c == nil {
			continue
		}
		if _, err := fmt.Fprintf(tbl, "%s%s%s\t%.6g\t%.6g\t\n",
			prefix, indentExpand(indent, 1),
			row.name, row.c.Intercept, row.c.Slope); err != nil {
			return err
		}
	}
	if err := tbl.Flush(); err != nil {
		return err
	}

	if m.Results == nil || len(m.Results.Predictions) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "%s%sPredictions:\n", prefix, indentExpand(indent, 0)); err != nil {
		return err
	}
	tbl = tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	for _, p := range m.Results.Predictions {
		if _, err := fmt.Fprintf(tbl, "%s%s%.1f\t%.3f\t\n", prefix, indentExpand(indent, 1), p.X, p.Y); err != nil {
			return err
		}
	}
	return tbl.Flush()
}

func indentExpand(indent string, growth int) string {
	return strings.Repeat(indent, growth)
}
