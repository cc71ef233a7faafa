package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aouyang1/go-regressor/models"
)

var (
	ErrParseRecord   = fmt.Errorf("unable to parse record, %w", models.ErrInvalidInput)
	ErrMissingColumn = fmt.Errorf("record needs a feature and a value column, %w", models.ErrInvalidInput)
)

// LoadCSVFile opens the file at path and loads it with LoadCSV
func LoadCSVFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadCSV(f)
}

// LoadCSV reads a headed csv where the first column is the feature and the second column the
// observed value, e.g. km,price.
func LoadCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoData
		}
		return nil, fmt.Errorf("unable to read header, %w", err)
	}

	var x, y []float64
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Join(ErrParseRecord, err)
		}
		line, _ := reader.FieldPos(0)
		if len(record) < 2 {
			return nil, fmt.Errorf("line %d has %d columns, %w", line, len(record), ErrMissingColumn)
		}

		xVal, err := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d feature %q, %w", line, record[0], ErrParseRecord)
		}
		yVal, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d value %q, %w", line, record[1], ErrParseRecord)
		}
		x = append(x, xVal)
		y = append(y, yVal)
	}

	return NewDataset(x, y)
}
