package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

type parsedInput struct {
	X        [][]float64
	Y        [][]float64
	VarNames []string
}

// parse csv file, detect if first row is header/has var names. The last
// yCols columns are the target variables, everything before them is input.
// yCols may be zero for feature-only prediction input.
func parseCSV(r io.Reader, yCols int) (*parsedInput, error) {
	if yCols < 0 {
		return nil, errors.New("target column count cannot be negative")
	}

	reader := csv.NewReader(r)

	p := &parsedInput{}

	// grab first row
	row, err := reader.Read()
	if err != nil {
		return p, err
	}
	if len(row) < yCols+1 {
		return p, errors.New("csv needs at least one input column and the target columns")
	}

	// check if it's a header row
	varNames, err := parseHeader(row)
	if err == nil {
		p.VarNames = varNames
	} else {
		// use X1, X2,...Xn, Y1,...Ym for var names
		for i := range row[:len(row)-yCols] {
			p.VarNames = append(p.VarNames, fmt.Sprintf("X%d", i+1))
		}
		for i := 0; i < yCols; i++ {
			p.VarNames = append(p.VarNames, fmt.Sprintf("Y%d", i+1))
		}

		// parse row
		if err := p.parseRow(row, yCols); err != nil {
			return p, err
		}
	}

	// keep reading rows until EOF
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return p, err
		}

		if err := p.parseRow(row, yCols); err != nil {
			return p, err
		}
	}

	if len(p.X) == 0 {
		return p, errors.New("csv has no data rows")
	}

	return p, nil
}

func (p *parsedInput) parseRow(row []string, yCols int) error {
	if len(row) < yCols+1 {
		return errors.New("row is missing columns")
	}

	split := len(row) - yCols

	xi, err := parseVals(row[:split])
	if err != nil {
		return err
	}
	p.X = append(p.X, xi)

	if yCols > 0 {
		yi, err := parseVals(row[split:])
		if err != nil {
			return err
		}
		p.Y = append(p.Y, yi)
	}

	return nil
}

func parseVals(cols []string) ([]float64, error) {
	vals := make([]float64, 0, len(cols))
	for _, val := range cols {
		fv, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return vals, err
		}
		vals = append(vals, fv)
	}
	return vals, nil
}

func parseHeader(row []string) ([]string, error) {
	colNames := []string{}

	// we only accept numeric values, so the first row is a header row
	// if none of its values parse as a number
	for _, val := range row {
		_, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return colNames, errors.New("not a header row")
		}

		colNames = append(colNames, val)
	}

	return colNames, nil
}

// splitTrainTest carves the parsed rows into a leading training block and a
// trailing test block. ratio is the training fraction; both blocks keep at
// least one row.
func splitTrainTest(p *parsedInput, ratio float64) (trainX, trainY, testX, testY [][]float64) {
	n := len(p.X)
	split := int(float64(n) * ratio)
	if split < 1 {
		split = 1
	}
	if split >= n {
		split = n - 1
	}
	return p.X[:split], p.Y[:split], p.X[split:], p.Y[split:]
}
