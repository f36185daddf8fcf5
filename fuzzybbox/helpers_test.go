package fuzzybbox

import (
	"encoding/csv"
	"os"
	"sort"
	"strconv"
	"testing"

	"gonum.org/v1/gonum/mat"
)

const (
	eps = 0.00001
)

func readCSVRecords(t testing.TB, filename string) [][]float64 {
	t.Helper()
	file, err := os.Open(filename)
	if err != nil {
		t.Fatalf("Can't open %s: %v", filename, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Can't read %s: %v", filename, err)
	}
	values := make([][]float64, len(records))
	for i, record := range records {
		values[i] = make([]float64, len(record))
		for j, field := range record {
			values[i][j], err = strconv.ParseFloat(field, 64)
			if err != nil {
				t.Fatalf("Can't parse %s at (%d, %d): %v", filename, i, j, err)
			}
		}
	}
	return values
}

func readMatrixCSV(t testing.TB, filename string) *mat.Dense {
	t.Helper()
	records := readCSVRecords(t, filename)
	m := mat.NewDense(len(records), len(records[0]), nil)
	for i, row := range records {
		m.SetRow(i, row)
	}
	return m
}

func readVectorCSV(t testing.TB, filename string) []float64 {
	t.Helper()
	return readCSVRecords(t, filename)[0]
}

// fixture is the ambiguous example: row 2 has columns 6 and 8 indistinguishable
type fixture struct {
	ious      *mat.Dense
	iousStd   *mat.Dense
	reference *mat.Dense
	scores    []float64
}

func loadFixture(t testing.TB) fixture {
	t.Helper()
	return fixture{
		ious:      readMatrixCSV(t, "testdata/ious.csv"),
		iousStd:   readMatrixCSV(t, "testdata/ious_std.csv"),
		reference: ReferenceFromProbabilities(readMatrixCSV(t, "testdata/pcost.csv")),
		scores:    readVectorCSV(t, "testdata/scores.csv"),
	}
}

func sortedRow(m mat.Matrix, i int) []float64 {
	row := mat.Row(nil, i, m)
	sort.Float64s(row)
	return row
}
