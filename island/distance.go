package island

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// DistanceRow is one directed entry of the precomputed distance table
type DistanceRow struct {
	From, To Point
	Distance int
}

type pointPair struct {
	from, to Point
}

// DistanceTable is a read-only travel cost lookup between map points
type DistanceTable struct {
	costs map[pointPair]int
}

// NewDistanceTable indexes rows; a later row for the same pair wins
func NewDistanceTable(rows []DistanceRow) *DistanceTable {
	t := &DistanceTable{costs: make(map[pointPair]int, len(rows))}
	for _, r := range rows {
		t.costs[pointPair{r.From, r.To}] = r.Distance
	}
	return t
}

// Len returns the number of stored directed pairs
func (t *DistanceTable) Len() int {
	return len(t.costs)
}

// Distance returns the travel cost between two points.
// Identical points cost zero; either stored direction satisfies the lookup.
func (t *DistanceTable) Distance(a, b Point) (int, error) {
	if a == b {
		return 0, nil
	}
	if d, ok := t.costs[pointPair{a, b}]; ok {
		return d, nil
	}
	if d, ok := t.costs[pointPair{b, a}]; ok {
		return d, nil
	}
	return 0, &LookupNotFoundError{Table: "distance", Key: a.String() + "->" + b.String()}
}

// LoadDistances decodes headerless CSV rows of x1,y1,x2,y2,distance
func LoadDistances(r io.Reader) (*DistanceTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 5
	cr.ReuseRecord = true

	var rows []DistanceRow
	for line := 1; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("distance csv: %w", err)
		}

		var fields [5]int
		for i, s := range record {
			v, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("distance csv line %d field %d: %w", line, i+1, err)
			}
			fields[i] = v
		}
		rows = append(rows, DistanceRow{
			From:     Point{fields[0], fields[1]},
			To:       Point{fields[2], fields[3]},
			Distance: fields[4],
		})
	}

	return NewDistanceTable(rows), nil
}

// WriteDistances encodes rows in the LoadDistances format
func WriteDistances(w io.Writer, rows []DistanceRow) error {
	cw := csv.NewWriter(w)
	record := make([]string, 5)
	for _, r := range rows {
		record[0] = strconv.Itoa(r.From.X)
		record[1] = strconv.Itoa(r.From.Y)
		record[2] = strconv.Itoa(r.To.X)
		record[3] = strconv.Itoa(r.To.Y)
		record[4] = strconv.Itoa(r.Distance)
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
