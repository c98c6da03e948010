package rating

import (
	_ "embed"
	"encoding/json"
	"strconv"
)

//go:embed divetable.json
var diveTableJSON []byte

// diveEntry is one dive in the difficulty table: display name plus degree
// of difficulty keyed by apparatus height.
type diveEntry struct {
	Name string             `json:"name"`
	DD   map[string]float64 `json:"dd"`
}

// DiveTable maps a full dive number (including position letter) to its
// difficulty data.
type DiveTable map[string]diveEntry

// DefaultDiveTable returns the embedded difficulty table.
func DefaultDiveTable() DiveTable {
	var table DiveTable
	if err := json.Unmarshal(diveTableJSON, &table); err != nil {
		panic("embedded dive table is malformed: " + err.Error())
	}
	return table
}

// DD returns the degree of difficulty for a dive number at a height, or 0
// when the table has no entry. Whole-number heights key as integers ("3",
// not "3.0"); fractional heights key verbatim ("7.5").
func (t DiveTable) DD(number string, height float64) float64 {
	entry, ok := t[number]
	if !ok {
		return 0
	}

	var key string
	if height == float64(int(height)) {
		key = strconv.Itoa(int(height))
	} else {
		key = strconv.FormatFloat(height, 'f', -1, 64)
	}

	return entry.DD[key]
}

// Name returns the dive's display name, or "" when unknown.
func (t DiveTable) Name(number string) string {
	return t[number].Name
}
