package models

import (
	"fmt"

	"wastecarbon-go/src/utils"
)

// Indexer maps normalised table keys onto their row position in a columnar
// coefficient table.
type Indexer struct {
	valueIndices  map[string]int
	indicesValues map[int]string
}

// NewIndexer normalises every key and rejects duplicates.
func NewIndexer(keys []string) (*Indexer, error) {
	valueIndices := make(map[string]int, len(keys))
	for index, key := range keys {
		normalized := utils.NormalizeKey(key)
		if len(normalized) == 0 {
			return nil, fmt.Errorf("%w: empty key at row %d", ErrMalformedTable, index)
		}
		if previous, exists := valueIndices[normalized]; exists {
			return nil, fmt.Errorf("%w: %q at rows %d and %d", ErrDuplicateKey, normalized, previous, index)
		}
		valueIndices[normalized] = index
	}
	return &Indexer{
		valueIndices:  valueIndices,
		indicesValues: indicesToValues(valueIndices),
	}, nil
}

func indicesToValues(valueIndices map[string]int) map[int]string {
	result := make(map[int]string, len(valueIndices))
	for value, index := range valueIndices {
		result[index] = value
	}
	return result
}

// ValueToIndex looks up the row of a key. The key is normalised first.
func (in *Indexer) ValueToIndex(value string) (int, bool) {
	index, ok := in.valueIndices[utils.NormalizeKey(value)]
	return index, ok
}

func (in *Indexer) IndexToValue(index int) string {
	return in.indicesValues[index]
}

func (in *Indexer) Len() int {
	return len(in.valueIndices)
}

// Values returns the normalised keys in row order.
func (in *Indexer) Values() []string {
	values := make([]string, len(in.indicesValues))
	for index, value := range in.indicesValues {
		values[index] = value
	}
	return values
}
