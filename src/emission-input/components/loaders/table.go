package loaders

import (
	"fmt"

	"wastecarbon-go/src/models"
	"wastecarbon-go/src/utils"
)

// columnTable is one columnar table of a coefficient document: a key column
// plus numeric columns, all of identical length.
type columnTable struct {
	name    string
	indexer *models.Indexer
	columns map[string][]float64
}

func readColumnTable(doc *utils.JsonDict, table string, keyColumn string, numericColumns ...string) (*columnTable, error) {
	if !doc.Exists(table) {
		return nil, fmt.Errorf("%w: missing table %q", models.ErrMalformedTable, table)
	}
	keys, ok := doc.LookupStringList(table + "." + keyColumn)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s must be an array of strings", models.ErrMalformedTable, table, keyColumn)
	}
	indexer, err := models.NewIndexer(keys)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", table, keyColumn, err)
	}

	columns := make(map[string][]float64, len(numericColumns))
	for _, column := range numericColumns {
		values, ok := doc.LookupNumericList(table + "." + column)
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s must be an array of numbers", models.ErrMalformedTable, table, column)
		}
		if len(values) != len(keys) {
			return nil, fmt.Errorf(
				"%w: %s.%s has %d rows, %s has %d",
				models.ErrMalformedTable, table, column, len(values), keyColumn, len(keys),
			)
		}
		columns[column] = values
	}
	return &columnTable{name: table, indexer: indexer, columns: columns}, nil
}

func (c *columnTable) rows() int {
	return c.indexer.Len()
}

func (c *columnTable) value(column string, row int) float64 {
	return c.columns[column][row]
}

func (c *columnTable) key(row int) string {
	return c.indexer.IndexToValue(row)
}

// checkRange rejects any value of the columns outside [low, high].
func (c *columnTable) checkRange(low float64, high float64, columns ...string) error {
	for _, column := range columns {
		for row, v := range c.columns[column] {
			if v < low || v > high {
				return fmt.Errorf(
					"%w: %s.%s[%s]=%v outside [%v, %v]",
					models.ErrMalformedTable, c.name, column, c.key(row), v, low, high,
				)
			}
		}
	}
	return nil
}

func (c *columnTable) checkNonNegative(columns ...string) error {
	for _, column := range columns {
		for row, v := range c.columns[column] {
			if v < 0 {
				return fmt.Errorf("%w: %s.%s[%s]=%v is negative", models.ErrMalformedTable, c.name, column, c.key(row), v)
			}
		}
	}
	return nil
}
