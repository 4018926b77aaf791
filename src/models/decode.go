package models

import (
	"encoding/json"
	"errors"
	"io"
)

// DecodeStrict reads exactly one JSON value from r into v. Unknown fields
// and trailing data are errors, so a misspelt field is never read as zero.
func DecodeStrict(r io.Reader, v interface{}) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return err
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}
