package utils

import (
	"errors"

	"github.com/tidwall/gjson"
)

var ErrInvalidJson = errors.New("invalid json document")

type JsonDict struct {
	JsonString string
}

func NewJsonDict(data []byte) (*JsonDict, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJson
	}
	return &JsonDict{JsonString: string(data)}, nil
}

func (d *JsonDict) Exists(key string) bool {
	return gjson.Get(d.JsonString, key).Exists()
}

// LookupNumeric reports whether key holds a JSON number.
func (d *JsonDict) LookupNumeric(key string) (float64, bool) {
	result := gjson.Get(d.JsonString, key)
	if result.Type != gjson.Number {
		return 0, false
	}
	return result.Float(), true
}

func resultListToNumericList(resultArray []gjson.Result) []float64 {
	resultFloat := make([]float64, len(resultArray))
	for i, n := range resultArray {
		resultFloat[i] = n.Float()
	}
	return resultFloat
}

// LookupNumericList fails when the key is missing, is not an array or holds
// a non-numeric element.
func (d *JsonDict) LookupNumericList(key string) ([]float64, bool) {
	result := gjson.Get(d.JsonString, key)
	if !result.IsArray() {
		return nil, false
	}
	resultArray := result.Array()
	for _, element := range resultArray {
		if element.Type != gjson.Number {
			return nil, false
		}
	}
	return resultListToNumericList(resultArray), true
}

func (d *JsonDict) LookupStringList(key string) ([]string, bool) {
	result := gjson.Get(d.JsonString, key)
	if !result.IsArray() {
		return nil, false
	}
	resultArray := result.Array()
	resultStrings := make([]string, len(resultArray))
	for i, element := range resultArray {
		if element.Type != gjson.String {
			return nil, false
		}
		resultStrings[i] = element.Str
	}
	return resultStrings, true
}

func (d *JsonDict) GetDict(key string, defaultValue map[string]JsonDict) map[string]JsonDict {
	result := gjson.Get(d.JsonString, key)
	returnResult := make(map[string]JsonDict)
	if result.IsObject() {
		for key, value := range result.Map() {
			returnResult[key] = JsonDict{value.Raw}
		}
		return returnResult
	}
	return defaultValue
}
