package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"
)

// JSONMap is a jsonb object column. A NULL column scans as an empty map.
type JSONMap map[string]interface{}

func (j JSONMap) Value() (driver.Value, error) {
	if j == nil {
		return "{}", nil
	}
	return valueJSON(j)
}

func (j *JSONMap) Scan(value interface{}) error {
	*j = JSONMap{}
	return scanJSON(value, j)
}

func scanJSON(value interface{}, target interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.Errorf("unsupported json column type %T", value)
	}
	return errors.Wrap(json.Unmarshal(raw, target), "decode json column")
}

func valueJSON(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "encode json column")
	}
	return string(b), nil
}
