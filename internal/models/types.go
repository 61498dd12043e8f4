package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"
)

// BoolList stores a []bool as a JSON array column
type BoolList []bool

// Value implements driver.Valuer
func (l BoolList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]bool(l))
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode bool list")
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (l *BoolList) Scan(src interface{}) error {
	var out []bool
	if err := scanJSON(src, &out); err != nil {
		return errors.Wrap(err, "failed to decode bool list")
	}
	*l = out
	return nil
}

// StringList stores a []string as a JSON array column
type StringList []string

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode string list")
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (l *StringList) Scan(src interface{}) error {
	var out []string
	if err := scanJSON(src, &out); err != nil {
		return errors.Wrap(err, "failed to decode string list")
	}
	*l = out
	return nil
}

func scanJSON(src interface{}, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dst)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dst)
	default:
		return errors.Errorf("unsupported source type %T", src)
	}
}
