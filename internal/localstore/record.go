package localstore

import (
	"fmt"
	"strconv"
)

// ID is the row id as the opaque string callers pass back to Update and Remove.
func (r Record) ID() string {
	return r.String("id")
}

// String reads a column as text. NULL and missing columns read as "".
func (r Record) String(col string) string {
	switch v := r[col].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprint(v)
	}
}

// Bool reads a 0/1 column.
func (r Record) Bool(col string) bool {
	switch v := r[col].(type) {
	case int64:
		return v != 0
	case bool:
		return v
	default:
		return false
	}
}
