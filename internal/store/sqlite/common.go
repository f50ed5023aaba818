package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"

	"timeclock/internal/errors"
)

// HandleStorageError converts database errors to structured app errors
func HandleStorageError(operation string, err error) error {
	return errors.NewStorageError(operation, err)
}

// QueryMultiple executes a query returning multiple rows and scans them with
// the supplied scan function.
func QueryMultiple[T any](ctx context.Context, db *sql.DB, query string, scan func(Rows) ([]T, error), operation string, args ...interface{}) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, HandleStorageError("query "+operation, err)
	}
	defer rows.Close()

	result, err := scan(rows)
	if err != nil {
		return nil, HandleStorageError("scan "+operation, err)
	}
	return result, nil
}

// EncodeStringList encodes a string list as the JSON column representation.
func EncodeStringList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeStringList decodes the JSON column representation of a string list.
// An empty column reads as no values.
func DecodeStringList(column string) ([]string, error) {
	if column == "" || column == "[]" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(column), &values); err != nil {
		return nil, err
	}
	return values, nil
}

// BoolToInt converts a bool to its INTEGER column representation.
func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
