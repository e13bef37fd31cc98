package repository

import (
	"fmt"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// statementRows returns the rows produced by statement idx of a multi-statement query
func statementRows(results []interface{}, idx int) []interface{} {
	if idx < 0 || idx >= len(results) {
		return nil
	}
	if resp, ok := results[idx].(map[string]interface{}); ok {
		switch data := resp["result"].(type) {
		case []interface{}:
			return data
		case nil:
			return nil
		default:
			return []interface{}{data}
		}
	}
	return nil
}

// rowMaps keeps the rows that decoded as objects
func rowMaps(rows []interface{}) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		if data, ok := row.(map[string]interface{}); ok {
			out = append(out, data)
		}
	}
	return out
}

// asMap unwraps a single record returned by QueryOne
func asMap(result interface{}) (map[string]interface{}, error) {
	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected result format %T", result)
	}
	return data, nil
}

// parseTime parses time from various formats
func parseTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed
		}
	case models.CustomDateTime:
		return t.Time
	case *models.CustomDateTime:
		if t != nil {
			return t.Time
		}
	}
	return time.Time{}
}

// extractCount reads the count of a `SELECT count() ... GROUP ALL` statement
func extractCount(rows []interface{}) int {
	if len(rows) == 0 {
		return 0
	}
	if data, ok := rows[0].(map[string]interface{}); ok {
		return getInt(data, "count")
	}
	return 0
}

// toInt converts the numeric types the CBOR decoder may hand back
func toInt(v interface{}) int {
	switch c := v.(type) {
	case float64:
		return int(c)
	case float32:
		return int(c)
	case int:
		return c
	case int64:
		return int(c)
	case uint64:
		return int(c)
	case uint32:
		return int(c)
	case int32:
		return int(c)
	}
	return 0
}

// getString extracts a string value from a map
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// getInt extracts an int value from a map
func getInt(m map[string]interface{}, key string) int {
	return toInt(m[key])
}

// getBool extracts a bool value from a map
func getBool(m map[string]interface{}, key string) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return false
}

// getTime extracts a time value from a map
func getTime(m map[string]interface{}, key string) time.Time {
	return parseTime(m[key])
}

// intsToAny converts ids for use in an IN clause
func intsToAny(ids []int) []interface{} {
	out := make([]interface{}, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}
