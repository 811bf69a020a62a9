package sqlite

import (
	"context"
	"encoding/json"

	"github.com/Masterminds/squirrel"

	"github.com/dabin/mathmission/internal/logger"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// encodeList serializes a string list for a TEXT column. Empty lists
// store as NULL-ish empty string to keep rows compact.
func encodeList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	b, err := json.Marshal(items)
	if err != nil {
		return ""
	}
	return string(b)
}

// decodeList parses a stored JSON list. Malformed stored JSON is a
// logged, recoverable condition: the row still loads with an empty list.
func decodeList(ctx context.Context, column, raw string) []string {
	if raw == "" {
		return nil
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logger.FromContext(ctx).Warn("malformed JSON in column %s, falling back to empty list: %v", column, err)
		return nil
	}
	return items
}
