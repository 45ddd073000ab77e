package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Error reports invalid request fields, keyed by field path such as "[0].code".
// Handlers return Fields as the details of a 400 response.
type Error struct {
	Fields map[string]string
}

// Error joins the field messages in field order.
func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		keys = append(keys, field)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, field := range keys {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return strings.Join(msgs, "; ")
}
