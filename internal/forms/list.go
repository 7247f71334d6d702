package forms

import (
	"fmt"

	"github.com/goccy/go-json"
)

// List is a form field submitted either as a JSON array or as a single
// comma separated string.
type List []string

func (l *List) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("failed to decode list: %w", err)
		}
		*l = SplitList(s)
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("failed to decode list: %w", err)
	}
	*l = items
	return nil
}
