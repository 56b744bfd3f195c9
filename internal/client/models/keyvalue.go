package models

import (
	"errors"
	"fmt"
	"strings"
)

var ErrIncorrectKeyValue = errors.New("argument must be name=value")

// ParseKeyValues turns "name=value" arguments into a map. Only the first "="
// splits, so values may contain "=". Empty names are rejected.
func ParseKeyValues(args []string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q", ErrIncorrectKeyValue, arg)
		}
		out[name] = value
	}
	return out, nil
}
