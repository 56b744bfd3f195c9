package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/poskoadmin/internal/client/models"
	"github.com/dmitrijs2005/poskoadmin/internal/client/services"
)

var errUsage = errors.New("usage")

func usage(text string) error {
	return fmt.Errorf("%w: %s", errUsage, text)
}

// printJSON writes raw indented. Bodies that are not JSON are written as is.
func (a *App) printJSON(raw []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		buf.Reset()
		buf.Write(raw)
	}
	buf.WriteByte('\n')
	_, err := a.out.Write(buf.Bytes())
	return err
}

// listParams reads page=, limit= and search= from args. Any other name=value
// pair becomes a filter. No args means no parameters.
func listParams(args []string) (*services.ListParams, error) {
	if len(args) == 0 {
		return nil, nil
	}

	kv, err := models.ParseKeyValues(args)
	if err != nil {
		return nil, err
	}

	p := &services.ListParams{}
	for name, value := range kv {
		switch name {
		case "page", "limit":
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("%s must be a number: %q", name, value)
			}
			if name == "page" {
				p.Page = n
			} else {
				p.Limit = n
			}
		case "search":
			p.Search = value
		default:
			if p.Filters == nil {
				p.Filters = make(map[string]string)
			}
			p.Filters[name] = value
		}
	}
	return p, nil
}

// fieldsFromArgs builds a JSON object from name=value args. Valid JSON
// numbers and booleans keep their JSON type; a value in double quotes is always a
// string.
func fieldsFromArgs(args []string) (map[string]any, error) {
	kv, err := models.ParseKeyValues(args)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(kv))
	for name, value := range kv {
		out[name] = typedValue(value)
	}
	return out, nil
}

func typedValue(v string) any {
	if len(v) >= 2 && strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`) {
		return v[1 : len(v)-1]
	}
	switch v {
	case "true":
		return true
	case "false":
		return false
	}
	if isJSONNumber(v) {
		return json.Number(v)
	}
	return v
}

// isJSONNumber reports whether v is a number literal as JSON spells it.
// Leading zeros, Inf and NaN are not, so "0812..." stays a string.
func isJSONNumber(v string) bool {
	if v == "" || (v[0] != '-' && (v[0] < '0' || v[0] > '9')) {
		return false
	}
	return json.Valid([]byte(v))
}

// fields returns the object built from args, prompting for fields when args
// is empty.
func (a *App) fields(args []string, hint string) (map[string]any, error) {
	if len(args) == 0 {
		lines, err := GetFields(a.reader, hint, a.out)
		if err != nil {
			return nil, err
		}
		args = lines
	}
	if len(args) == 0 {
		return nil, errors.New("no fields given")
	}
	return fieldsFromArgs(args)
}

// items returns the elements of the envelope's data array. It is empty when
// data is not an array.
func items(body json.RawMessage) []json.RawMessage {
	var env models.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil
	}
	var list []json.RawMessage
	if err := json.Unmarshal(env.Data, &list); err != nil {
		return nil
	}
	return list
}

func subcommand(args []string, def string) (string, []string) {
	if len(args) == 0 {
		return def, nil
	}
	return args[0], args[1:]
}
