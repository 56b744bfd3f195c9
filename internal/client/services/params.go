package services

import (
	"fmt"
	"net/url"

	"github.com/go-playground/form/v4"
)

// ListParams are the optional list query parameters. Zero values are left
// out; Filters are sent verbatim as additional parameters.
type ListParams struct {
	Page    int               `form:"page,omitempty" validate:"gte=0"`
	Limit   int               `form:"limit,omitempty" validate:"gte=0,lte=1000"`
	Search  string            `form:"search,omitempty"`
	Filters map[string]string `form:"-"`
}

var encoder = form.NewEncoder()

// Values encodes p as a query. A nil p yields nil.
func (p *ListParams) Values() (url.Values, error) {
	if p == nil {
		return nil, nil
	}
	if err := validate.Struct(p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	values, err := encoder.Encode(p)
	if err != nil {
		return nil, fmt.Errorf("encode list params: %w", err)
	}
	for k, v := range p.Filters {
		values.Set(k, v)
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values, nil
}
