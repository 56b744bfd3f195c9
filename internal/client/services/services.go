// Package services maps each admin operation to exactly one call through
// the API client. Services are stateless: no caching, no retries, and the
// server payload is returned unchanged as raw JSON.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/poskoadmin/internal/client/api"
)

var ErrInvalidInput = errors.New("invalid input")

// Caller is the part of *api.Client the services use.
type Caller interface {
	Request(ctx context.Context, method, path string, body any, query url.Values) (*api.Response, error)
}

// Services bundles every resource service over one Caller.
type Services struct {
	Auth      *AuthService
	Orders    *OrderService
	Providers *ProviderService
	Catalog   *CatalogService
	Vouchers  *VoucherService
	Users     *UserService
	Finance   *FinanceService
}

func New(c Caller) *Services {
	return &Services{
		Auth:      &AuthService{c: c},
		Orders:    &OrderService{c: c},
		Providers: &ProviderService{c: c},
		Catalog:   &CatalogService{c: c},
		Vouchers:  &VoucherService{c: c},
		Users:     &UserService{c: c},
		Finance:   &FinanceService{c: c},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// check runs the validator tag against v and wraps failures in ErrInvalidInput.
func check(field string, v any, tag string) error {
	if err := validate.Var(v, tag); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s failed %q (got %v)", ErrInvalidInput, field, verrs[0].Tag(), v)
		}
		return fmt.Errorf("%w: %s: %v", ErrInvalidInput, field, err)
	}
	return nil
}

func requireData(data any) error {
	if data == nil {
		return fmt.Errorf("%w: data is required", ErrInvalidInput)
	}
	return nil
}

// itemPath joins collection and an escaped id, plus optional suffix parts.
func itemPath(collection, id string, suffix ...string) (string, error) {
	id = strings.TrimSpace(id)
	if err := check("id", id, "required"); err != nil {
		return "", err
	}
	parts := append([]string{collection, url.PathEscape(id)}, suffix...)
	return strings.Join(parts, "/"), nil
}

func payload(resp *api.Response, err error) (json.RawMessage, error) {
	if err != nil {
		return nil, err
	}
	return json.RawMessage(resp.Body), nil
}
