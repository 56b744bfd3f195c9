// Package models defines the few server payloads the console inspects.
// Resource payloads (orders, providers, vouchers...) stay opaque JSON.
package models

import (
	"encoding/json"
	"slices"

	"github.com/dmitrijs2005/poskoadmin/internal/common"
)

// Profile is the authenticated user as returned by /auth/login and
// /auth/profile. Raw keeps the full server document so fields the console
// does not model are not lost when the profile is cached and re-read.
type Profile struct {
	ID         string   `json:"_id,omitempty"`
	Name       string   `json:"name,omitempty"`
	Email      string   `json:"email,omitempty"`
	Roles      []string `json:"roles,omitempty"`
	ActiveRole string   `json:"activeRole,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// IsAdmin reports whether the profile may use the console.
func (p *Profile) IsAdmin() bool {
	if p == nil {
		return false
	}
	return p.ActiveRole == common.AdminRole || slices.Contains(p.Roles, common.AdminRole)
}

func (p *Profile) UnmarshalJSON(b []byte) error {
	type plain Profile
	var v plain
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*p = Profile(v)
	p.Raw = append(json.RawMessage(nil), b...)
	return nil
}

// MarshalJSON writes Raw with the typed fields laid over it: unknown server
// fields survive, and a typed field that is set wins over its Raw value.
func (p Profile) MarshalJSON() ([]byte, error) {
	type plain Profile
	typed, err := json.Marshal(plain(p))
	if err != nil || len(p.Raw) == 0 {
		return typed, err
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(p.Raw, &doc); err != nil || doc == nil {
		return typed, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(typed, &fields); err != nil {
		return nil, err
	}
	for k, v := range fields {
		doc[k] = v
	}
	return json.Marshal(doc)
}
