package models

import "encoding/json"

// Envelope is the common response wrapper of the Posko API.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type Tokens struct {
	AccessToken string `json:"accessToken"`
}

// LoginData is the data member of a /auth/login response.
type LoginData struct {
	Profile *Profile `json:"profile"`
	Tokens  Tokens   `json:"tokens"`
}

// RefreshData is the data member of a /auth/refresh-token response.
type RefreshData struct {
	Tokens Tokens `json:"tokens"`
}
