package dto

import (
	"bytes"
	"encoding/json"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse confirmación simple (PATCH/DELETE).
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Optional distingue un campo ausente del body de uno enviado (incluido null).
// Set=false: el campo no vino. Null=true: vino como null.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some construye un Optional presente.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// UnmarshalJSON solo se invoca cuando la clave está en el body.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON serializa el valor o null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
