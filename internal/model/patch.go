package model

import (
	"bytes"
	"encoding/json"
)

// assign copies *src into *dst when the patch carries a value.
func assign[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Nullable is a patch field that distinguishes "absent" from an explicit
// JSON null. Set is true whenever the key was present in the payload.
type Nullable[T any] struct {
	Set   bool
	Valid bool
	Value T
}

func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		var zero T
		n.Valid, n.Value = false, zero
		return nil
	}
	if err := json.Unmarshal(b, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// Some returns a Nullable holding v.
func Some[T any](v T) Nullable[T] { return Nullable[T]{Set: true, Valid: true, Value: v} }

// Null returns a Nullable that clears the field.
func Null[T any]() Nullable[T] { return Nullable[T]{Set: true} }

// assignNullable applies n onto a nullable record field.
func assignNullable[T any](dst **T, n Nullable[T]) {
	if !n.Set {
		return
	}
	if !n.Valid {
		*dst = nil
		return
	}
	v := n.Value
	*dst = &v
}
