// Package patch implements tri-state fields for partial updates. A field in
// an inbound JSON payload is in one of three states: absent (leave the
// column alone), explicit null (clear the column), or set to a value. A
// plain pointer cannot represent the first two separately, so update
// payloads use Field for every nullable column.
package patch

import "encoding/json"

// Field is a tri-state optional value for a nullable column.
//
// The zero Field means the key was absent from the payload. encoding/json
// only invokes UnmarshalJSON for keys that are present, which is what makes
// presence detection work: Present is set inside UnmarshalJSON and nowhere
// else.
type Field[T any] struct {
	// Present is true when the key appeared in the payload at all.
	Present bool
	// Null is true when the key was present with an explicit JSON null.
	Null bool
	// Value holds the decoded value when Present && !Null.
	Value T
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Present = true
	if string(data) == "null" {
		f.Null = true
		return nil
	}
	return json.Unmarshal(data, &f.Value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Present || f.Null {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Set returns a Field in the assign state, for building changesets in code.
func Set[T any](v T) Field[T] {
	return Field[T]{Present: true, Value: v}
}

// Clear returns a Field in the explicit-null state.
func Clear[T any]() Field[T] {
	return Field[T]{Present: true, Null: true}
}

// Apply writes the field into a column-assignment map: nothing when absent,
// nil when cleared, the value otherwise.
func (f Field[T]) Apply(updates map[string]any, column string) {
	if !f.Present {
		return
	}
	if f.Null {
		updates[column] = nil
		return
	}
	updates[column] = f.Value
}

// Ptr returns the value as a pointer, nil when absent or cleared.
func (f Field[T]) Ptr() *T {
	if !f.Present || f.Null {
		return nil
	}
	v := f.Value
	return &v
}
