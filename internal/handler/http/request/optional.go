package request

import (
	"encoding/json"
	"reflect"
	"time"

	"blogful/internal/domain/entity"

	"github.com/go-playground/validator/v10"
)

// Optional is a body field that tells an absent key from an explicit null.
// Validation tags apply to the supplied value only.
type Optional[T any] entity.Field[T]

// UnmarshalJSON only runs when the key is present.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	o.Value = nil
	if string(data) == "null" {
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// Field returns o as a use case field.
func (o Optional[T]) Field() entity.Field[T] {
	return entity.Field[T](o)
}

func registerOptional[T any](v *validator.Validate) {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		o, ok := field.Interface().(Optional[T])
		if !ok {
			return nil
		}
		// A nil pointer skips omitempty rules; a pointer to "" does not.
		return o.Value
	}, Optional[T]{})
}

func registerOptionals(v *validator.Validate) {
	registerOptional[string](v)
	registerOptional[time.Time](v)
}
