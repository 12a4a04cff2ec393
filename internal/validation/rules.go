package validation

import (
	"encoding/json"
	"net/mail"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rule pairs a validator with the message reported when the validator fails.
// Rules are consumed both by the request validation middleware and by the
// schema package at write time.
type Rule struct {
	Validator  func(value any) bool
	Message    string
	IsRequired bool
}

// WithMessage returns a copy of the rule with a custom failure message.
func (r Rule) WithMessage(message string) Rule {
	r.Message = message
	return r
}

// Required returns a copy of the rule that also flags the field as required.
func (r Rule) Required() Rule {
	r.IsRequired = true
	return r
}

// String accepts any string value.
func String() Rule {
	return Rule{
		Validator: func(value any) bool {
			_, ok := value.(string)
			return ok
		},
		Message: "must be a string",
	}
}

// Number accepts numeric values and numeric strings.
func Number() Rule {
	return Rule{
		Validator: func(value any) bool {
			switch v := value.(type) {
			case int, int32, int64, float32, float64:
				return true
			case json.Number:
				_, err := v.Float64()
				return err == nil
			case string:
				_, err := strconv.ParseFloat(v, 64)
				return err == nil
			default:
				return false
			}
		},
		Message: "must be a number",
	}
}

// Boolean accepts bool values and the strings "true"/"false".
func Boolean() Rule {
	return Rule{
		Validator: func(value any) bool {
			switch v := value.(type) {
			case bool:
				return true
			case string:
				return v == "true" || v == "false"
			default:
				return false
			}
		},
		Message: "must be a boolean",
	}
}

// ObjectID accepts 24-character hex strings, the canonical Mongo identifier shape.
func ObjectID() Rule {
	return Rule{
		Validator: func(value any) bool {
			s, ok := value.(string)
			if !ok || len(s) != 24 {
				return false
			}
			_, err := primitive.ObjectIDFromHex(s)
			return err == nil
		},
		Message: "is not a valid ObjectId",
	}
}

// Email accepts RFC 5322 addresses.
func Email() Rule {
	return Rule{
		Validator: func(value any) bool {
			s, ok := value.(string)
			if !ok {
				return false
			}
			_, err := mail.ParseAddress(s)
			return err == nil
		},
		Message: "must be a valid email address",
	}
}

// MinLength accepts strings of at least n characters.
func MinLength(n int) Rule {
	return Rule{
		Validator: func(value any) bool {
			s, ok := value.(string)
			return ok && len(s) >= n
		},
		Message: "must be at least " + strconv.Itoa(n) + " characters",
	}
}

// Enum accepts only the listed values.
func Enum[T comparable](values ...T) Rule {
	return Rule{
		Validator: func(value any) bool {
			v, ok := value.(T)
			if !ok {
				return false
			}
			for _, allowed := range values {
				if v == allowed {
					return true
				}
			}
			return false
		},
		Message: "is not an allowed value",
	}
}

// EnumOrNull accepts the listed values plus an explicit null, for
// optional-enum fields.
func EnumOrNull[T comparable](values ...T) Rule {
	inner := Enum(values...)
	return Rule{
		Validator: func(value any) bool {
			if value == nil {
				return true
			}
			return inner.Validator(value)
		},
		Message: inner.Message,
	}
}
