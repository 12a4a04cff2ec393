package middleware

import (
	"sort"

	"github.com/gofiber/fiber/v2"

	"todoapi/internal/validation"
)

// Source selects the request location fields are extracted from.
type Source string

const (
	SourceBody   Source = "body"
	SourceParams Source = "params"
	SourceQuery  Source = "query"
)

// FieldRules maps field names to their validation rules.
type FieldRules map[string]validation.Rule

// FieldViolation is one failed check, reported back to the client.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateRequest gates a route on required fields and per-field rules.
// Every field is evaluated, not fail-fast, so a single 400 response lists
// all violations. On success the next handler runs.
func ValidateRequest(requiredFields []string, rules FieldRules, source Source) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, ok := extract(c, source, requiredFields, rules)
		if !ok {
			return badRequest(c, []FieldViolation{{Field: "body", Message: "malformed request body"}})
		}

		var violations []FieldViolation
		required := make(map[string]bool, len(requiredFields))
		for _, field := range requiredFields {
			required[field] = true
			if absent(data, field) {
				violations = append(violations, FieldViolation{Field: field, Message: "field is required"})
			}
		}

		for _, field := range sortedFields(rules) {
			rule := rules[field]
			if absent(data, field) {
				if rule.IsRequired && !required[field] {
					violations = append(violations, FieldViolation{Field: field, Message: "field is required"})
				}
				continue
			}
			if !rule.Validator(data[field]) {
				violations = append(violations, FieldViolation{Field: field, Message: rule.Message})
			}
		}

		if len(violations) > 0 {
			return badRequest(c, violations)
		}
		return c.Next()
	}
}

// extract pulls the named fields out of the chosen request location.
func extract(c *fiber.Ctx, source Source, requiredFields []string, rules FieldRules) (map[string]any, bool) {
	fields := make(map[string]bool, len(requiredFields)+len(rules))
	for _, f := range requiredFields {
		fields[f] = true
	}
	for f := range rules {
		fields[f] = true
	}

	data := make(map[string]any, len(fields))
	switch source {
	case SourceParams:
		for f := range fields {
			if v := c.Params(f); v != "" {
				data[f] = v
			}
		}
	case SourceQuery:
		for f := range fields {
			if c.Context().QueryArgs().Has(f) {
				data[f] = c.Query(f)
			}
		}
	default:
		body := make(map[string]any)
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&body); err != nil {
				return nil, false
			}
		}
		for f := range fields {
			if v, present := body[f]; present {
				data[f] = v
			}
		}
	}
	return data, true
}

func absent(data map[string]any, field string) bool {
	v, present := data[field]
	if !present || v == nil {
		return true
	}
	s, isString := v.(string)
	return isString && s == ""
}

func sortedFields(rules FieldRules) []string {
	fields := make([]string, 0, len(rules))
	for f := range rules {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// badRequest mirrors the handler package's error envelope; middleware cannot
// import it without a cycle.
func badRequest(c *fiber.Ctx, violations []FieldViolation) error {
	rid, _ := c.Locals(RequestIDLocalKey).(string)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"request_id": rid,
		"error": fiber.Map{
			"code":    "INVALID_FIELDS",
			"message": "invalid fields",
			"details": violations,
		},
	})
}
