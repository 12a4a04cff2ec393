package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	r := String()

	assert.True(t, r.Validator("hello"))
	assert.True(t, r.Validator(""))
	assert.False(t, r.Validator(42))
	assert.False(t, r.Validator(nil))
	assert.Equal(t, "must be a string", r.Message)
}

func TestNumber(t *testing.T) {
	r := Number()

	assert.True(t, r.Validator(42))
	assert.True(t, r.Validator(int64(42)))
	assert.True(t, r.Validator(3.14))
	assert.True(t, r.Validator(json.Number("3.14")))
	assert.True(t, r.Validator("42"))
	assert.False(t, r.Validator("forty-two"))
	assert.False(t, r.Validator(true))
	assert.False(t, r.Validator(nil))
}

func TestBoolean(t *testing.T) {
	r := Boolean()

	assert.True(t, r.Validator(true))
	assert.True(t, r.Validator(false))
	assert.True(t, r.Validator("true"))
	assert.True(t, r.Validator("false"))
	assert.False(t, r.Validator("yes"))
	assert.False(t, r.Validator(1))
	assert.False(t, r.Validator(nil))
}

func TestObjectID(t *testing.T) {
	r := ObjectID()

	assert.True(t, r.Validator("507f1f77bcf86cd799439011"))
	assert.False(t, r.Validator("507f1f77bcf86cd79943901"))   // 23 chars
	assert.False(t, r.Validator("507f1f77bcf86cd7994390111")) // 25 chars
	assert.False(t, r.Validator("zzzf1f77bcf86cd799439011"))  // non-hex
	assert.False(t, r.Validator(42))
	assert.False(t, r.Validator(nil))
	assert.Equal(t, "is not a valid ObjectId", r.Message)
}

func TestEmail(t *testing.T) {
	r := Email()

	assert.True(t, r.Validator("user@example.com"))
	assert.True(t, r.Validator("first.last+tag@sub.example.org"))
	assert.False(t, r.Validator("not-an-email"))
	assert.False(t, r.Validator("@example.com"))
	assert.False(t, r.Validator(42))
}

func TestMinLength(t *testing.T) {
	r := MinLength(6)

	assert.True(t, r.Validator("secret"))
	assert.True(t, r.Validator("longer-secret"))
	assert.False(t, r.Validator("short"))
	assert.False(t, r.Validator(""))
	assert.False(t, r.Validator(123456))
	assert.Equal(t, "must be at least 6 characters", r.Message)
}

func TestEnum(t *testing.T) {
	r := Enum("red", "green", "blue")

	assert.True(t, r.Validator("red"))
	assert.True(t, r.Validator("blue"))
	assert.False(t, r.Validator("yellow"))
	assert.False(t, r.Validator(nil))
	assert.False(t, r.Validator(7))
}

func TestEnumOrNull(t *testing.T) {
	r := EnumOrNull("asc", "desc")

	assert.True(t, r.Validator(nil))
	assert.True(t, r.Validator("asc"))
	assert.False(t, r.Validator("up"))
}

func TestWithMessage(t *testing.T) {
	base := String()
	custom := base.WithMessage("name must be text")

	assert.Equal(t, "name must be text", custom.Message)
	assert.Equal(t, "must be a string", base.Message)
	assert.True(t, custom.Validator("ok"))
}

func TestRequired(t *testing.T) {
	base := String()
	req := base.Required()

	assert.True(t, req.IsRequired)
	assert.False(t, base.IsRequired)
}
