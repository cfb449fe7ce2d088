package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealerpro/internal/validate"
)

func TestEmail(t *testing.T) {
	_, ok := validate.Email("user@example.com")
	assert.True(t, ok)
	for _, bad := range []string{"user@", "userexample.com", "", "a b@c.d", "user@example"} {
		_, ok := validate.Email(bad)
		assert.False(t, ok, bad)
	}
}

func TestEmailWarning(t *testing.T) {
	assert.Empty(t, validate.EmailWarning(""))
	assert.Empty(t, validate.EmailWarning("user@example.com"))
	assert.Equal(t, validate.MsgEmailFormat, validate.EmailWarning("user@"))
	assert.Equal(t, validate.MsgEmailFormat, validate.EmailWarning("u"))
}

func TestAcceptDigits(t *testing.T) {
	got, ok := validate.AcceptDigits("", "abc")
	assert.False(t, ok)
	assert.Equal(t, "", got)

	got, ok = validate.AcceptDigits("12", "12a3")
	assert.False(t, ok)
	assert.Equal(t, "12", got)

	got, ok = validate.AcceptDigits("12", "123")
	assert.True(t, ok)
	assert.Equal(t, "123", got)

	got, ok = validate.AcceptDigits("123", "")
	assert.True(t, ok)
	assert.Equal(t, "", got)
}

func TestYearAndPrice(t *testing.T) {
	y, ok := validate.Year("2024")
	assert.True(t, ok)
	assert.Equal(t, 2024, y)
	_, ok = validate.Year("24x")
	assert.False(t, ok)

	p, ok := validate.Price("25.000.000")
	assert.True(t, ok)
	assert.EqualValues(t, 25000000, p)
	_, ok = validate.Price("-5")
	assert.False(t, ok)
	_, ok = validate.Price("")
	assert.False(t, ok)
}

func TestStructUsesJSONNamesAndCustomTags(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,simplemail"`
		HP    string `json:"hpNumber" validate:"required,digits"`
	}
	ve := validate.Struct(in{Email: "x@", HP: "08a"})
	require.Len(t, ve, 2)
	assert.Equal(t, "email", ve[0].Field())
	assert.Equal(t, "simplemail", ve[0].Tag())
	assert.Equal(t, "hpNumber", ve[1].Field())
	assert.Equal(t, "digits", ve[1].Tag())

	assert.Nil(t, validate.Struct(in{Email: "a@b.co", HP: "0812"}))
}

func TestNotBlankRejectsWhitespace(t *testing.T) {
	type in struct {
		Name string `json:"name" validate:"notblank"`
	}
	for _, name := range []string{"", "   ", "\t\n"} {
		ve := validate.Struct(in{Name: name})
		require.Len(t, ve, 1, "%q", name)
		assert.Equal(t, "notblank", ve[0].Tag())
	}
	assert.Nil(t, validate.Struct(in{Name: " Budi "}))
}
