package validate

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

const (
	MsgEmailFormat = "Format email tidak valid"
	MsgDigitsOnly  = "Nomor harus berupa format angka!"
)

var (
	// one @, then a dot-separated segment; no whitespace anywhere
	reEmail  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	reDigits = regexp.MustCompile(`^[0-9]+$`)
	reID     = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

var v = newValidator()

func newValidator() *validator.Validate {
	vv := validator.New(validator.WithRequiredStructEnabled())
	vv.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = vv.RegisterValidation("notblank", validators.NotBlank)
	_ = vv.RegisterValidation("simplemail", func(fl validator.FieldLevel) bool {
		return reEmail.MatchString(fl.Field().String())
	})
	_ = vv.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		return reDigits.MatchString(fl.Field().String())
	})
	return vv
}

// Struct runs the `validate` tags of s. Field names in the result follow the json tags.
func Struct(s any) validator.ValidationErrors {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	if ve, ok := err.(validator.ValidationErrors); ok {
		return ve
	}
	return nil
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 254 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// EmailWarning is the non-blocking hint shown while typing: empty for "" and for valid input.
func EmailWarning(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	if _, ok := Email(s); ok {
		return ""
	}
	return MsgEmailFormat
}

func Digits(s string) bool { return reDigits.MatchString(s) }

// AcceptDigits applies one edit to a digits-only field. A value with anything other than
// digits is refused and the field keeps current.
func AcceptDigits(current, typed string) (string, bool) {
	if typed == "" || Digits(typed) {
		return typed, true
	}
	return current, false
}

func Required(s string) bool { return strings.TrimSpace(s) != "" }

// ID validates a resource identifier taken from the path.
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Year accepts 1900..2100.
func Year(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1900 || n > 2100 {
		return 0, false
	}
	return n, true
}

// Price parses a rupiah amount. Dots used as thousands separators are tolerated.
func Price(s string) (int64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ".", "")
	if s == "" || !Digits(s) {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
