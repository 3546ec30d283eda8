package agreements

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one failed field check, by wire name.
type FieldError struct {
	Field string
	Rule  string
}

func (f FieldError) message() string {
	switch f.Rule {
	case "required":
		return f.Field + " is required"
	case "datetime":
		return f.Field + " must be a date in YYYY-MM-DD format"
	default:
		return f.Field + " is invalid"
	}
}

// ValidationError is returned when a form is missing required fields or has
// malformed values. It is reported before any request is made.
type ValidationError struct {
	Kind   Kind
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.message())
	}
	return strings.Join(msgs, "; ")
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(wireName)
	})
	return validate
}

func wireName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}

// Validate checks the category's required fields. Values are trimmed first, so
// whitespace-only input counts as missing.
func Validate(form Form) error {
	if isNilForm(form) {
		return errors.New("agreement form is nil")
	}
	normalized, err := FromFormData(form.Kind(), FormData(form))
	if err != nil {
		return err
	}

	err = validatorInstance().Struct(normalized)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate %s agreement: %w", form.Kind(), err)
	}
	out := &ValidationError{Kind: form.Kind()}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return out
}

// isNilForm also catches typed nil pointers such as (*RentalAgreement)(nil).
func isNilForm(form Form) bool {
	if form == nil {
		return true
	}
	v := reflect.ValueOf(form)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// FormData flattens a form into the generic string mapping sent as form_data.
// Empty optional fields are omitted.
func FormData(form Form) map[string]string {
	out := map[string]string{}
	if isNilForm(form) {
		return out
	}
	raw, err := json.Marshal(form)
	if err != nil {
		return out
	}
	var fields map[string]string
	if err := json.Unmarshal(raw, &fields); err != nil {
		return out
	}
	for k, v := range fields {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out[k] = trimmed
		}
	}
	return out
}

// FromFormData rebuilds a typed form from a flattened mapping. Unknown keys are dropped.
func FromFormData(kind Kind, data map[string]string) (Form, error) {
	form, err := New(kind)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode form data: %w", err)
	}
	if err := json.Unmarshal(raw, form); err != nil {
		return nil, fmt.Errorf("decode %s form data: %w", kind, err)
	}
	return form, nil
}

// Required lists the wire names of the mandatory fields for a category.
func Required(kind Kind) []string {
	return fields(kind, true)
}

// Fields lists every wire name of a category, required ones first.
func Fields(kind Kind) []string {
	return fields(kind, false)
}

func fields(kind Kind, requiredOnly bool) []string {
	form, err := New(kind)
	if err != nil {
		return nil
	}
	t := reflect.TypeOf(form).Elem()
	var required, optional []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		rules := strings.Split(f.Tag.Get("validate"), ",")
		if rules[0] == "required" {
			required = append(required, wireName(f))
		} else {
			optional = append(optional, wireName(f))
		}
	}
	if requiredOnly {
		return required
	}
	return append(required, optional...)
}
