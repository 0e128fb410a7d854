package form

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/ytget/donation-board/internal/model"
)

// Validation rule tags reported per field
const (
	TagRequired = "required"
	TagMin      = "min"
)

// ContactMinLength is enforced only with Rules.StrictContact
const ContactMinLength = 10

// minLengths mirrors the min= values in model.DonationFields struct tags
var minLengths = map[model.Field]int{
	model.FieldItemName:    3,
	model.FieldDescription: 10,
	model.FieldContact:     ContactMinLength,
}

var structFields = map[string]model.Field{
	"ItemName":    model.FieldItemName,
	"Description": model.FieldDescription,
	"Location":    model.FieldLocation,
	"Contact":     model.FieldContact,
}

// validator.Validate caches struct metadata and is safe for concurrent use
var validate = validator.New()

// Rules tunes validation beyond the struct tags
type Rules struct {
	// StrictContact additionally requires the contact to be ContactMinLength long
	StrictContact bool
}

// Errors maps a field to the rule tags it failed
type Errors map[model.Field][]string

// Valid reports whether no field failed
func (e Errors) Valid() bool {
	return len(e) == 0
}

// Has reports whether field failed the given rule tag
func (e Errors) Has(field model.Field, tag string) bool {
	for _, t := range e[field] {
		if t == tag {
			return true
		}
	}
	return false
}

// MinLength returns the minimum length rule for field, or 0 if it has none
func MinLength(field model.Field) int {
	return minLengths[field]
}

// Validate checks the form values and returns the failed rules per field.
// An empty field reports only "required", never "min".
func Validate(fields model.DonationFields, rules Rules) Errors {
	errs := Errors{}

	if err := validate.Struct(fields); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			// InvalidValidationError: only possible for a non-struct argument
			panic(err)
		}
		for _, fe := range verrs {
			field, ok := structFields[fe.StructField()]
			if !ok {
				continue
			}
			errs[field] = append(errs[field], fe.Tag())
		}
	}

	if rules.StrictContact && fields.Contact != "" {
		if err := validate.Var(fields.Contact, "min=10"); err != nil {
			errs[model.FieldContact] = append(errs[model.FieldContact], TagMin)
		}
	}

	return errs
}
