// Package validate contains the support for validating models.
package validate

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validator checks models against their validate tags.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// New constructs a validator that reports failures in english. The address
// tag is checked with the provided function so the service can enforce the
// address format of the connected chain.
func New(validAddress func(string) bool) (*Validator, error) {

	// Instantiate a validator.
	validate := validator.New()

	// Create a translator for english so the error messages are
	// more human-readable than technical.
	translator, _ := ut.New(en.New(), en.New()).GetTranslator("en")

	// Register the english error messages for use.
	if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		return nil, err
	}

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if validAddress != nil {
		fn := func(fl validator.FieldLevel) bool {
			return validAddress(fl.Field().String())
		}
		if err := validate.RegisterValidation("address", fn); err != nil {
			return nil, err
		}

		reg := func(ut ut.Translator) error {
			return ut.Add("address", "{0} must be a valid address", true)
		}
		tran := func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T("address", fe.Field())
			return t
		}
		if err := validate.RegisterTranslation("address", translator, reg, tran); err != nil {
			return nil, err
		}
	}

	v := Validator{
		validate:   validate,
		translator: translator,
	}

	return &v, nil
}

// Check validates the provided model against its declared tags.
func (v *Validator) Check(val any) error {
	if err := v.validate.Struct(val); err != nil {

		// Use a type assertion to get the real error value.
		verrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}

		var fields FieldErrors
		for _, verror := range verrors {
			field := FieldError{
				Field: verror.Field(),
				Error: verror.Translate(v.translator),
			}
			fields = append(fields, field)
		}

		return fields
	}

	return nil
}
