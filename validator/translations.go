package validator

import (
	"log"

	enLocale "github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

func (v *validatorImpl) initTranslator() {
	en := enLocale.New()
	v.uni = ut.New(en, en)

	trans, _ := v.uni.GetTranslator("en")
	v.translator = trans

	if err := en_translations.RegisterDefaultTranslations(v.validate, trans); err != nil {
		log.Printf("Failed to register English translations: %v", err)
	}
}

func (v *validatorImpl) registerCustomTranslations() {
	v.registerEnglishTranslations()
}

// registerEnglishTranslations adds messages for the custom tags so they
// read like the built-in ones.
func (v *validatorImpl) registerEnglishTranslations() {
	trans, ok := v.uni.GetTranslator("en")
	if !ok {
		panic("Translator for 'en' not found")
	}

	translations := map[string]string{
		"not_empty":   "{0} cannot be empty",
		"status":      "{0} must be a valid status (active, inactive)",
		"slug_format": "{0} must contain only lowercase letters, digits and hyphens",
	}

	for tag, message := range translations {
		err := v.validate.RegisterTranslation(tag, trans,
			func(ut ut.Translator) error {
				return ut.Add(tag, message, true)
			},
			func(ut ut.Translator, fe validator.FieldError) string {
				t, _ := ut.T(tag, fe.Field())
				return t
			},
		)
		if err != nil {
			log.Printf("Failed to register English translation for %s: %v", tag, err)
		}
	}
}
