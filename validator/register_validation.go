package validator

import (
	"regexp"

	"ecom-admin/domain"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

const SlugRegexString = `^[a-z0-9]+(?:-[a-z0-9]+)*$`

var slugRegex = regexp.MustCompile(SlugRegexString)

type Registration struct {
	Tag  string
	Func validator.Func
}

var defaultRegistrations = [...]Registration{
	{
		Tag:  NotEmpty,
		Func: IsNotEmpty,
	},
	{
		Tag:  Status,
		Func: IsValidStatus,
	},
	{
		Tag:  Slug,
		Func: IsValidSlug,
	},
}

func IsNotEmpty(fl validator.FieldLevel) bool {
	input := fl.Field().String()
	return len(input) > 0
}

func IsValidStatus(fl validator.FieldLevel) bool {
	input := fl.Field().String()
	return lo.Contains([]string{
		string(domain.StatusActive),
		string(domain.StatusInactive),
	}, input)
}

func IsValidSlug(fl validator.FieldLevel) bool {
	input := fl.Field().String()
	if input == "" {
		// If it's optional and empty, consider it valid
		return true
	}
	return slugRegex.MatchString(input)
}
