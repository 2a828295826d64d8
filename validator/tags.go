package validator

const (
	Email    = "email"
	Min      = "min"
	Max      = "max"
	Required = "required"
	NotEmpty = "not_empty"
	Status   = "status"
	Slug     = "slug_format"
)
