package validate

import (
	"github.com/LuWes17/infomatik-api/internal/domain"
	"github.com/LuWes17/infomatik-api/internal/pkg/phone"
	"github.com/go-playground/validator/v10"
)

// v is the package-level singleton validator. It is initialised once at
// package load time. Any custom type registrations must be made during init()
// before the first call to Struct.
var v = validator.New()

func init() {
	_ = v.RegisterValidation("barangay", func(fl validator.FieldLevel) bool {
		return domain.IsBarangay(fl.Field().String())
	})
	_ = v.RegisterValidation("phmobile", func(fl validator.FieldLevel) bool {
		return phone.IsValid(fl.Field().String())
	})
}

// Struct validates the given struct using its validate tags. On failure it
// returns validator.ValidationErrors so the request boundary can produce
// field-level messages.
func Struct(s interface{}) error {
	return v.Struct(s)
}
