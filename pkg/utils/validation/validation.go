// pkg/utils/validation/validation.go
package validation

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrPhone   = errors.New("Phone number must be 10 digits")
	ErrPincode = errors.New("Pincode must be 6 digits")
	ErrMissing = errors.New("All fields are required")
)

var (
	phonePattern   = regexp.MustCompile(`^\d{10}$`)
	pincodePattern = regexp.MustCompile(`^\d{6}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("pincode", func(fl validator.FieldLevel) bool {
		return pincodePattern.MatchString(fl.Field().String())
	})
	return v
}

// Struct validate tag'lerini kontrol eder ve ilk hatayı kullanıcıya
// gösterilebilir bir mesaja çevirir
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	// required hataları diğerlerinden önce raporlanır
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return ErrMissing
		}
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "phone":
		return ErrPhone
	case "pincode":
		return ErrPincode
	case "email":
		return errors.New("Invalid email format")
	default:
		return errors.New("Invalid " + strings.ToLower(fe.Field()))
	}
}

func IsPincode(s string) bool {
	return pincodePattern.MatchString(s)
}
