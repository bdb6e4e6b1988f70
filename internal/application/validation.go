package application

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type SubmitRequest struct {
	JobID           string `json:"jobId" validate:"required"`
	Department      string `json:"department"`
	Name            string `json:"name" validate:"required,max=100"`
	Phone           string `json:"phone" validate:"required,mobile"`
	Email           string `json:"email" validate:"required,email"`
	BirthDate       string `json:"birthDate" validate:"required,birthdate"`
	Referrer        string `json:"referrer"`
	PrivacyOptional bool   `json:"privacyOptional"`
	ResumeURL       string `json:"resumeUrl"`
}

// ValidationError maps JSON field names to a reason.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "invalid application: " + strings.Join(parts, "; ")
}

type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

func NewValidator() *Validator {
	v := &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
	v.validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	_ = v.validate.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		return ValidatePhone(fl.Field().String()) == nil
	})
	_ = v.validate.RegisterValidation("birthdate", func(fl validator.FieldLevel) bool {
		return v.ValidateBirthDate(fl.Field().String()) == nil
	})
	return v
}

func (v *Validator) Struct(req *SubmitRequest) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields[fe.Field()] = v.reason(fe, req)
	}
	return out
}

func (v *Validator) reason(fe validator.FieldError, req *SubmitRequest) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "mobile":
		return ValidatePhone(req.Phone).Error()
	case "birthdate":
		return v.ValidateBirthDate(req.BirthDate).Error()
	}
	return "is invalid"
}

// ValidatePhone accepts 11-digit mobile numbers starting with 010; any
// separators are ignored.
func ValidatePhone(phone string) error {
	digits := onlyDigits(phone)
	if digits == "" {
		return errors.New("phone number is required")
	}
	if len(digits) != 11 {
		return errors.New("phone number must have 11 digits (e.g. 010-1234-5678)")
	}
	if !strings.HasPrefix(digits, "010") {
		return errors.New("phone number must start with 010")
	}
	return nil
}

// ValidateBirthDate accepts YYYYMMDD for a real calendar date between 1900
// and the current year.
func (v *Validator) ValidateBirthDate(birthDate string) error {
	if len(birthDate) != 8 || onlyDigits(birthDate) != birthDate {
		return errors.New("birth date must use the YYYYMMDD format")
	}

	year, _ := strconv.Atoi(birthDate[0:4])
	month, _ := strconv.Atoi(birthDate[4:6])
	day, _ := strconv.Atoi(birthDate[6:8])

	if year < 1900 || year > v.now().Year() {
		return fmt.Errorf("birth year %d is out of range", year)
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Year() != year || int(date.Month()) != month || date.Day() != day {
		return errors.New("birth date is not a valid date")
	}
	return nil
}

// FormatPhone renders digits as 010-1234-5678, using at most 11 digits.
func FormatPhone(phone string) string {
	digits := onlyDigits(phone)
	if len(digits) > 11 {
		digits = digits[:11]
	}
	switch {
	case len(digits) <= 3:
		return digits
	case len(digits) <= 7:
		return digits[:3] + "-" + digits[3:]
	default:
		return digits[:3] + "-" + digits[3:7] + "-" + digits[7:]
	}
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
