package services

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// pakai nama field json di pesan error
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// validateStruct mengembalikan ValidationError untuk field pertama yang gagal
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ValidationError{Field: fe.Field(), Message: describeTag(fe)}
	}
	return &ValidationError{Message: err.Error()}
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "gt":
		return "must be greater than " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}

// ParseBookingDate menerima YYYY-MM-DD. Tanggal lampau tetap diterima.
func ParseBookingDate(s string) (datatypes.Date, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return datatypes.Date{}, &ValidationError{Field: "booking_date", Message: "must be a valid date in YYYY-MM-DD format"}
	}
	return datatypes.Date(t), nil
}

// ParseBookingTime menerima jam 24-jam HH:MM (detik opsional).
func ParseBookingTime(s string) (datatypes.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		if t, err = time.Parse("15:04:05", s); err != nil {
			return 0, &ValidationError{Field: "booking_time", Message: "must be a valid 24-hour time in HH:MM format"}
		}
	}
	return datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), 0), nil
}

// parseClock dipakai untuk jam buka/tutup restoran; string kosong dibiarkan.
func parseClock(field, s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	t, err := time.Parse(TimeLayout, strings.TrimSpace(s))
	if err != nil {
		return "", &ValidationError{Field: field, Message: "must be a valid 24-hour time in HH:MM format"}
	}
	return t.Format(TimeLayout), nil
}
