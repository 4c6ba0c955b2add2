package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/lcalzada-xor/snapgram/internal/core/domain"
)

const (
	maxJSONBody      = 1 << 20
	maxMultipartBody = 2 << 20
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return lowerFirst(fld.Name)
		}
		return name
	})

	v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return domain.IsValidUsername(fl.Field().String())
	})
	v.RegisterValidation("birthday", func(fl validator.FieldLevel) bool {
		return domain.IsValidBirthday(fl.Field().String())
	})
	return v
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// validateInput runs struct validation and converts failures to field errors.
func validateInput(in interface{}) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(domain.FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, domain.FieldError{Field: fe.Field(), Message: messageFor(fe)})
	}
	return fields
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s should not be empty", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be longer than or equal to %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be shorter than or equal to %s characters", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be an email", fe.Field())
	case "username":
		return fmt.Sprintf("%s may only contain letters, digits, '_' and '-'", fe.Field())
	case "birthday":
		return fmt.Sprintf("%s must be a past date", fe.Field())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

// decodeJSON reads a size limited JSON body into dst and validates it.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	// Limit request body to 1MB
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.NewFieldError("body", "invalid request body")
	}
	return validateInput(dst)
}

// parseMultipart parses a size limited multipart form.
func parseMultipart(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxMultipartBody)

	if err := r.ParseMultipartForm(maxMultipartBody); err != nil {
		return domain.NewFieldError("body", "invalid multipart form")
	}
	return nil
}

// formFile opens an optional upload. The returned func releases it and is
// never nil.
func formFile(r *http.Request, field string) (*domain.Upload, func(), error) {
	noop := func() {}
	if r.MultipartForm == nil {
		return nil, noop, nil
	}

	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil, noop, nil
	}

	fh := headers[0]
	f, err := fh.Open()
	if err != nil {
		return nil, noop, domain.NewFieldError(field, "unreadable file")
	}
	return &domain.Upload{Filename: fh.Filename, Size: fh.Size, Content: f}, func() { f.Close() }, nil
}

// origin is the frontend base URL used in emailed links.
func origin(r *http.Request, fallback string) string {
	if o := r.Header.Get("Origin"); o != "" {
		return strings.TrimRight(o, "/")
	}
	return strings.TrimRight(fallback, "/")
}
