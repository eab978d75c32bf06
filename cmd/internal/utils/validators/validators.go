package validators

import (
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// New returns a validator that reports fields by their JSON names and knows
// the custom tags used by request structs.
func New() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(jsonName)
	_ = validate.RegisterValidation("pushendpoint", IsPushEndpoint)
	return validate
}

// IsPushEndpoint accepts absolute https URLs, which is what browsers hand out
// for push services. Plain http is allowed for localhost only.
func IsPushEndpoint(fl validator.FieldLevel) bool {
	u, err := url.Parse(fl.Field().String())
	if err != nil || u.Host == "" {
		return false
	}
	switch u.Scheme {
	case "https":
		return true
	case "http":
		host := u.Hostname()
		return host == "localhost" || host == "127.0.0.1"
	default:
		return false
	}
}

func jsonName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}
