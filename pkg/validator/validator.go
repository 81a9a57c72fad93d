package validator

import (
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	initOnce  sync.Once
	validate  *validator.Validate
	sanitizer *bluemonday.Policy

	slugPattern  = regexp.MustCompile(`^[a-z0-9-]+$`)
	colorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-z]+(-[a-z]+)*-[0-9]{2,3})$`)
	urlPattern   = regexp.MustCompile(`^https?://[a-zA-Z0-9\-\.]+\.[a-zA-Z]{2,}(:[0-9]+)?(/.*)?$`)
	spaces       = regexp.MustCompile(`\s+`)
)

// Init prepares the shared validator. It is safe to call more than once; the
// package initialises itself lazily when Init is never called.
func Init() {
	initOnce.Do(func() {
		validate = validator.New()

		sanitizer = bluemonday.UGCPolicy()
		sanitizer.AllowAttrs("class", "id").Globally()

		registerCustomValidations(validate)

		if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
			registerCustomValidations(engine)
		}
	})
}

func registerCustomValidations(v *validator.Validate) {
	v.RegisterValidation("notblank", validateNotBlank)
	v.RegisterValidation("slug", validateSlug)
	v.RegisterValidation("no_html", validateNoHTML)
	v.RegisterValidation("color", validateColor)
	v.RegisterValidation("route", validateRoute)
}

func Validate(s interface{}) error {
	Init()
	return validate.Struct(s)
}

func SanitizeHTML(html string) string {
	Init()
	return sanitizer.Sanitize(html)
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateSlug(fl validator.FieldLevel) bool {
	return slugPattern.MatchString(fl.Field().String())
}

func validateNoHTML(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return !strings.Contains(value, "<") && !strings.Contains(value, ">")
}

// validateColor accepts hex colours and utility classes such as bg-blue-500.
func validateColor(fl validator.FieldLevel) bool {
	return colorPattern.MatchString(fl.Field().String())
}

// validateRoute accepts site-relative paths and absolute http(s) URLs.
func validateRoute(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if strings.HasPrefix(value, "/") {
		return !strings.ContainsAny(value, " \t\n")
	}
	return ValidateURL(value)
}

func NormalizeSpaces(s string) string {
	return spaces.ReplaceAllString(strings.TrimSpace(s), " ")
}

func ValidateURL(url string) bool {
	return urlPattern.MatchString(url)
}
