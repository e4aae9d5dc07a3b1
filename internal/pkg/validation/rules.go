package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// LumaEventIDPattern is the shape of a Luma event api id
	LumaEventIDPattern = `^evt-[A-Za-z0-9]+$`

	// Folder names become path segments
	FolderPattern = `^[A-Za-z0-9_\-]{1,64}$`

	NameMinLength = 1
	NameMaxLength = 200
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	LumaEventID *regexp.Regexp
	Folder      *regexp.Regexp
}{
	LumaEventID: regexp.MustCompile(LumaEventIDPattern),
	Folder:      regexp.MustCompile(FolderPattern),
}

// emails checks guest addresses with the validator "email" tag
var emails = validator.New()

// NewEventSentinel is the event handle that asks sync to create a new event.
const NewEventSentinel = "new"

// IsLumaEventID reports whether id looks like a Luma event api id.
func IsLumaEventID(id string) bool {
	return CompiledPatterns.LumaEventID.MatchString(id)
}

// IsCreateSentinel reports whether an event handle means "no local event yet":
// the literal "new" or any demo placeholder id.
func IsCreateSentinel(handle string) bool {
	return handle == NewEventSentinel || strings.Contains(handle, "demo")
}

// NormalizeEmail trims and lowercases an address. It returns "" for anything
// that does not look like an email.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || emails.Var(email, "email") != nil {
		return ""
	}
	return email
}

// IsFolderName reports whether name is safe to use as a storage folder.
func IsFolderName(name string) bool {
	return CompiledPatterns.Folder.MatchString(name)
}

// RegisterCustomValidators adds the tags "luma_event_id" and "folder" to v.
func RegisterCustomValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("luma_event_id", func(fl validator.FieldLevel) bool {
		return IsLumaEventID(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("folder", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || IsFolderName(s)
	})
}

// StringValidation checks the trimmed length of a required string
type StringValidation struct {
	Value  string
	MinLen int
	MaxLen int
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{Value: strings.TrimSpace(value)}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// Validate reports whether the value is non-blank and within bounds.
// Lengths count runes.
func (v *StringValidation) Validate() bool {
	if v.Value == "" {
		return false
	}
	n := utf8.RuneCountInString(v.Value)
	if v.MinLen > 0 && n < v.MinLen {
		return false
	}
	if v.MaxLen > 0 && n > v.MaxLen {
		return false
	}
	return true
}

// IsEventName reports whether name is an acceptable event name.
func IsEventName(name string) bool {
	return NewStringValidation(name).WithMinLength(NameMinLength).WithMaxLength(NameMaxLength).Validate()
}
