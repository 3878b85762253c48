package contact

import (
	"fmt"
	"net/mail"
	"net/url"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	DateLayout       = "2006-01-02"
	MaxMessageLength = 5000
	minPhoneDigits   = 8
	maxPhoneDigits   = 15
)

// Form is the contact form as posted by the browser.
type Form struct {
	Name            string `form:"name" json:"name"`
	Email           string `form:"email" json:"email"`
	Phone           string `form:"phone" json:"phone"`
	ServiceInterest string `form:"service_interest" json:"service_interest"`
	Date            string `form:"date" json:"date"`
	Message         string `form:"message" json:"message"`
}

// ValidationErrors maps a form field to the problem with it.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, v[field]))
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// Prefill seeds a blank form from the link that led to the contact page.
func Prefill(query url.Values) Form {
	var f Form

	f.ServiceInterest = strings.TrimSpace(query.Get("service"))
	if f.ServiceInterest == "" {
		f.ServiceInterest = strings.TrimSpace(query.Get("interest"))
	}

	if size := strings.TrimSpace(query.Get("size")); size != "" {
		f.Message = fmt.Sprintf("I'm interested in a %s canvas print.", size)
	}
	return f
}

func (f *Form) trim() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.ServiceInterest = strings.TrimSpace(f.ServiceInterest)
	f.Date = strings.TrimSpace(f.Date)
	f.Message = strings.TrimSpace(f.Message)
}

// Validate trims the form in place and checks it against today's date.
// The returned error is a ValidationErrors.
func (f *Form) Validate(now time.Time) error {
	f.trim()
	errs := ValidationErrors{}

	if f.Name == "" {
		errs["name"] = "is required"
	}

	switch {
	case f.Email == "":
		errs["email"] = "is required"
	case !validEmail(f.Email):
		errs["email"] = "is not a valid address"
	}

	switch {
	case f.Phone == "":
		errs["phone"] = "is required"
	case !IsValidPhoneNumber(f.Phone):
		errs["phone"] = "is not a valid phone number"
	}

	if f.Date != "" {
		if _, err := f.PreferredDate(now); err != nil {
			errs["date"] = err.Error()
		}
	}

	switch {
	case f.Message == "":
		errs["message"] = "is required"
	case utf8.RuneCountInString(f.Message) > MaxMessageLength:
		errs["message"] = fmt.Sprintf("must be at most %d characters", MaxMessageLength)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PreferredDate parses the optional date field. A nil result means none
// was given.
func (f *Form) PreferredDate(now time.Time) (*time.Time, error) {
	if f.Date == "" {
		return nil, nil
	}

	d, err := time.Parse(DateLayout, f.Date)
	if err != nil {
		return nil, fmt.Errorf("must be a date in YYYY-MM-DD form")
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if d.Before(today) {
		return nil, fmt.Errorf("must not be in the past")
	}
	return &d, nil
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	if addr.Address != s {
		// "Name <a@b>" style input
		return false
	}
	at := strings.LastIndex(s, "@")
	return strings.Contains(s[at+1:], ".")
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// NormalizePhoneNumber returns Australian numbers in E.164 form and keeps
// other international numbers as +digits.
func NormalizePhoneNumber(phone string) string {
	cleaned := digitsOnly(phone)
	trimmed := strings.TrimSpace(phone)

	switch {
	case strings.HasPrefix(trimmed, "+"):
		return "+" + cleaned
	case strings.HasPrefix(cleaned, "61") && len(cleaned) == 11:
		return "+" + cleaned
	case strings.HasPrefix(cleaned, "0") && len(cleaned) == 10:
		return "+61" + cleaned[1:]
	}
	return cleaned
}

var fakeNumbers = map[string]bool{
	"00000000":   true,
	"12345678":   true,
	"0000000000": true,
	"1111111111": true,
	"1234567890": true,
	"0123456789": true,
	"9999999999": true,
}

func IsValidPhoneNumber(phone string) bool {
	trimmed := strings.TrimSpace(phone)
	if trimmed == "" {
		return false
	}

	for _, r := range trimmed {
		if !unicode.IsDigit(r) && !strings.ContainsRune("+ ()-.", r) {
			return false
		}
	}
	if strings.LastIndex(trimmed, "+") > 0 {
		return false
	}

	cleaned := digitsOnly(trimmed)
	if len(cleaned) < minPhoneDigits || len(cleaned) > maxPhoneDigits {
		return false
	}
	return !fakeNumbers[cleaned]
}

// TemplateParams are the variables the email template renders.
func TemplateParams(f Form) map[string]string {
	return map[string]string{
		"name":    f.Name,
		"email":   f.Email,
		"phone":   f.Phone,
		"service": f.ServiceInterest,
		"date":    f.Date,
		"message": f.Message,
	}
}
