package handlers

import (
	"strings"
	"unicode/utf8"

	"mgepcar/internal/models"
)

// Validation limits for form and listing fields.
const (
	maxNameLen    = 200
	maxEmailLen   = 320
	maxPhoneLen   = 40
	maxMessageLen = 5_000
	maxBrandLen   = 100
	maxModelLen   = 100
	maxVersionLen = 200
	maxURLLen     = 2_000
	maxFeatures   = 50
	maxImages     = 30
)

// validateContact checks contact form inputs and returns the first error found.
func validateContact(name, email, message string) string {
	if strings.TrimSpace(name) == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 200 characters)."
	}
	if errMsg := validateEmail(email); errMsg != "" {
		return errMsg
	}
	if strings.TrimSpace(message) == "" {
		return "Message is required."
	}
	if utf8.RuneCountInString(message) > maxMessageLen {
		return "Message is too long (max 5,000 characters)."
	}
	return ""
}

// validateAdvertise checks sell-your-car form inputs.
func validateAdvertise(m *models.AdvertiseMessage) string {
	if strings.TrimSpace(m.Name) == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(m.Name) > maxNameLen {
		return "Name is too long (max 200 characters)."
	}
	if strings.TrimSpace(m.Phone) == "" {
		return "Phone is required."
	}
	if utf8.RuneCountInString(m.Phone) > maxPhoneLen {
		return "Phone is too long (max 40 characters)."
	}
	if utf8.RuneCountInString(m.Brand) > maxBrandLen {
		return "Brand is too long (max 100 characters)."
	}
	if utf8.RuneCountInString(m.Model) > maxModelLen {
		return "Model is too long (max 100 characters)."
	}
	if m.Mileage < 0 {
		return "Mileage must not be negative."
	}
	return ""
}

// validateInterest checks buyer lead inputs.
func validateInterest(name, email string) string {
	if strings.TrimSpace(name) == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 200 characters)."
	}
	return validateEmail(email)
}

// validateEmail performs a minimal shape check. Deliverability is not
// verified; the inbox is read by humans who can discard junk.
func validateEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return "Email is required."
	}
	if utf8.RuneCountInString(email) > maxEmailLen {
		return "Email is too long."
	}
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return "Email address is not valid."
	}
	return ""
}

// validateListing checks admin listing payloads beyond the model's own
// Validate, covering lengths and collection sizes.
func validateListing(l *models.Listing) string {
	if err := l.Validate(); err != nil {
		return err.Error()
	}
	if utf8.RuneCountInString(l.Brand) > maxBrandLen {
		return "Brand is too long (max 100 characters)."
	}
	if utf8.RuneCountInString(l.Model) > maxModelLen {
		return "Model is too long (max 100 characters)."
	}
	if utf8.RuneCountInString(l.Version) > maxVersionLen {
		return "Version is too long (max 200 characters)."
	}
	if utf8.RuneCountInString(l.Image) > maxURLLen {
		return "Image URL is too long."
	}
	if len(l.Images) > maxImages {
		return "Too many images (max 30)."
	}
	for _, img := range l.Images {
		if utf8.RuneCountInString(img) > maxURLLen {
			return "Image URL is too long."
		}
	}
	if len(l.Features) > maxFeatures {
		return "Too many features (max 50)."
	}
	if l.YearFab < 0 || l.YearMod < 0 {
		return "Year must not be negative."
	}
	return ""
}
