package contact

import (
	"regexp"
	"strings"
)

// SubmitRequest is the contact form payload. Field names follow the
// frontend's camelCase convention.
type SubmitRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
	Locale    string `json:"locale"`
}

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?[\d\s()-]{8,}$`)
)

// Validate returns a field -> message map; empty means the payload is good.
func (req *SubmitRequest) Validate() map[string]string {
	errs := make(map[string]string)

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Message = strings.TrimSpace(req.Message)

	if req.FirstName == "" {
		errs["firstName"] = "First name is required"
	}
	if req.LastName == "" {
		errs["lastName"] = "Last name is required"
	}
	if req.Email == "" {
		errs["email"] = "Email is required"
	} else if !emailRe.MatchString(req.Email) {
		errs["email"] = "Please enter a valid email address"
	}
	if req.Phone == "" {
		errs["phone"] = "Phone number is required"
	} else if !phoneRe.MatchString(req.Phone) {
		errs["phone"] = "Please enter a valid phone number"
	}
	if req.Message == "" {
		errs["message"] = "Message is required"
	}

	return errs
}
