package auth

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type SignupRequest struct {
	InternID  string `json:"internId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (r SignupRequest) Validate() string {
	if strings.TrimSpace(r.InternID) == "" {
		return "Intern ID is required"
	}
	if strings.TrimSpace(r.FirstName) == "" {
		return "First name is required"
	}
	if strings.TrimSpace(r.LastName) == "" {
		return "Last name is required"
	}
	if !emailPattern.MatchString(r.Email) {
		return "Invalid email address"
	}
	if len(r.Password) < 6 {
		return "Password must be at least 6 characters long"
	}
	return ""
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() string {
	if !emailPattern.MatchString(r.Email) {
		return "Invalid email address"
	}
	if r.Password == "" {
		return "Password is required"
	}
	return ""
}

// GoogleLoginRequest carries the raw ID token issued by Google Sign-In.
type GoogleLoginRequest struct {
	Token string `json:"token"`
}

func (r GoogleLoginRequest) Validate() string {
	if r.Token == "" {
		return "Token is required"
	}
	return ""
}

// CompleteProfileRequest finishes a federated signup: the verified email plus
// the profile fields the Google payload does not carry.
type CompleteProfileRequest struct {
	Email     string `json:"email"`
	InternID  string `json:"internId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (r CompleteProfileRequest) Validate() string {
	if !emailPattern.MatchString(r.Email) {
		return "Invalid email address"
	}
	if strings.TrimSpace(r.InternID) == "" {
		return "Intern ID is required"
	}
	if strings.TrimSpace(r.FirstName) == "" {
		return "First name is required"
	}
	if strings.TrimSpace(r.LastName) == "" {
		return "Last name is required"
	}
	return ""
}
