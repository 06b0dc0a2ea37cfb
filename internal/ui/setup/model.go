// Package setup implements the first-run form that collects the backend
// URL and access token before the notification panel can start.
package setup

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/huh"
)

// Values holds the connection settings collected by the form.
type Values struct {
	BaseURL string
	Token   string
}

// validateRequired returns a validator rejecting empty input.
func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// validateURL rejects values that do not parse as absolute http(s) URLs.
func validateURL(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("must be an absolute http(s) URL")
	}
	return nil
}

// NewForm builds the connection form writing into v.
func NewForm(v *Values) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Backend URL").
				Description("WorkSphere API root (e.g., https://api.worksphere.example.com)").
				Placeholder("https://api.worksphere.example.com").
				Value(&v.BaseURL).
				Validate(validateURL),
			huh.NewInput().
				Title("Access Token").
				Description("Your WorkSphere access token").
				EchoMode(huh.EchoModePassword).
				Value(&v.Token).
				Validate(validateRequired("Token")),
		),
	)
}

// Run executes the form interactively and returns the collected values.
func Run() (*Values, error) {
	var v Values
	if err := NewForm(&v).Run(); err != nil {
		return nil, fmt.Errorf("running setup form: %w", err)
	}
	v.BaseURL = strings.TrimRight(strings.TrimSpace(v.BaseURL), "/")
	return &v, nil
}
