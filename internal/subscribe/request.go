package subscribe

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/zainmh-10/CreateAILab/internal/domain"
)

const (
	maxEmailLen  = 320
	maxSourceLen = 120
)

// Request is the JSON body of the sign-up form.
type Request struct {
	Email  string  `json:"email"`
	Source *string `json:"source,omitempty"`
	// Website is a honeypot: the field is hidden from humans.
	Website       *string `json:"website,omitempty"`
	FormStartedAt *int64  `json:"formStartedAt,omitempty"`
}

// Client describes who sent the request.
type Client struct {
	IP        string
	UserAgent string
}

type input struct {
	email     string
	source    string
	honeypot  string
	startedAt int64 // unix ms, 0 when absent
}

func (r Request) validate() (input, error) {
	in := input{email: strings.TrimSpace(r.Email)}

	if in.email == "" || utf8.RuneCountInString(in.email) > maxEmailLen {
		return input{}, fmt.Errorf("%w: email length", domain.ErrValidation)
	}
	addr, err := mail.ParseAddress(in.email)
	if err != nil || addr.Address != in.email {
		return input{}, fmt.Errorf("%w: email address", domain.ErrValidation)
	}

	if r.Source != nil {
		in.source = strings.TrimSpace(*r.Source)
		if utf8.RuneCountInString(in.source) > maxSourceLen {
			return input{}, fmt.Errorf("%w: source too long", domain.ErrValidation)
		}
	}
	if r.Website != nil {
		in.honeypot = strings.TrimSpace(*r.Website)
	}
	if r.FormStartedAt != nil {
		if *r.FormStartedAt <= 0 {
			return input{}, fmt.Errorf("%w: formStartedAt must be positive", domain.ErrValidation)
		}
		in.startedAt = *r.FormStartedAt
	}
	return in, nil
}

var botMarkers = []string{"bot", "crawler", "spider"}

func likelyBot(userAgent string) bool {
	ua := strings.ToLower(userAgent)
	for _, m := range botMarkers {
		if strings.Contains(ua, m) {
			return true
		}
	}
	return false
}
