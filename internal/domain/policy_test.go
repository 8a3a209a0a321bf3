package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()

	if p.MinNameLength() != 8 {
		t.Errorf("Expected min name length 8, got %d", p.MinNameLength())
	}
	if got := strings.Join(p.ForbiddenNameSubstrings(), ","); got != "admin,root,superuser" {
		t.Errorf("Unexpected forbidden words: %s", got)
	}
	if got := strings.Join(p.BannedEmailDomainSubstrings(), ","); got != "10minutesmail,examplemail,tempmail" {
		t.Errorf("Unexpected banned domains: %s", got)
	}
}

func TestNewPolicyCopiesInput(t *testing.T) {
	words := []string{"bad"}
	p := NewPolicy(4, words, nil)
	words[0] = "changed"

	if err := p.CheckNameFormat("verybadname"); !errors.Is(err, ErrNameForbiddenWord) {
		t.Errorf("Expected policy to keep its own copy, got %v", err)
	}

	out := p.ForbiddenNameSubstrings()
	out[0] = "mutated"
	if p.ForbiddenNameSubstrings()[0] != "bad" {
		t.Error("Expected accessor to return a copy")
	}
}

func TestNewPolicyDefaultsAndEmptyWords(t *testing.T) {
	p := NewPolicy(0, []string{"", "root"}, []string{""})
	if p.MinNameLength() != DefaultMinNameLength {
		t.Errorf("Expected fallback min length %d, got %d", DefaultMinNameLength, p.MinNameLength())
	}
	if len(p.ForbiddenNameSubstrings()) != 1 {
		t.Errorf("Expected empty substrings to be dropped, got %v", p.ForbiddenNameSubstrings())
	}
	if err := p.CheckEmailFormat("john@example.com"); err != nil {
		t.Errorf("Expected no banned domains, got %v", err)
	}
}

func TestCheckNameFormat(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"valid name", "johnDoe123", nil},
		{"exactly min length", "abcdefgh", nil},
		{"empty", "", ErrNameTooShort},
		{"short", "me", ErrNameTooShort},
		{"seven chars", "abcdefg", ErrNameTooShort},
		{"short and forbidden reports length", "admin", ErrNameTooShort},
		{"contains admin", "theadmin99", ErrNameForbiddenWord},
		{"contains root", "groot_fan", ErrNameForbiddenWord},
		{"contains superuser", "superuser1", ErrNameForbiddenWord},
		{"match is case sensitive", "TheAdmin99", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.CheckNameFormat(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CheckNameFormat(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestCheckEmailFormat(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"valid", "john@example.com", nil},
		{"valid subdomain", "john.doe@mail.example.org", nil},
		{"empty", "", ErrEmailInvalidFormat},
		{"no at sign", "invalid-email", ErrEmailInvalidFormat},
		{"no local part", "@example.com", ErrEmailInvalidFormat},
		{"no domain", "john@", ErrEmailInvalidFormat},
		{"space in local part", "john doe@example.com", ErrEmailInvalidFormat},
		{"double at", "john@@example.com", ErrEmailInvalidFormat},
		{"tempmail domain", "john@tempmail.com", ErrEmailBannedDomain},
		{"banned substring inside domain", "john@my10minutesmail.net", ErrEmailBannedDomain},
		{"examplemail domain", "john@examplemail.org", ErrEmailBannedDomain},
		{"banned word only in local part", "tempmail@example.com", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.CheckEmailFormat(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CheckEmailFormat(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestEmailDomain(t *testing.T) {
	tests := map[string]string{
		"john@example.com":   "example.com",
		"\"a@b\"@example.com": "example.com",
		"no-at-sign":         "",
	}
	for in, want := range tests {
		if got := EmailDomain(in); got != want {
			t.Errorf("EmailDomain(%q) = %q, want %q", in, got, want)
		}
	}
}
