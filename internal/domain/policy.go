package domain

import (
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Default policy values.
const DefaultMinNameLength = 8

var (
	defaultForbiddenNameSubstrings     = []string{"admin", "root", "superuser"}
	defaultBannedEmailDomainSubstrings = []string{"10minutesmail", "examplemail", "tempmail"}
)

// validate is shared; validator.Validate caches per-tag parsing and is safe
// for concurrent use.
var validate = validator.New()

// Policy holds the content rules a user record must satisfy before it is
// stored. A Policy is immutable once built: the constructor and the accessors
// copy the substring lists.
type Policy struct {
	minNameLength      int
	forbiddenNameWords []string
	bannedEmailDomains []string
}

// DefaultPolicy returns the built-in rules: names of at least 8 bytes without
// "admin", "root" or "superuser", and no well-known disposable mail domains.
func DefaultPolicy() Policy {
	return NewPolicy(DefaultMinNameLength, defaultForbiddenNameSubstrings, defaultBannedEmailDomainSubstrings)
}

// NewPolicy creates a Policy. A minNameLength below 1 falls back to
// DefaultMinNameLength. Empty substrings are dropped, since an empty string
// would match every name.
func NewPolicy(minNameLength int, forbiddenNameSubstrings, bannedEmailDomainSubstrings []string) Policy {
	if minNameLength < 1 {
		minNameLength = DefaultMinNameLength
	}
	return Policy{
		minNameLength:      minNameLength,
		forbiddenNameWords: compact(forbiddenNameSubstrings),
		bannedEmailDomains: compact(bannedEmailDomainSubstrings),
	}
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// MinNameLength returns the minimum accepted name length in bytes.
func (p Policy) MinNameLength() int {
	return p.minNameLength
}

// ForbiddenNameSubstrings returns a copy of the forbidden name substrings.
func (p Policy) ForbiddenNameSubstrings() []string {
	return slices.Clone(p.forbiddenNameWords)
}

// BannedEmailDomainSubstrings returns a copy of the banned email domain substrings.
func (p Policy) BannedEmailDomainSubstrings() []string {
	return slices.Clone(p.bannedEmailDomains)
}

// CheckNameFormat applies the storage-independent name rules in order:
// length first, then forbidden substrings (case-sensitive).
func (p Policy) CheckNameFormat(name string) error {
	if len(name) < p.minNameLength {
		return ErrNameTooShort
	}
	for _, word := range p.forbiddenNameWords {
		if strings.Contains(name, word) {
			return ErrNameForbiddenWord
		}
	}
	return nil
}

// CheckEmailFormat applies the storage-independent email rules in order:
// syntax first, then banned domain substrings.
func (p Policy) CheckEmailFormat(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return ErrEmailInvalidFormat
	}
	domain := EmailDomain(email)
	for _, banned := range p.bannedEmailDomains {
		if strings.Contains(domain, banned) {
			return ErrEmailBannedDomain
		}
	}
	return nil
}

// EmailDomain returns the part of an address after its last '@', or "" when
// there is none.
func EmailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	return email[at+1:]
}
