package model

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	maskVisiblePrefix = 4
	maskVisibleSuffix = 4
	maskRune          = '*'
)

// ErrAccountTooShort is returned for identifiers that masking would leave
// fully visible.
var ErrAccountTooShort = errors.New("account identifier too short to mask")

// AccountRef is a masked account identifier. The ledger only ever stores and
// compares AccountRef values, never raw identifiers.
type AccountRef string

// MaskAccount redacts everything but the first and last four characters of
// raw. Masking is idempotent and identifiers sharing the same first/last four
// characters mask to the same reference.
func MaskAccount(raw string) AccountRef {
	raw = strings.TrimSpace(raw)
	if !maskable(raw) {
		return AccountRef(raw)
	}
	runes := []rune(raw)

	var b strings.Builder
	b.Grow(len(raw))
	for i, r := range runes {
		if i < maskVisiblePrefix || i >= len(runes)-maskVisibleSuffix {
			b.WriteRune(r)
			continue
		}
		b.WriteRune(maskRune)
	}
	return AccountRef(b.String())
}

// ParseAccount masks raw, rejecting identifiers of eight characters or fewer
// since MaskAccount would store them unredacted.
func ParseAccount(raw string) (AccountRef, error) {
	raw = strings.TrimSpace(raw)
	if !maskable(raw) {
		return "", fmt.Errorf("%w: %d characters, need more than %d",
			ErrAccountTooShort, utf8.RuneCountInString(raw), maskVisiblePrefix+maskVisibleSuffix)
	}
	return MaskAccount(raw), nil
}

// maskable reports whether raw is long enough to hide anything.
func maskable(raw string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(raw)) > maskVisiblePrefix+maskVisibleSuffix
}

// String implements fmt.Stringer.
func (a AccountRef) String() string {
	return string(a)
}

// IsZero reports whether the reference is empty.
func (a AccountRef) IsZero() bool {
	return a == ""
}
