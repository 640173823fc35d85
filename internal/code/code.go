// Package code generates the 6-character identifiers used for both the
// list share-code namespace and the product database-id namespace.
package code

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"grocinv/internal/model"
)

// Alphabet is the symbol set codes are drawn from: lowercase letters
// and digits, 36 symbols, so 36^6 possible codes.
const Alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Length is the fixed code length.
const Length = 6

// maxAttempts bounds the uniqueness resampling loop.
const maxAttempts = 100

// Generate returns a random 6-character code.
func Generate() string {
	var b [Length]byte
	for i := range b {
		b[i] = Alphabet[rand.IntN(len(Alphabet))]
	}
	return string(b[:])
}

// GenerateUnique returns a code absent from existing. After 100 failed
// attempts it falls back to a timestamp-derived code; the fallback is
// not re-checked against existing, so an accepted residual collision
// risk remains under extreme contention.
func GenerateUnique(existing *Set) string {
	var c string
	attempts := 0
	for {
		c = Generate()
		attempts++
		if !existing.Contains(c) || attempts >= maxAttempts {
			break
		}
	}
	if attempts >= maxAttempts {
		c = timestampCode(time.Now())
	}
	return c
}

// IsValid reports whether c is exactly 6 characters from the alphabet.
func IsValid(c string) bool {
	if len(c) != Length {
		return false
	}
	for i := 0; i < len(c); i++ {
		if !strings.ContainsRune(Alphabet, rune(c[i])) {
			return false
		}
	}
	return true
}

// UsedListCodes derives the set of list codes in use across the given
// collection.
func UsedListCodes(lists []model.List) *Set {
	used := NewSet(len(lists))
	for _, l := range lists {
		if l.ListCode != "" {
			used.Add(l.ListCode)
		}
	}
	return used
}

// UsedProductIDs derives the set of product database ids in use across
// all products of all lists in the given collection.
func UsedProductIDs(lists []model.List) *Set {
	used := NewSet(64)
	for _, l := range lists {
		for _, p := range l.Products {
			if p.DatabaseID != "" {
				used.Add(p.DatabaseID)
			}
		}
	}
	return used
}

// timestampCode encodes now as base-36 millis, keeping the last 6
// characters and left-padding with zeroes.
func timestampCode(now time.Time) string {
	s := strconv.FormatInt(now.UnixMilli(), 36)
	if len(s) > Length {
		s = s[len(s)-Length:]
	}
	for len(s) < Length {
		s = "0" + s
	}
	return s
}
