// Package share maps lists to their 6-character share codes and back.
// The code is the list's identity, not an encoding of its content: it
// stays 6 characters no matter how large the list is, and decoding is a
// lookup against the local collection.
package share

import (
	"grocinv/internal/model"
)

// Encode returns the list's share code verbatim.
func Encode(list model.List) string {
	return list.ListCode
}

// Decode finds the list whose list_code exactly matches code. The
// remote store is never consulted.
func Decode(c string, lists []model.List) (*model.List, error) {
	for i := range lists {
		if lists[i].ListCode == c {
			found := lists[i].Clone()
			return &found, nil
		}
	}
	return nil, model.ErrListNotFound
}
