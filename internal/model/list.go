package model

import "time"

// Source provenance markers for a list.
const (
	SourceManual     = "Manual Entry"
	SourceCSVImport  = "Imported from CSV"
	SourceCodeImport = "Imported from Code"
)

// List is a named restock list. ListCode is the 6-character share code;
// ID is the local, timestamp-derived identifier.
type List struct {
	ID           string     `json:"id"`
	ListCode     string     `json:"list_code"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Source       string     `json:"source,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastViewedAt *time.Time `json:"lastViewedAt,omitempty"`
	Products     []Product  `json:"products"`
}

// FindProduct returns the product with the given local id, or nil.
func (l *List) FindProduct(productID string) *Product {
	for i := range l.Products {
		if l.Products[i].ID == productID {
			return &l.Products[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the list.
func (l List) Clone() List {
	out := l
	if l.LastViewedAt != nil {
		t := *l.LastViewedAt
		out.LastViewedAt = &t
	}
	out.Products = make([]Product, len(l.Products))
	for i, p := range l.Products {
		if p.CompletedAt != nil {
			t := *p.CompletedAt
			p.CompletedAt = &t
		}
		out.Products[i] = p
	}
	return out
}

// CloneAll deep-copies a whole collection.
func CloneAll(lists []List) []List {
	out := make([]List, len(lists))
	for i, l := range lists {
		out[i] = l.Clone()
	}
	return out
}
