// Package csvimport turns a restricted CSV dialect into one new restock
// list. The dialect has no quoting or escaping: line 1 carries the list
// name in its first field, each later line is
// name,category,image_url,comment with fields trimmed positionally.
package csvimport

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"grocinv/internal/code"
	"grocinv/internal/model"
)

// DefaultListName is used when the first field of row 0 is blank.
const DefaultListName = "Imported List"

// Parse parses CSV content into a new list. used must hold every
// product database id already present in the local collection; ids
// generated for this batch are added to it so the batch stays
// internally unique as well. The only rejected input is one with no
// non-blank lines; malformed rows are taken as-is.
func Parse(content string, used *code.Set, now time.Time) (*model.List, error) {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, model.ErrEmptyCSV
	}

	listName := strings.TrimSpace(strings.Split(lines[0], ",")[0])
	if listName == "" {
		listName = DefaultListName
	}

	products := make([]model.Product, 0, len(lines)-1)
	for i := 1; i < len(lines); i++ {
		parts := strings.Split(lines[i], ",")
		for j := range parts {
			parts[j] = strings.TrimSpace(parts[j])
		}

		name := field(parts, 0)
		if name == "" {
			name = fmt.Sprintf("Product %d", len(products)+1)
		}

		id := code.GenerateUnique(used)
		used.Add(id)

		products = append(products, model.Product{
			ID:         fmt.Sprintf("%d-%d", now.UnixMilli(), len(products)),
			DatabaseID: id,
			Name:       name,
			Category:   field(parts, 1),
			ImageURL:   field(parts, 2),
			Comment:    field(parts, 3),
		})
	}

	return &model.List{
		ID:          strconv.FormatInt(now.UnixMilli(), 10),
		Name:        listName,
		Description: fmt.Sprintf("Imported from CSV on %s", now.Format("1/2/2006")),
		CreatedAt:   now,
		Source:      model.SourceCSVImport,
		Products:    products,
	}, nil
}

// field returns parts[i] or "" when the row has fewer fields. Fields
// past the fourth are ignored by the callers above.
func field(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return ""
}
