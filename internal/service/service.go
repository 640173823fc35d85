package service

import (
	"grocinv/internal/model"
)

// ProductInput carries the user-editable fields of a product.
type ProductInput struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
	ImageFit string `json:"image_fit"`
	Comment  string `json:"comment"`
	Category string `json:"category"`
}

// ShareInfo is the result of exporting a list: the 6-character share
// code, plus a PNG QR rendering of it when available. QRImage is nil
// when rendering failed; the text code is always usable on its own.
type ShareInfo struct {
	Code    string
	QRImage []byte
}

// ListService defines operations on the restock list collection. Every
// mutation is persisted to the local document before it returns.
type ListService interface {
	// Lists returns a copy of the whole collection.
	Lists() []model.List

	// Get returns a copy of one list by local id.
	Get(id string) (*model.List, error)

	// MarkViewed stamps the list's last-viewed time and returns it.
	MarkViewed(id string) (*model.List, error)

	// Snapshot returns a copy of the collection for the sync engine.
	Snapshot() []model.List

	// Create adds a new empty list with a fresh share code.
	Create(name, description string) (*model.List, error)

	// Delete removes a list from the local collection only.
	Delete(id string) error

	// ImportCSV parses CSV content into a new list and adds it.
	ImportCSV(content string) (*model.List, error)

	// ImportByCode copies the list matching a share code into a new list.
	ImportByCode(code string) (*model.List, error)

	// Share exports a list's share code and QR image.
	Share(id string) (*ShareInfo, error)

	// AddProduct appends a product with a fresh unique database id.
	AddProduct(listID string, in ProductInput) (*model.Product, error)

	// UpdateProduct edits a product's user-editable fields.
	UpdateProduct(listID, productID string, in ProductInput) (*model.Product, error)

	// DeleteProduct removes a product from its list.
	DeleteProduct(listID, productID string) error

	// AdjustQuantity changes a product's quantity by a delta, floored at zero.
	AdjustQuantity(listID, productID string, change int) (*model.Product, error)

	// SetQuantity sets a product's quantity; negative values are rejected.
	SetQuantity(listID, productID string, quantity int) (*model.Product, error)

	// ToggleCompletion flips completion, maintaining the completedAt stamp.
	ToggleCompletion(listID, productID string) (*model.Product, error)

	// ToggleOutOfStock flips the out-of-stock flag.
	ToggleOutOfStock(listID, productID string) (*model.Product, error)

	// ResetQuantity zeroes one product's quantity.
	ResetQuantity(listID, productID string) (*model.Product, error)

	// ResetAll zeroes quantities and clears completion for a whole list.
	ResetAll(listID string) error
}
