package service

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"grocinv/internal/code"
	"grocinv/internal/csvimport"
	"grocinv/internal/localstore"
	"grocinv/internal/model"
	"grocinv/internal/share"

	"github.com/rs/zerolog"
)

// listService implements ListService over an in-memory collection that
// is the sole writer of the local document. The mutex keeps the HTTP
// surface to a single logical writer.
type listService struct {
	mu     sync.Mutex
	lists  []model.List
	store  *localstore.Store
	logger zerolog.Logger
}

// NewListService creates a list service seeded with the given
// collection, persisting through the given local store.
func NewListService(lists []model.List, store *localstore.Store, logger zerolog.Logger) ListService {
	return &listService{
		lists:  lists,
		store:  store,
		logger: logger.With().Str("service", "list").Logger(),
	}
}

// persist writes the collection through the local store. The in-memory
// collection stays authoritative; a failed write is logged and retried
// implicitly by the next mutation's full-document overwrite.
func (s *listService) persist() {
	if err := s.store.Save(s.lists); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist list collection")
	}
}

// find returns a pointer into the collection, or nil. Callers hold the mutex.
func (s *listService) find(id string) *model.List {
	for i := range s.lists {
		if s.lists[i].ID == id {
			return &s.lists[i]
		}
	}
	return nil
}

// findProduct resolves a list and product pair. Callers hold the mutex.
func (s *listService) findProduct(listID, productID string) (*model.List, *model.Product, error) {
	l := s.find(listID)
	if l == nil {
		return nil, nil, model.ErrListNotFound
	}
	p := l.FindProduct(productID)
	if p == nil {
		return nil, nil, model.ErrProductNotFound
	}
	return l, p, nil
}

// Lists returns a copy of the whole collection.
func (s *listService) Lists() []model.List {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneAll(s.lists)
}

// Get returns a copy of one list by local id.
func (s *listService) Get(id string) (*model.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.find(id)
	if l == nil {
		return nil, model.ErrListNotFound
	}
	out := l.Clone()
	return &out, nil
}

// MarkViewed stamps the list's last-viewed time and returns it.
func (s *listService) MarkViewed(id string) (*model.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.find(id)
	if l == nil {
		return nil, model.ErrListNotFound
	}

	now := time.Now()
	l.LastViewedAt = &now
	s.persist()

	out := l.Clone()
	return &out, nil
}

// Snapshot returns a copy of the collection for the sync engine.
func (s *listService) Snapshot() []model.List {
	return s.Lists()
}

// Create adds a new empty list with a fresh share code.
func (s *listService) Create(name, description string) (*model.List, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "List name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	list := model.List{
		ID:          strconv.FormatInt(now.UnixMilli(), 10),
		ListCode:    code.GenerateUnique(code.UsedListCodes(s.lists)),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		Source:      model.SourceManual,
		Products:    []model.Product{},
	}
	s.lists = append(s.lists, list)
	s.persist()

	s.logger.Info().
		Str("list_id", list.ID).
		Str("list_code", list.ListCode).
		Msg("list created")

	out := list.Clone()
	return &out, nil
}

// Delete removes a list from the local collection only; remote rows are
// left for the remote store's own lifecycle.
func (s *listService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lists {
		if s.lists[i].ID == id {
			s.lists = append(s.lists[:i], s.lists[i+1:]...)
			s.persist()
			s.logger.Info().Str("list_id", id).Msg("list deleted")
			return nil
		}
	}
	return model.ErrListNotFound
}

// ImportCSV parses CSV content into a new list and adds it. Rejection
// is all-or-nothing: no partial list is ever added.
func (s *listService) ImportCSV(content string) (*model.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := csvimport.Parse(content, code.UsedProductIDs(s.lists), time.Now())
	if err != nil {
		return nil, fmt.Errorf("CSV import failed: %w", err)
	}

	s.lists = append(s.lists, *list)
	s.persist()

	s.logger.Info().
		Str("list_id", list.ID).
		Int("products", len(list.Products)).
		Msg("list imported from CSV")

	out := list.Clone()
	return &out, nil
}

// ImportByCode copies the list matching a share code into a new list.
// The copy gets a fresh local id and a fresh share code so collection
// invariants hold; the products keep their database ids, which is what
// makes them the same products.
func (s *listService) ImportByCode(c string) (*model.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found, err := share.Decode(strings.TrimSpace(c), s.lists)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	imported := found.Clone()
	imported.ID = strconv.FormatInt(now.UnixMilli(), 10)
	imported.ListCode = code.GenerateUnique(code.UsedListCodes(s.lists))
	imported.Source = model.SourceCodeImport
	imported.LastViewedAt = nil

	s.lists = append(s.lists, imported)
	s.persist()

	s.logger.Info().
		Str("list_id", imported.ID).
		Str("from_code", found.ListCode).
		Msg("list imported from share code")

	out := imported.Clone()
	return &out, nil
}

// Share exports a list's share code and QR image. QR rendering failure
// degrades to a nil image; the code itself is always returned.
func (s *listService) Share(id string) (*ShareInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.find(id)
	if l == nil {
		return nil, model.ErrListNotFound
	}

	info := &ShareInfo{Code: share.Encode(*l)}
	png, err := share.QRImage(info.Code)
	if err != nil {
		s.logger.Warn().Err(err).Str("list_code", info.Code).Msg("QR rendering failed, returning text code only")
	} else {
		info.QRImage = png
	}
	return info, nil
}

// AddProduct appends a product with a fresh unique database id.
func (s *listService) AddProduct(listID string, in ProductInput) (*model.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Product name is required")
	}
	fit := in.ImageFit
	if fit == "" {
		fit = model.ImageFitCover
	}
	if !model.ValidImageFit(fit) {
		return nil, model.ErrInvalidImageFit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.find(listID)
	if l == nil {
		return nil, model.ErrListNotFound
	}

	now := time.Now()
	product := model.Product{
		ID:         strconv.FormatInt(now.UnixMilli(), 10),
		DatabaseID: code.GenerateUnique(code.UsedProductIDs(s.lists)),
		Name:       in.Name,
		ImageURL:   in.ImageURL,
		ImageFit:   fit,
		Comment:    in.Comment,
		Category:   in.Category,
	}
	l.Products = append(l.Products, product)
	s.persist()

	s.logger.Info().
		Str("list_id", listID).
		Str("database_id", product.DatabaseID).
		Msg("product added")

	return &product, nil
}

// UpdateProduct edits a product's user-editable fields.
func (s *listService) UpdateProduct(listID, productID string, in ProductInput) (*model.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Product name is required")
	}
	if in.ImageFit != "" && !model.ValidImageFit(in.ImageFit) {
		return nil, model.ErrInvalidImageFit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, p, err := s.findProduct(listID, productID)
	if err != nil {
		return nil, err
	}

	p.Name = in.Name
	p.ImageURL = in.ImageURL
	p.ImageFit = in.ImageFit
	p.Comment = in.Comment
	p.Category = in.Category
	s.persist()

	out := *p
	return &out, nil
}

// DeleteProduct removes a product from its list.
func (s *listService) DeleteProduct(listID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.find(listID)
	if l == nil {
		return model.ErrListNotFound
	}
	for i := range l.Products {
		if l.Products[i].ID == productID {
			l.Products = append(l.Products[:i], l.Products[i+1:]...)
			s.persist()
			return nil
		}
	}
	return model.ErrProductNotFound
}

// AdjustQuantity changes a product's quantity by a delta, floored at zero.
func (s *listService) AdjustQuantity(listID, productID string, change int) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, p, err := s.findProduct(listID, productID)
	if err != nil {
		return nil, err
	}

	p.Quantity += change
	if p.Quantity < 0 {
		p.Quantity = 0
	}
	s.persist()

	out := *p
	return &out, nil
}

// SetQuantity sets a product's quantity; negative values are rejected.
func (s *listService) SetQuantity(listID, productID string, quantity int) (*model.Product, error) {
	if quantity < 0 {
		return nil, model.ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, p, err := s.findProduct(listID, productID)
	if err != nil {
		return nil, err
	}

	p.Quantity = quantity
	s.persist()

	out := *p
	return &out, nil
}

// ToggleCompletion flips completion. The completedAt stamp is set
// exactly on the false-to-true transition and cleared on any transition
// back to false.
func (s *listService) ToggleCompletion(listID, productID string) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, p, err := s.findProduct(listID, productID)
	if err != nil {
		return nil, err
	}

	p.IsCompleted = !p.IsCompleted
	if p.IsCompleted {
		now := time.Now()
		p.CompletedAt = &now
	} else {
		p.CompletedAt = nil
	}
	s.persist()

	out := *p
	return &out, nil
}

// ToggleOutOfStock flips the out-of-stock flag, independent of completion.
func (s *listService) ToggleOutOfStock(listID, productID string) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, p, err := s.findProduct(listID, productID)
	if err != nil {
		return nil, err
	}

	p.IsOutOfStock = !p.IsOutOfStock
	s.persist()

	out := *p
	return &out, nil
}

// ResetQuantity zeroes one product's quantity.
func (s *listService) ResetQuantity(listID, productID string) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, p, err := s.findProduct(listID, productID)
	if err != nil {
		return nil, err
	}

	p.Quantity = 0
	s.persist()

	out := *p
	return &out, nil
}

// ResetAll zeroes quantities and clears completion state for a whole list.
func (s *listService) ResetAll(listID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.find(listID)
	if l == nil {
		return model.ErrListNotFound
	}

	for i := range l.Products {
		l.Products[i].Quantity = 0
		l.Products[i].IsCompleted = false
		l.Products[i].CompletedAt = nil
	}
	s.persist()

	s.logger.Info().Str("list_id", listID).Msg("list reset")
	return nil
}
