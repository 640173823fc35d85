// Package sync pushes locally created lists, products and memberships
// into the remote store. The push is one-shot per session, sequential,
// and idempotent: an unchanged local collection produces zero remote
// writes on a second run, and local-only additions produce exactly the
// delta. Nothing is ever pulled back or deleted.
package sync

import (
	"context"

	"grocinv/internal/code"
	"grocinv/internal/model"
	"grocinv/internal/remote"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Report summarises one reconciliation pass.
type Report struct {
	ListsPushed    int
	ProductsPushed int
	LinksCreated   int
	ListsSkipped   int
	LinksSkipped   int
	Failures       int
}

// Engine walks the local collection and upserts whatever the remote
// store does not have yet. The store handle is injected so tests can
// substitute a double.
type Engine struct {
	store  remote.Store
	logger zerolog.Logger
}

// New creates a reconciliation engine.
func New(store remote.Store, logger zerolog.Logger) *Engine {
	return &Engine{
		store:  store,
		logger: logger.With().Str("component", "sync-engine").Logger(),
	}
}

// Run executes one reconciliation pass over the given collection.
// Every remote failure is caught and logged; the affected item stays
// unmigrated until the next pass. Run never returns an error.
func (e *Engine) Run(ctx context.Context, lists []model.List) Report {
	var report Report

	e.logger.Info().Int("lists", len(lists)).Msg("starting reconciliation pass")

	remoteCodes := e.fetchListCodes(ctx, &report)
	remoteIDs := e.fetchProductIDs(ctx, &report)

	e.pushLists(ctx, lists, remoteCodes, &report)
	e.pushProducts(ctx, lists, remoteIDs, &report)
	e.pushLinks(ctx, lists, &report)

	e.logger.Info().
		Int("lists_pushed", report.ListsPushed).
		Int("products_pushed", report.ProductsPushed).
		Int("links_created", report.LinksCreated).
		Int("lists_skipped", report.ListsSkipped).
		Int("links_skipped", report.LinksSkipped).
		Int("failures", report.Failures).
		Msg("reconciliation pass finished")

	return report
}

// fetchListCodes bulk-reads the remote list code set. A failed read is
// tolerated: the pass continues with an empty set and relies on the
// store's natural-key upserts for idempotence.
func (e *Engine) fetchListCodes(ctx context.Context, report *Report) *code.Set {
	set, err := e.store.ListCodes(ctx)
	if err != nil {
		e.logger.Error().Err(err).Msg("failed to fetch remote list codes")
		report.Failures++
		return code.NewSet(0)
	}
	return set
}

// fetchProductIDs bulk-reads the remote product database id set, with
// the same failure tolerance as fetchListCodes.
func (e *Engine) fetchProductIDs(ctx context.Context, report *Report) *code.Set {
	set, err := e.store.ProductDatabaseIDs(ctx)
	if err != nil {
		e.logger.Error().Err(err).Msg("failed to fetch remote product database ids")
		report.Failures++
		return code.NewSet(0)
	}
	return set
}

// pushLists upserts every local list whose code is absent remotely.
// Lists already present are skipped entirely; this pass never updates
// an existing remote list row. A list without a valid code gets one
// assigned here as a defensive repair.
func (e *Engine) pushLists(ctx context.Context, lists []model.List, remoteCodes *code.Set, report *Report) {
	usedCodes := code.UsedListCodes(lists)

	for i := range lists {
		if !code.IsValid(lists[i].ListCode) {
			c := code.GenerateUnique(usedCodes)
			usedCodes.Add(c)
			lists[i].ListCode = c
			e.logger.Warn().
				Str("list_id", lists[i].ID).
				Str("list_code", c).
				Msg("list had no valid code, assigned a fresh one")
		}

		if remoteCodes.Contains(lists[i].ListCode) {
			report.ListsSkipped++
			e.logger.Debug().
				Str("list_code", lists[i].ListCode).
				Msg("list already exists remotely, skipping")
			continue
		}

		row := remote.ListRow{
			ListCode:     lists[i].ListCode,
			Name:         lists[i].Name,
			Description:  lists[i].Description,
			Source:       lists[i].Source,
			CreatedAt:    lists[i].CreatedAt,
			LastViewedAt: lists[i].LastViewedAt,
		}
		if err := e.store.UpsertList(ctx, row); err != nil {
			e.logger.Error().Err(err).
				Str("list_code", lists[i].ListCode).
				Msg("list upsert failed, will retry next pass")
			report.Failures++
			continue
		}

		// Later steps in this pass must see the code as present.
		remoteCodes.Add(lists[i].ListCode)
		report.ListsPushed++
	}
}

// pushProducts upserts every local product whose database id is absent
// remotely. Ids pushed earlier in the same pass are remembered so a
// product shared by several lists is upserted once.
func (e *Engine) pushProducts(ctx context.Context, lists []model.List, remoteIDs *code.Set, report *Report) {
	for i := range lists {
		for _, p := range lists[i].Products {
			if p.DatabaseID == "" {
				e.logger.Warn().
					Str("list_code", lists[i].ListCode).
					Str("product", p.Name).
					Msg("product has no database id, skipping push")
				continue
			}
			if remoteIDs.Contains(p.DatabaseID) {
				continue
			}

			row := remote.ProductRow{
				DatabaseID:   p.DatabaseID,
				Name:         p.Name,
				Quantity:     p.Quantity,
				IsCompleted:  p.IsCompleted,
				IsOutOfStock: p.IsOutOfStock,
				ImageURL:     p.ImageURL,
				ImageFit:     p.ImageFit,
				Comment:      p.Comment,
				Category:     p.Category,
			}
			if err := e.store.UpsertProduct(ctx, row); err != nil {
				e.logger.Error().Err(err).
					Str("database_id", p.DatabaseID).
					Msg("product upsert failed, will retry next pass")
				report.Failures++
				continue
			}

			remoteIDs.Add(p.DatabaseID)
			report.ProductsPushed++
		}
	}
}

// pushLinks rebuilds the code->id mappings with fresh bulk reads (the
// remote assigns the row ids, so they are unknown until read back) and
// inserts any missing membership rows.
func (e *Engine) pushLinks(ctx context.Context, lists []model.List, report *Report) {
	listIDs, err := e.store.ListIDsByCode(ctx)
	if err != nil {
		e.logger.Error().Err(err).Msg("failed to fetch list id mapping")
		report.Failures++
		listIDs = map[string]uuid.UUID{}
	}

	productIDs, err := e.store.ProductIDsByDatabaseID(ctx)
	if err != nil {
		e.logger.Error().Err(err).Msg("failed to fetch product id mapping")
		report.Failures++
		productIDs = map[string]uuid.UUID{}
	}

	links, err := e.store.Links(ctx)
	if err != nil {
		e.logger.Error().Err(err).Msg("failed to fetch membership links")
		report.Failures++
		links = map[remote.LinkKey]struct{}{}
	}

	for i := range lists {
		listID, ok := listIDs[lists[i].ListCode]
		if !ok {
			e.logger.Warn().
				Str("list_code", lists[i].ListCode).
				Msg("no remote id for list code, skipping product linking")
			continue
		}

		for _, p := range lists[i].Products {
			productID, ok := productIDs[p.DatabaseID]
			if !ok {
				e.logger.Warn().
					Str("database_id", p.DatabaseID).
					Msg("no remote id for database id, skipping product linking")
				continue
			}

			key := remote.LinkKey{ListID: listID, ProductID: productID}
			if _, exists := links[key]; exists {
				report.LinksSkipped++
				continue
			}

			row := remote.LinkRow{
				ListID:       listID,
				ProductID:    productID,
				Quantity:     p.Quantity,
				IsCompleted:  p.IsCompleted,
				IsOutOfStock: p.IsOutOfStock,
			}
			if err := e.store.InsertLink(ctx, row); err != nil {
				e.logger.Error().Err(err).
					Str("list_code", lists[i].ListCode).
					Str("database_id", p.DatabaseID).
					Msg("membership insert failed, will retry next pass")
				report.Failures++
				continue
			}

			links[key] = struct{}{}
			report.LinksCreated++
		}
	}
}
