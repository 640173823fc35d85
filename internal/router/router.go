package router

import (
	"net/http"
	"strings"

	"grocinv/internal/handler"
	"grocinv/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	listHandler *handler.ListHandler,
	productHandler *handler.ProductHandler,
	catalogHandler *handler.CatalogHandler,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// List collection and per-list routes
	listRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		segments := splitPath(r.URL.Path, "/api/lists")

		switch {
		case len(segments) == 0:
			if r.Method == http.MethodPost {
				listHandler.Create(w, r)
				return
			}
			listHandler.GetAll(w, r)

		case len(segments) == 1:
			if r.Method == http.MethodDelete {
				listHandler.Delete(w, r, segments[0])
				return
			}
			listHandler.GetByID(w, r, segments[0])

		case len(segments) == 2 && segments[1] == "share":
			listHandler.Share(w, r, segments[0])

		case len(segments) == 2 && segments[1] == "reset":
			listHandler.Reset(w, r, segments[0])

		case len(segments) == 2 && segments[1] == "products":
			productHandler.Add(w, r, segments[0])

		case len(segments) == 3 && segments[1] == "products":
			if r.Method == http.MethodDelete {
				productHandler.Delete(w, r, segments[0], segments[2])
				return
			}
			productHandler.Update(w, r, segments[0], segments[2])

		case len(segments) == 4 && segments[1] == "products":
			switch segments[3] {
			case "quantity":
				productHandler.Quantity(w, r, segments[0], segments[2])
			case "complete":
				productHandler.ToggleComplete(w, r, segments[0], segments[2])
			case "stock":
				productHandler.ToggleStock(w, r, segments[0], segments[2])
			default:
				http.Error(w, "not found", http.StatusNotFound)
			}

		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}

	// Register list routes (both with and without trailing slash)
	mux.HandleFunc("/api/lists", listRouteHandler)
	mux.HandleFunc("/api/lists/", listRouteHandler)

	// Import routes
	mux.HandleFunc("/api/import/code", listHandler.ImportCode)
	mux.HandleFunc("/api/import/csv", listHandler.ImportCSV)

	// Catalog search
	mux.HandleFunc("/api/catalog/search", catalogHandler.Search)

	// Apply middleware in order: Recovery -> Logging -> CORS
	var h http.Handler = mux
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}

// splitPath returns the path segments below a route prefix.
func splitPath(path, prefix string) []string {
	rest := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	if rest == "" {
		return nil
	}
	return strings.Split(rest, "/")
}
