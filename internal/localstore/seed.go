package localstore

import (
	"time"

	"grocinv/internal/model"
)

// Seed returns the sample collection used when no document exists yet.
// Codes and ids are filled in by Normalize on the way out.
func Seed() []model.List {
	return []model.List{
		{
			ID:          "1",
			Name:        "Toast",
			Description: "Basic toast items",
			CreatedAt:   time.Date(2025, 7, 30, 0, 0, 0, 0, time.UTC),
			Source:      model.SourceManual,
			Products:    []model.Product{},
		},
		{
			ID:          "2",
			Name:        "Sparkling Water",
			Description: "Imported from Shopify on 10/26/23",
			CreatedAt:   time.Date(2025, 7, 23, 0, 0, 0, 0, time.UTC),
			Source:      "Imported from Shopify",
			Products: []model.Product{
				{
					ID:          "2-1",
					DatabaseID:  "bb2a7c",
					Name:        "Blackberry Tangerine",
					Quantity:    4,
					IsCompleted: true,
					Category:    "Beverages",
					ImageURL:    "https://images.unsplash.com/photo-1581635439309-ab4edce0c040?w=300&h=300&fit=crop",
				},
				{
					ID:          "2-2",
					DatabaseID:  "bn8f4k",
					Name:        "Blueberry Nectarine",
					Quantity:    4,
					IsCompleted: true,
					Category:    "Beverages",
					ImageURL:    "https://images.unsplash.com/photo-1560458675-fc20e3b8a1e2?w=300&h=300&fit=crop",
				},
				{
					ID:         "2-3",
					DatabaseID: "cl9x2m",
					Name:       "Cherry Lime",
					Category:   "Beverages",
				},
				{
					ID:         "2-4",
					DatabaseID: "pg7n5q",
					Name:       "Pomegranate",
					Category:   "Beverages",
				},
			},
		},
	}
}
