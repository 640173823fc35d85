package model

import "time"

// Image fit values accepted for Product.ImageFit.
const (
	ImageFitCover     = "cover"
	ImageFitContain   = "contain"
	ImageFitFill      = "fill"
	ImageFitScaleDown = "scale-down"
)

// Product is one entry on a restock list. ID is only unique within its
// list; DatabaseID is the 6-character code identifying "the same
// product" across lists and in the remote store.
type Product struct {
	ID           string     `json:"id"`
	DatabaseID   string     `json:"database_id"`
	Name         string     `json:"name"`
	Quantity     int        `json:"quantity"`
	IsCompleted  bool       `json:"is_completed"`
	IsOutOfStock bool       `json:"is_out_of_stock"`
	ImageURL     string     `json:"image_url,omitempty"`
	ImageFit     string     `json:"image_fit,omitempty"`
	Comment      string     `json:"comment,omitempty"`
	Category     string     `json:"category,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

// ValidImageFit reports whether fit is one of the accepted image fit values.
func ValidImageFit(fit string) bool {
	switch fit {
	case ImageFitCover, ImageFitContain, ImageFitFill, ImageFitScaleDown:
		return true
	}
	return false
}
