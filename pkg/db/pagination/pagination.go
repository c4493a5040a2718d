// Package pagination implements the skip/limit window shared by list
// endpoints and aggregated search results.
package pagination

import (
	"errors"

	"gorm.io/gorm"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Window is a skip-then-take page over an ordered sequence.
type Window struct {
	Skip  int `form:"skip,default=0"`
	Limit int `form:"limit,default=100"`
}

var ErrInvalidWindow = errors.New("invalid_pagination")

func (w Window) Validate() error {
	if w.Skip < 0 {
		return ErrInvalidWindow
	}
	if w.Limit < 1 || w.Limit > MaxLimit {
		return ErrInvalidWindow
	}
	return nil
}

// Scope pushes the window into SQL for true server-side pagination.
func (w Window) Scope() func(*gorm.DB) *gorm.DB {
	return func(stmt *gorm.DB) *gorm.DB {
		return stmt.Offset(w.Skip).Limit(w.Limit)
	}
}

// Slice applies the window to an already aggregated in-memory sequence.
// A skip past the end yields an empty slice, never an error.
func Slice[T any](items []T, w Window) []T {
	if w.Skip >= len(items) {
		return []T{}
	}
	end := w.Skip + w.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[w.Skip:end]
}
