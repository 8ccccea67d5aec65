// Package option provides composable gorm query options shared by the
// repository layer.
package option

import (
	"time"

	"github.com/smallbiznis/billfold/pkg/db/pagination"
	"gorm.io/gorm"
)

type QueryOption interface {
	Apply(stmt *gorm.DB) *gorm.DB
}

type optionFunc func(stmt *gorm.DB) *gorm.DB

func (f optionFunc) Apply(stmt *gorm.DB) *gorm.DB { return f(stmt) }

func OrderBy(expr string) QueryOption {
	return optionFunc(func(stmt *gorm.DB) *gorm.DB {
		return stmt.Order(expr)
	})
}

func Limit(n int) QueryOption {
	return optionFunc(func(stmt *gorm.DB) *gorm.DB {
		return stmt.Limit(n)
	})
}

// ApplyPagination translates a cursor page request into a keyset predicate on
// (created_at, id) plus a limit of size+1, so callers can detect a next page.
func ApplyPagination(page pagination.Pagination) QueryOption {
	return optionFunc(func(stmt *gorm.DB) *gorm.DB {
		size := page.PageSize
		if size <= 0 {
			size = 50
		}

		if page.PageToken != "" {
			cursor, err := pagination.DecodeCursor(page.PageToken)
			if err == nil && cursor != nil && cursor.CreatedAt != "" {
				if ts, perr := time.Parse(time.RFC3339, cursor.CreatedAt); perr == nil {
					stmt = stmt.Where(
						"(created_at < ?) OR (created_at = ? AND id < ?)",
						ts, ts, cursor.ID,
					)
				}
			}
		}

		return stmt.Limit(size + 1)
	})
}
