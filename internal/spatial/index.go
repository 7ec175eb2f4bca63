package spatial

import (
	"github.com/nlam511/geo-message/internal/geo"
	"github.com/nlam511/geo-message/internal/models"
	"gorm.io/gorm"
)

// Index answers "which messages might be within radiusM of center". The
// result may contain false positives (cell granularity) but never misses a
// true match; exact inclusion is decided by geo.Distance downstream.
type Index interface {
	QueryWithin(center geo.Point, radiusM float64) ([]uint, error)
}

// GridIndex resolves range queries against the indexed cell column on the
// messages table. Rows enter the index as part of message creation itself
// (the cell key is a column of the row), so there is no separate insert
// path to keep in sync.
type GridIndex struct {
	db   *gorm.DB
	grid Grid
}

func NewGridIndex(db *gorm.DB, grid Grid) *GridIndex {
	return &GridIndex{db: db, grid: grid}
}

// Grid exposes the cell math so message creation can stamp the same keys
// the index queries by.
func (i *GridIndex) Grid() Grid {
	return i.grid
}

func (i *GridIndex) QueryWithin(center geo.Point, radiusM float64) ([]uint, error) {
	cells := i.grid.Covering(center, radiusM)

	var ids []uint
	err := i.db.Model(&models.Message{}).
		Where("cell IN ?", cells).
		Pluck("id", &ids).Error
	return ids, err
}
