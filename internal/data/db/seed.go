package db

import (
	"context"
	"fmt"

	types "github.com/yungbote/portfolio-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedSections inserts any missing section rows. Existing rows keep their
// visibility and order; new ones are appended after the current maximum.
func SeedSections(ctx context.Context, db *gorm.DB, names []string) (int, error) {
	created := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []types.Section
		if err := tx.Find(&existing).Error; err != nil {
			return err
		}
		have := make(map[string]bool, len(existing))
		next := 0
		for _, s := range existing {
			have[s.Name] = true
			if s.OrderIndex >= next {
				next = s.OrderIndex + 1
			}
		}
		for _, name := range names {
			if have[name] {
				continue
			}
			row := &types.Section{Name: name, IsVisible: true, OrderIndex: next}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error; err != nil {
				return fmt.Errorf("seed section %q: %w", name, err)
			}
			have[name] = true
			next++
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
