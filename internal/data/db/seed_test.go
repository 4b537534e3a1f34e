package db_test

import (
	"context"
	"testing"

	"github.com/yungbote/portfolio-backend/internal/data/db"
	"github.com/yungbote/portfolio-backend/internal/data/repos/testutil"
	types "github.com/yungbote/portfolio-backend/internal/domain"
)

func TestSeedSectionsIsIdempotent(t *testing.T) {
	gdb := testutil.DB(t)
	ctx := context.Background()
	names := []string{"Hero", "About", "Skills"}

	n, err := db.SeedSections(ctx, gdb, names)
	if err != nil {
		t.Fatalf("SeedSections: %v", err)
	}
	if n != 3 {
		t.Fatalf("created: want=%d got=%d", 3, n)
	}

	if err := gdb.Model(&types.Section{}).Where("name = ?", "Hero").Update("is_visible", false).Error; err != nil {
		t.Fatalf("hide hero: %v", err)
	}

	n, err = db.SeedSections(ctx, gdb, append(names, "Contact"))
	if err != nil {
		t.Fatalf("SeedSections again: %v", err)
	}
	if n != 1 {
		t.Fatalf("created on reseed: want=%d got=%d", 1, n)
	}

	var rows []types.Section
	if err := gdb.Order("order_index ASC").Find(&rows).Error; err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("rows: want=%d got=%d", 4, len(rows))
	}
	if rows[0].Name != "Hero" || rows[0].IsVisible {
		t.Fatalf("hero: want hidden Hero first got=%+v", rows[0])
	}
	if rows[3].Name != "Contact" || rows[3].OrderIndex != 3 {
		t.Fatalf("contact: want order 3 got=%+v", rows[3])
	}
}
