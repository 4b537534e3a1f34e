package testutil

import (
	"context"
	"testing"

	types "github.com/yungbote/portfolio-backend/internal/domain"
	"gorm.io/gorm"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email, role string) *types.User {
	tb.Helper()
	u := &types.User{
		Email:     email,
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
		Role:      role,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedSections inserts one visible section per name with order_index equal to its position.
func SeedSections(tb testing.TB, ctx context.Context, tx *gorm.DB, names ...string) []types.Section {
	tb.Helper()
	out := make([]types.Section, 0, len(names))
	for i, name := range names {
		s := types.Section{Name: name, IsVisible: true, OrderIndex: i}
		if err := tx.WithContext(ctx).Create(&s).Error; err != nil {
			tb.Fatalf("seed section %q: %v", name, err)
		}
		out = append(out, s)
	}
	return out
}

func SeedSkillCategory(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, order int, skills ...string) *types.SkillCategory {
	tb.Helper()
	c := &types.SkillCategory{Name: name, OrderIndex: order}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed skill category: %v", err)
	}
	for i, s := range skills {
		sk := types.Skill{Name: s, CategoryID: c.ID, OrderIndex: i}
		if err := tx.WithContext(ctx).Create(&sk).Error; err != nil {
			tb.Fatalf("seed skill: %v", err)
		}
		c.Skills = append(c.Skills, sk)
	}
	return c
}
