package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/platform/errs"
)

func TestSkillCategoryOrdering(t *testing.T) {
	e := newEnv(t)
	svc := e.skills()
	ctx := context.Background()

	first, err := svc.CreateCategory(ctx, "Languages")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	second, err := svc.CreateCategory(ctx, "Data")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if first.OrderIndex != 0 || second.OrderIndex != 1 {
		t.Fatalf("order_index: want 0,1 got=%d,%d", first.OrderIndex, second.OrderIndex)
	}
	if _, err := svc.CreateCategory(ctx, "  "); !errs.IsValidation(err) {
		t.Fatalf("blank name: want validation error got=%v", err)
	}

	for _, name := range []string{"Go", "Python", "SQL"} {
		if _, err := svc.CreateSkill(ctx, first.ID, name); err != nil {
			t.Fatalf("CreateSkill %s: %v", name, err)
		}
	}
	cats, err := svc.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(cats) != 2 || cats[0].Name != "Languages" {
		t.Fatalf("categories: got=%v", cats)
	}
	var got []string
	for _, s := range cats[0].Skills {
		got = append(got, s.Name)
	}
	if want := []string{"Go", "Python", "SQL"}; len(got) != 3 || got[0] != want[0] || got[2] != want[2] {
		t.Fatalf("skills: want=%v got=%v", want, got)
	}
	if cats[0].Skills[2].OrderIndex != 2 {
		t.Fatalf("skill order_index: want=2 got=%d", cats[0].Skills[2].OrderIndex)
	}
}

func TestCreateSkillRequiresCategory(t *testing.T) {
	e := newEnv(t)
	svc := e.skills()

	_, err := svc.CreateSkill(context.Background(), uuid.New(), "Go")
	var ve *errs.ValidationError
	if !errors.As(err, &ve) || ve.Field != "category_id" {
		t.Fatalf("unknown category: want category_id validation error got=%v", err)
	}
}

func TestDeleteCategoryCascades(t *testing.T) {
	e := newEnv(t)
	svc := e.skills()
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, "Tools")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if _, err := svc.CreateSkill(ctx, cat.ID, "Docker"); err != nil {
		t.Fatalf("CreateSkill: %v", err)
	}
	if err := svc.DeleteCategory(ctx, cat.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	var left int64
	if err := e.db.Model(&types.Skill{}).Count(&left).Error; err != nil {
		t.Fatalf("count skills: %v", err)
	}
	if left != 0 {
		t.Fatalf("skills after cascade: want 0 got=%d", left)
	}
	if err := svc.DeleteCategory(ctx, cat.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("delete twice: want not found got=%v", err)
	}
}

func TestRenameSkillAndCategory(t *testing.T) {
	e := newEnv(t)
	svc := e.skills()
	ctx := context.Background()

	cat, _ := svc.CreateCategory(ctx, "Lang")
	skill, err := svc.CreateSkill(ctx, cat.ID, "golang")
	if err != nil {
		t.Fatalf("CreateSkill: %v", err)
	}
	renamed, err := svc.RenameSkill(ctx, skill.ID, "Go")
	if err != nil || renamed.Name != "Go" {
		t.Fatalf("RenameSkill: got=%v err=%v", renamed, err)
	}
	c, err := svc.RenameCategory(ctx, cat.ID, "Languages")
	if err != nil {
		t.Fatalf("RenameCategory: %v", err)
	}
	if c.Name != "Languages" || len(c.Skills) != 1 {
		t.Fatalf("renamed category: got name=%q skills=%d", c.Name, len(c.Skills))
	}
	if err := svc.DeleteSkill(ctx, skill.ID); err != nil {
		t.Fatalf("DeleteSkill: %v", err)
	}
}
