package db

import (
	"fmt"

	types "github.com/yungbote/portfolio-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(types.AllModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return EnsureContentIndexes(db)
}

// EnsureContentIndexes adds the composite indexes the public page reads use.
// CREATE INDEX IF NOT EXISTS is understood by both postgres and sqlite.
func EnsureContentIndexes(db *gorm.DB) error {
	stmts := []struct {
		name string
		sql  string
	}{
		{"idx_blogs_status_created_at", `CREATE INDEX IF NOT EXISTS idx_blogs_status_created_at ON blogs(status, created_at);`},
		{"idx_projects_status_created_at", `CREATE INDEX IF NOT EXISTS idx_projects_status_created_at ON projects(status, created_at);`},
		{"idx_skills_category_order", `CREATE INDEX IF NOT EXISTS idx_skills_category_order ON skills(category_id, order_index);`},
	}
	for _, s := range stmts {
		if err := db.Exec(s.sql).Error; err != nil {
			return fmt.Errorf("create %s: %w", s.name, err)
		}
	}
	return nil
}
