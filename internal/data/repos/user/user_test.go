package user

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/portfolio-backend/internal/data/repos/testutil"
	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/platform/dbctx"
	"github.com/yungbote/portfolio-backend/internal/platform/errs"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	created, err := repo.Create(dbc, []*types.User{
		{
			Email:     "userrepo@example.com",
			Password:  "pw",
			FirstName: "A",
			LastName:  "B",
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("Create: expected 1 user, got %d", len(created))
	}
	if created[0].Role != types.RoleViewer {
		t.Fatalf("default role: want=%q got=%q", types.RoleViewer, created[0].Role)
	}

	gotByIDs, err := repo.GetByIDs(dbc, []uuid.UUID{created[0].ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(gotByIDs) != 1 || gotByIDs[0].ID != created[0].ID {
		t.Fatalf("GetByIDs: unexpected result: %+v", gotByIDs)
	}

	gotByEmail, err := repo.GetByEmails(dbc, []string{"  UserRepo@Example.com "})
	if err != nil {
		t.Fatalf("GetByEmails: %v", err)
	}
	if len(gotByEmail) != 1 {
		t.Fatalf("GetByEmails: expected 1 user, got %d", len(gotByEmail))
	}

	exists, err := repo.EmailExists(dbc, "userrepo@example.com")
	if err != nil || !exists {
		t.Fatalf("EmailExists: want=true got=%v err=%v", exists, err)
	}

	if err := repo.UpdateRole(dbc, created[0].ID, types.RoleAdmin); err != nil {
		t.Fatalf("UpdateRole: %v", err)
	}
	gotByIDs, err = repo.GetByIDs(dbc, []uuid.UUID{created[0].ID})
	if err != nil || len(gotByIDs) != 1 || !gotByIDs[0].IsAdmin() {
		t.Fatalf("after UpdateRole: got=%+v err=%v", gotByIDs, err)
	}

	if err := repo.UpdatePassword(dbc, uuid.New(), "hash"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("UpdatePassword unknown: want ErrNotFound got=%v", err)
	}
}
