package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestDataAccessWraps(t *testing.T) {
	base := errors.New("connection refused")
	err := DataAccess("select", "sections", base)
	if !IsDataAccess(err) {
		t.Fatalf("IsDataAccess: want=true got=false")
	}
	if !errors.Is(err, base) {
		t.Fatalf("errors.Is base: want=true got=false")
	}
	if DataAccess("select", "sections", nil) != nil {
		t.Fatalf("nil err should stay nil")
	}
}

func TestDataAccessKeepsNotFound(t *testing.T) {
	err := DataAccess("get", "blogs", fmt.Errorf("blog: %w", ErrNotFound))
	if IsDataAccess(err) {
		t.Fatalf("not found must not be reclassified")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("errors.Is ErrNotFound: want=true got=false")
	}
}

func TestDataAccessDoesNotDoubleWrap(t *testing.T) {
	inner := DataAccess("update", "sections", errors.New("boom"))
	outer := DataAccess("move", "sections", inner)
	var dae *DataAccessError
	if !errors.As(outer, &dae) || dae.Op != "update" {
		t.Fatalf("op: want=%q got=%+v", "update", dae)
	}
}

func TestRequired(t *testing.T) {
	if err := Required("title", "x", "slug", "y"); err != nil {
		t.Fatalf("Required: unexpected %v", err)
	}
	err := Required("title", "x", "slug", "  ")
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "slug" {
		t.Fatalf("Required: want field=%q got=%v", "slug", err)
	}
}

func TestOneOf(t *testing.T) {
	if err := OneOf("status", "draft", "published", "draft"); err != nil {
		t.Fatalf("OneOf: unexpected %v", err)
	}
	if err := OneOf("status", "live", "published", "draft"); !IsValidation(err) {
		t.Fatalf("OneOf: want validation error got=%v", err)
	}
}

func TestUploadError(t *testing.T) {
	err := error(&UploadError{Bucket: "assets", Path: "logo-1.png", Err: errors.New("403")})
	if !IsUpload(err) {
		t.Fatalf("IsUpload: want=true got=false")
	}
	if got := err.Error(); got != "upload assets/logo-1.png: 403" {
		t.Fatalf("Error: got=%q", got)
	}
}
