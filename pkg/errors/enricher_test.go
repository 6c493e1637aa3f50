package errors_test

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	pkgerrors "github.com/joe/env-finder/pkg/errors"
)

func TestEnricher_EnrichAlreadyActionableError(t *testing.T) {
	t.Parallel()

	enricher := pkgerrors.NewEnricher()
	originalActionable := pkgerrors.NewActionableError(
		"permission denied",
		pkgerrors.CategoryPermission,
		[]string{"existing suggestion"},
		"/original/path",
	)

	enriched := enricher.Enrich(fmt.Errorf("wrapped: %w", originalActionable), "/new/path")

	var actionableErr pkgerrors.ActionableError
	if !errors.As(enriched, &actionableErr) {
		t.Fatalf("expected ActionableError, got %T", enriched)
	}

	if actionableErr != originalActionable {
		t.Error("expected same ActionableError instance when enriching ActionableError")
	}
}

func TestEnricher_EnrichNil(t *testing.T) {
	t.Parallel()

	if got := pkgerrors.NewEnricher().Enrich(nil, "/x"); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestEnricher_EnrichPathError(t *testing.T) {
	t.Parallel()

	enricher := pkgerrors.NewEnricher()
	originalErr := &fs.PathError{Op: "open", Path: "/srv/private", Err: fs.ErrPermission}

	enriched := enricher.Enrich(originalErr, "")

	var actionableErr pkgerrors.ActionableError
	if !errors.As(enriched, &actionableErr) {
		t.Fatalf("expected ActionableError, got %T", enriched)
	}

	if actionableErr.Category() != pkgerrors.CategoryPermission {
		t.Errorf("expected category %q, got %q", pkgerrors.CategoryPermission, actionableErr.Category())
	}
	if actionableErr.AffectedPath() != "/srv/private" {
		t.Errorf("expected extracted path %q, got %q", "/srv/private", actionableErr.AffectedPath())
	}
	if actionableErr.Error() != originalErr.Error() {
		t.Errorf("expected message %q, got %q", originalErr.Error(), actionableErr.Error())
	}
}

func TestEnricher_ExplicitPathWins(t *testing.T) {
	t.Parallel()

	enriched := pkgerrors.NewEnricher().Enrich(
		errors.New("lstat /from/message: no such file or directory"),
		"/explicit",
	)

	actionableErr, ok := enriched.(pkgerrors.ActionableError)
	if !ok {
		t.Fatalf("expected ActionableError, got %T", enriched)
	}

	if actionableErr.AffectedPath() != "/explicit" {
		t.Errorf("expected path %q, got %q", "/explicit", actionableErr.AffectedPath())
	}
	if actionableErr.Category() != pkgerrors.CategoryPath {
		t.Errorf("expected category %q, got %q", pkgerrors.CategoryPath, actionableErr.Category())
	}
}

func TestEnricher_ExtractsPathFormats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		msg  string
		path string
	}{
		{"open /home/user/app: permission denied", "/home/user/app"},
		{"lstat ./relative/dir: no such file or directory", "./relative/dir"},
		{`open C:\Users\me\app: access denied`, `C:\Users\me\app`},
		{"open C:/Users/me/app: access denied", "C:/Users/me/app"},
		{"no path in here", ""},
	}

	enricher := pkgerrors.NewEnricher()

	for _, tt := range tests {
		enriched, ok := enricher.Enrich(errors.New(tt.msg), "").(pkgerrors.ActionableError)
		if !ok {
			t.Fatalf("expected ActionableError for %q", tt.msg)
		}

		if enriched.AffectedPath() != tt.path {
			t.Errorf("Enrich(%q) path = %q, want %q", tt.msg, enriched.AffectedPath(), tt.path)
		}
	}
}
