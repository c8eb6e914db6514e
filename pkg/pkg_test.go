package pkg

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "gflag" {
		t.Errorf("Expected Name to be %q, got %q", "gflag", Name)
	}
}

func TestVersion(t *testing.T) {
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("Failed to read VERSION file: %v", err)
	}

	if content := strings.TrimSpace(string(buf)); Version != content {
		t.Errorf("Expected Version to be %q, got %q", content, Version)
	}
}

func TestAuthor(t *testing.T) {
	if !slices.ContainsFunc(Author, func(a AuthorInfo) bool {
		return a.Name == "ardnew"
	}) {
		t.Errorf("Expected Author to contain %q", "ardnew")
	}

	for i, author := range Author {
		if author.Name == "" && author.Email == "" {
			t.Errorf("Author[%d] must define at least Name or Email", i)
		}
	}
}

func TestErrorChain(t *testing.T) {
	err := ErrReadInput.Wrap(io.ErrUnexpectedEOF)

	if !errors.Is(err, ErrReadInput) || !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("chain %v does not match its members", err)
	}

	if errors.Is(err, ErrWriteOutput) || errors.Is(ErrReadInput, err) {
		t.Errorf("chain %v matches unrelated errors", err)
	}

	if !errors.Is(fmt.Errorf("command: %w", err), ErrReadInput) {
		t.Error("wrapped chain does not match its sentinel")
	}

	if got, want := err.Error(), "failed to read input: unexpected EOF"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if got := MakeError(nil, nil); got != nil {
		t.Errorf("MakeError(nil, nil) = %v, want nil", got)
	}

	joined := MakeError(ErrParseFailed, io.EOF)
	if got, want := joined.Error(), "failed to parse flags: EOF"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWrapDoesNotAlias(t *testing.T) {
	a := ErrCheckFailed.Wrapf("a")
	b := ErrCheckFailed.Wrapf("b")

	if a.Error() != "flag file check failed: a" || b.Error() != "flag file check failed: b" {
		t.Errorf("a = %q, b = %q", a, b)
	}
}
