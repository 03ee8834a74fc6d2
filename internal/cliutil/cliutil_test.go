package cliutil

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestExpandPositionals(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.fa")
	b := filepath.Join(dir, "b.fa")
	_ = os.WriteFile(a, []byte(">a\nA\n"), 0o644)
	_ = os.WriteFile(b, []byte(">b\nA\n"), 0o644)
	got, err := ExpandPositionals([]string{filepath.Join(dir, "*.fa")})
	if err != nil || !reflect.DeepEqual(got, []string{a, b}) {
		t.Fatalf("expand: err=%v got=%v", err, got)
	}
}

func TestExpandPositionals_DedupeKeepsFirst(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.fa")
	b := filepath.Join(dir, "b.fa")
	_ = os.WriteFile(a, []byte(">a\nA\n"), 0o644)
	_ = os.WriteFile(b, []byte(">b\nA\n"), 0o644)
	got, err := ExpandPositionals([]string{b, filepath.Join(dir, "*.fa"), "-", "-"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{b, a, "-", "-"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestExpandPositionals_NoMatch(t *testing.T) {
	if _, err := ExpandPositionals([]string{filepath.Join(t.TempDir(), "*.fa")}); err == nil {
		t.Fatal("expected error for unmatched glob")
	}
}

func TestExpandPositionals_LiteralKept(t *testing.T) {
	got, err := ExpandPositionals([]string{"missing.fa"})
	if err != nil || len(got) != 1 || got[0] != "missing.fa" {
		t.Fatalf("literal: err=%v got=%v", err, got)
	}
}
