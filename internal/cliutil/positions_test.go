package cliutil

import (
	"errors"
	"reflect"
	"testing"

	"fabin-core/seq"
)

func TestParsePositions(t *testing.T) {
	got, err := ParsePositions([]string{"1", "2", "-3", "4"})
	if err != nil {
		t.Fatal(err)
	}
	want := []seq.Position{{Row: 1, Col: 2}, {Row: -3, Col: 4}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestParsePositions_Errors(t *testing.T) {
	cases := map[string][]string{
		`row "a" is not an integer`:    {"a", "2"},
		`column "x" is not an integer`: {"0", "x"},
	}
	for msg, args := range cases {
		_, err := ParsePositions(args)
		if !errors.Is(err, ErrNotInteger) || err.Error() != msg {
			t.Errorf("%v: got %v, want %q", args, err, msg)
		}
	}
}
