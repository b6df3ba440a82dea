package naming

import (
	"errors"
	"reflect"
	"testing"

	"poemnames/domain/lexicon"
)

func validRequest() Request {
	return Request{Surname: "李", Gender: lexicon.GenderFemale, Count: 5, Length: 2}
}

func TestRequestValidate(t *testing.T) {
	if err := validRequest().Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	cases := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{"zero length", func(r *Request) { r.Length = 0 }, ErrInvalidLength},
		{"length four", func(r *Request) { r.Length = 4 }, ErrInvalidLength},
		{"bad gender", func(r *Request) { r.Gender = "martian" }, ErrUnknownGender},
		{"zero count", func(r *Request) { r.Count = 0 }, ErrInvalidCount},
		{"negative count", func(r *Request) { r.Count = -3 }, ErrInvalidCount},
	}
	for _, tc := range cases {
		req := validRequest()
		tc.mutate(&req)
		if err := req.Validate(); !errors.Is(err, tc.wantErr) {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.wantErr)
		}
	}
}

func TestFullNameRoundTrip(t *testing.T) {
	c := Candidate{Surname: "欧阳", Chars: []string{"静", "雅"}, GivenName: "静雅"}

	full := c.FullName()
	if full != "欧阳静雅" {
		t.Fatalf("FullName() = %q", full)
	}
	got := SplitFullName(full, "欧阳")
	if !reflect.DeepEqual(got, c.Chars) {
		t.Errorf("SplitFullName round trip = %v, want %v", got, c.Chars)
	}
}

func TestMultisetKeyOrderInsensitive(t *testing.T) {
	a := MultisetKey([]string{"雅", "静"})
	b := MultisetKey([]string{"静", "雅"})
	if a != b {
		t.Errorf("anagram keys differ: %q vs %q", a, b)
	}
	c := MultisetKey([]string{"静", "静"})
	if a == c {
		t.Errorf("distinct multisets share key %q", a)
	}
}

func TestGradeLadder(t *testing.T) {
	cases := []struct {
		total float64
		want  string
	}{
		{92, "A+"}, {85, "A+"}, {80, "A"}, {75, "A"},
		{70, "B"}, {60, "C"}, {50, "D"}, {44.9, "E"}, {0, "E"},
	}
	for _, tc := range cases {
		if got := GradeFor(tc.total); got != tc.want {
			t.Errorf("GradeFor(%v) = %q, want %q", tc.total, got, tc.want)
		}
	}
}
