package config

import (
	"errors"
	"testing"
)

func TestNewExplicitSet(t *testing.T) {
	tests := []struct {
		name   string
		names  []string
		wantOk bool
	}{
		{"single", []string{"api"}, true},
		{"several", []string{"api", "cord", "led"}, true},
		{"duplicates collapse", []string{"api", "api"}, true},
		{"empty set", nil, false},
		{"empty member", []string{"api", ""}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewExplicitSet(tt.names...)
			if (err == nil) != tt.wantOk {
				t.Fatalf("NewExplicitSet(%v) error = %v, want ok %v", tt.names, err, tt.wantOk)
			}
			if !tt.wantOk {
				var ce *ConfigError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want *ConfigError", err)
				}
			}
		})
	}
}

func TestExplicitSetSetSemantics(t *testing.T) {
	a := MustExplicitSet("led", "api", "cord")
	b := MustExplicitSet("cord", "led", "api", "api")

	if !SelectorsEqual(a, b) {
		t.Errorf("sets built from the same names in different order differ: %v vs %v", a, b)
	}

	want := []string{"api", "cord", "led"}
	got := a.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExplicitSetMatching(t *testing.T) {
	s := MustExplicitSet("api", "cord")

	ok, err := s.MatchesExplicit("api")
	if err != nil || !ok {
		t.Errorf("MatchesExplicit(api) = %v, %v, want true", ok, err)
	}
	ok, err = s.MatchesExplicit("glue")
	if err != nil || ok {
		t.Errorf("MatchesExplicit(glue) = %v, %v, want false", ok, err)
	}
	ok, err = s.MatchesWildcard("api")
	if err != nil || ok {
		t.Errorf("MatchesWildcard(api) = %v, %v, want false", ok, err)
	}

	if _, err := s.MatchesExplicit(""); err == nil {
		t.Error("MatchesExplicit(\"\") succeeded, want ConfigError")
	}
	if _, err := s.MatchesWildcard(""); err == nil {
		t.Error("MatchesWildcard(\"\") succeeded, want ConfigError")
	}
}

func TestWildcardMatching(t *testing.T) {
	tests := []struct {
		w            Wildcard
		wantAll      bool
		wantNonEmpty bool
		wantMatch    bool
	}{
		{All, true, true, true},
		{Remaining, false, true, true},
		{None, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.w.String(), func(t *testing.T) {
			if got := tt.w.IsWildcardAll(); got != tt.wantAll {
				t.Errorf("IsWildcardAll() = %v, want %v", got, tt.wantAll)
			}
			if got := tt.w.IsNonEmpty(); got != tt.wantNonEmpty {
				t.Errorf("IsNonEmpty() = %v, want %v", got, tt.wantNonEmpty)
			}
			ok, err := tt.w.MatchesWildcard("api")
			if err != nil || ok != tt.wantMatch {
				t.Errorf("MatchesWildcard(api) = %v, %v, want %v", ok, err, tt.wantMatch)
			}
			ok, err = tt.w.MatchesExplicit("api")
			if err != nil || ok {
				t.Errorf("MatchesExplicit(api) = %v, %v, want false", ok, err)
			}
		})
	}
}

func TestSelectorsEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b PortSelector
		want bool
	}{
		{"same wildcard", All, All, true},
		{"different wildcards", All, None, false},
		{"wildcard vs set", All, MustExplicitSet("api"), false},
		{"equal sets", MustExplicitSet("a", "b"), MustExplicitSet("b", "a"), true},
		{"different sets", MustExplicitSet("a"), MustExplicitSet("b"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectorsEqual(tt.a, tt.b); got != tt.want {
				t.Errorf("SelectorsEqual(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
