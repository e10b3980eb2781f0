package services

import "testing"

func TestCleanCardName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Dark Armed Dragon (Rare)", "Dark Armed Dragon"},
		{"Sangan - LOB-EN000", "Sangan"},
		{"Blue-Eyes White Dragon", "Blue"},
		{"  Pot   of  Greed  ", "Pot of Greed"},
		{"Krebons (Common) - TDGS", "Krebons"},
		{"Sangan", "Sangan"},
	}

	for _, tt := range tests {
		if got := CleanCardName(tt.in); got != tt.want {
			t.Errorf("CleanCardName(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestMatchExact(t *testing.T) {
	m := NewMatcher(0.6)
	name, score := m.Match("Sangan", []string{"Pot of Greed", "Sangan", "Krebons"})
	if name != "Sangan" {
		t.Fatalf("Match returned %q; want Sangan", name)
	}
	if score != 1.0 {
		t.Fatalf("exact match score = %v; want 1.0", score)
	}
}

func TestMatchIgnoresAnnotations(t *testing.T) {
	m := NewMatcher(0.6)
	name, score := m.Match("Dark Armed Dragon", []string{"Dark Armed Dragon (Rare)", "Dark Magician"})
	if name != "Dark Armed Dragon (Rare)" {
		t.Fatalf("Match returned %q", name)
	}
	if score < 0.8 {
		t.Fatalf("score = %v; want >= 0.8", score)
	}
}

func TestMatchSubstringFloor(t *testing.T) {
	// No character of the target aligns with the candidate prefix, so the
	// similarity comes from the containment floor.
	m := NewMatcher(0.6)
	name, score := m.Match("abc", []string{"xxxxxxxxxxabc"})
	if name != "xxxxxxxxxxabc" {
		t.Fatalf("Match returned %q", name)
	}
	if score < 0.8 {
		t.Fatalf("score = %v; want >= 0.8", score)
	}
}

func TestMatchFirstSeenWinsTies(t *testing.T) {
	m := NewMatcher(0.6)
	name, _ := m.Match("abc", []string{"xxxxxxxxxxabc", "yyyyyyyyyyabc"})
	if name != "xxxxxxxxxxabc" {
		t.Fatalf("tie broke to %q; want first candidate", name)
	}
}

func TestMatchBelowThreshold(t *testing.T) {
	m := NewMatcher(0.6)
	name, score := m.Match("Zzzzz", []string{"Pot of Greed"})
	if name != "" || score != 0 {
		t.Fatalf("Match = (%q, %v); want no match", name, score)
	}
}

func TestMatchEmptyCorpus(t *testing.T) {
	m := NewMatcher(0.6)
	name, score := m.Match("Sangan", nil)
	if name != "" || score != 0 {
		t.Fatalf("Match = (%q, %v); want no match", name, score)
	}
}
