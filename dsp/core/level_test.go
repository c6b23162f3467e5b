package core

import "testing"

func TestLevelString(t *testing.T) {
	cases := []struct {
		level Level
		want  string
	}{
		{LevelVerySoft, "VerySoft"},
		{LevelSoft, "Soft"},
		{LevelMedium, "Medium"},
		{LevelFirm, "Firm"},
		{LevelAggressive, "Aggressive"},
		{LevelCustom, "Custom"},
		{Level(99), "Level(99)"},
		{Level(-1), "Level(-1)"},
	}
	for _, c := range cases {
		if got := c.level.String(); got != c.want {
			t.Errorf("Level(%d).String() = %q, want %q", int(c.level), got, c.want)
		}
	}
}

func TestLevelValid(t *testing.T) {
	for l := LevelVerySoft; l <= LevelCustom; l++ {
		if !l.Valid() {
			t.Errorf("%v unexpectedly invalid", l)
		}
	}
	if Level(-1).Valid() {
		t.Error("Level(-1) unexpectedly valid")
	}
	if levelCount.Valid() {
		t.Error("sentinel unexpectedly valid")
	}
}

func TestPresetsOrdering(t *testing.T) {
	p := Presets()
	if len(p) != 5 {
		t.Fatalf("preset count = %d, want 5", len(p))
	}
	for i := 1; i < len(p); i++ {
		if p[i] <= p[i-1] {
			t.Errorf("presets not strictly increasing at %d", i)
		}
	}
	for _, l := range p {
		if l == LevelCustom {
			t.Error("Presets includes LevelCustom")
		}
	}
}
