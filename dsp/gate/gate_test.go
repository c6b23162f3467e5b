package gate

import "testing"

func TestProcessSample_Disabled(t *testing.T) {
	g := New(false)
	for _, x := range []int16{0, 1, -1, 511, -511, 32767, -32768} {
		if got := g.ProcessSample(x); got != x {
			t.Errorf("disabled gate altered %d -> %d", x, got)
		}
	}
}

func TestProcessSample_Enabled(t *testing.T) {
	g := New(true)

	cases := []struct {
		in   int16
		want int16
	}{
		{0, 0},
		{1, 0},
		{-1, 0},
		{511, 0},
		{-511, 0},
		{512, 512},
		{-512, -512},
		{513, 513},
		{32767, 32767},
		{-32768, -32768},
	}
	for _, c := range cases {
		if got := g.ProcessSample(c.in); got != c.want {
			t.Errorf("ProcessSample(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestSetEnabled(t *testing.T) {
	g := New(false)
	g.SetEnabled(true)
	if !g.Enabled() {
		t.Fatal("gate not enabled")
	}
	if got := g.ProcessSample(100); got != 0 {
		t.Errorf("enabled gate passed %d", got)
	}
	g.SetEnabled(false)
	if got := g.ProcessSample(100); got != 100 {
		t.Errorf("disabled gate muted to %d", got)
	}
}
