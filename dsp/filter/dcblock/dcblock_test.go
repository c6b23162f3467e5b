package dcblock

import "testing"

func TestNew_InvalidVariant(t *testing.T) {
	if _, err := New(Variant(7)); err == nil {
		t.Fatal("expected error for invalid variant")
	}
	if _, err := New(Variant(-1)); err == nil {
		t.Fatal("expected error for negative variant")
	}
}

func TestVariantString(t *testing.T) {
	if got := VariantStandard.String(); got != "Standard" {
		t.Errorf("got %q", got)
	}
	if got := VariantSoft.String(); got != "Soft" {
		t.Errorf("got %q", got)
	}
	if got := Variant(3).String(); got != "Variant(3)" {
		t.Errorf("got %q", got)
	}
}

func TestProcessSample_FirstSamplePassesThrough(t *testing.T) {
	f, err := New(VariantStandard)
	if err != nil {
		t.Fatal(err)
	}

	// With zero history, y[0] = x[0].
	if got := f.ProcessSample(1000); got != 1000 {
		t.Errorf("first sample = %d, want 1000", got)
	}
}

func TestProcessSample_BlocksConstantDC(t *testing.T) {
	for _, v := range []Variant{VariantStandard, VariantSoft} {
		f, err := New(v)
		if err != nil {
			t.Fatal(err)
		}

		const dc = 12000

		var out int16
		for range 20000 {
			out = f.ProcessSample(dc)
		}

		// A constant input must decay toward zero.
		if out < -16 || out > 16 {
			t.Errorf("%v: output after 20000 DC samples = %d, want near 0", v, out)
		}
	}
}

func TestProcessSample_NegativeDCStallsAtFloorResidual(t *testing.T) {
	// The floor-truncated feedback decays positive DC fully but pins a
	// negative residual at -floor(1/(1-alpha)): every integer between there
	// and zero is a fixed point of y <- floor(alpha*y).
	cases := []struct {
		variant Variant
		want    int16
	}{
		{VariantStandard, -49}, // 1-alpha = 1311/65536
		{VariantSoft, -204},    // 1-alpha = 320/65536
	}
	for _, tc := range cases {
		f, err := New(tc.variant)
		if err != nil {
			t.Fatal(err)
		}

		var out int16
		for range 20000 {
			out = f.ProcessSample(-12000)
		}
		if out != tc.want {
			t.Errorf("%v: output after 20000 negative DC samples = %d, want %d",
				tc.variant, out, tc.want)
		}
	}
}

func TestProcessSample_SoftDecaysSlowerThanStandard(t *testing.T) {
	std, _ := New(VariantStandard)
	soft, _ := New(VariantSoft)

	const dc = 12000

	var stdOut, softOut int16
	for range 200 {
		stdOut = std.ProcessSample(dc)
		softOut = soft.ProcessSample(dc)
	}

	if softOut <= stdOut {
		t.Errorf("soft variant (%d) should retain more signal than standard (%d) after 200 samples",
			softOut, stdOut)
	}
}

func TestReset(t *testing.T) {
	f, _ := New(VariantStandard)

	for range 100 {
		f.ProcessSample(5000)
	}

	f.Reset()

	// After reset, behavior matches a fresh filter.
	if got := f.ProcessSample(1000); got != 1000 {
		t.Errorf("post-reset first sample = %d, want 1000", got)
	}
}

func TestProcessSample_SaturatesOutput(t *testing.T) {
	f, _ := New(VariantStandard)

	// A full-scale swing from -32768 to 32767 doubles through the
	// differentiator; the returned sample must stay in range.
	f.ProcessSample(-32768)
	got := f.ProcessSample(32767)
	if got != 32767 {
		t.Errorf("swing output = %d, want saturated 32767", got)
	}
}
