package clip

import "testing"

func TestSoft_IdentityBelowThreshold(t *testing.T) {
	for _, x := range []int16{0, 1, -1, 1000, -27999, 28000, -28000} {
		if got := Soft(x); got != x {
			t.Errorf("Soft(%d) = %d, want identity", x, got)
		}
	}
}

func TestSoft_BoundedOverFullDomain(t *testing.T) {
	for x := -32768; x <= 32767; x++ {
		y := Soft(int16(x))
		if y > 32767 || y < -32768 {
			t.Fatalf("Soft(%d) = %d outside the sample domain", x, y)
		}
	}
}

func TestSoft_MonotonicAboveThreshold(t *testing.T) {
	prev := Soft(Threshold)
	for x := Threshold + 1; x <= 32767; x++ {
		y := Soft(int16(x))
		if y < prev {
			t.Fatalf("Soft(%d) = %d below Soft(%d) = %d", x, y, x-1, prev)
		}
		prev = y
	}
}

func TestSoft_ContinuousAtThreshold(t *testing.T) {
	below := Soft(Threshold)
	above := Soft(Threshold + 1)
	if d := int(above) - int(below); d < 0 || d > 2 {
		t.Errorf("jump of %d at the threshold", d)
	}
}

func TestSoft_SignSymmetry(t *testing.T) {
	for x := Threshold; x <= 32767; x++ {
		pos := Soft(int16(x))
		neg := Soft(int16(-x))
		if neg != -pos {
			t.Errorf("Soft(%d) = %d but Soft(%d) = %d", x, pos, -x, neg)
		}
	}
}

func TestSoft_CompressesLoudSample(t *testing.T) {
	// A hot sample lands strictly between the threshold and full scale, and
	// the transform is stateless: repeated calls give the identical value.
	y := Soft(30000)
	if y <= Threshold || y >= 32767 {
		t.Errorf("Soft(30000) = %d, want inside (%d, 32767)", y, Threshold)
	}
	for range 10 {
		if Soft(30000) != y {
			t.Fatal("Soft is not stateless")
		}
	}
}

func TestSoft_FullScaleStaysBelowCeiling(t *testing.T) {
	// curve(1) = 0.5, so even full-scale input settles well under the
	// ceiling, leaving headroom for downstream DAC interpolation.
	if y := Soft(32767); y >= 31000 {
		t.Errorf("Soft(32767) = %d, want below 31000", y)
	}
	if y := Soft(-32768); y <= -31000 {
		t.Errorf("Soft(-32768) = %d, want above -31000", y)
	}
}
