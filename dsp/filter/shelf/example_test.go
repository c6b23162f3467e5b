package shelf_test

import (
	"fmt"

	"github.com/jennydigital/chime-dsp/dsp/filter/shelf"
)

func ExampleFilter_CyclePreset() {
	f := shelf.New()
	for range 4 {
		p := f.CyclePreset()
		fmt.Printf("%s enabled=%v\n", p, f.Enabled())
	}
	// Output:
	// Low enabled=true
	// High enabled=true
	// Off enabled=false
	// Low enabled=true
}
