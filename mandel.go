package mandel

import (
	"fmt"
	"math"
	"sort"
)

// Region within the complex plane
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// DefaultRegion frames the whole set: re in [-2, 1], im in [-1.5, 1.5]
var DefaultRegion = Region{
	Xmin: -2.0,
	Xmax: 1.0,
	Ymin: -1.5,
	Ymax: 1.5,
}

// Classic regions / landmarks in the Mandelbrot set
var (
	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = Region{
		Xmin: -0.8,
		Xmax: -0.7,
		Ymin: 0.05,
		Ymax: 0.15,
	}

	// Elephant Valley – large bulb with trunk-like tendrils
	ElephantValley = Region{
		Xmin: -1.85,
		Xmax: -1.75,
		Ymin: -0.10,
		Ymax: -0.02,
	}

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = Region{
		Xmin: -0.7435,
		Xmax: -0.7420,
		Ymin: 0.1310,
		Ymax: 0.1325,
	}

	// Triple Spiral – threefold symmetric spiral structure
	TripleSpiral = Region{
		Xmin: -0.7480,
		Xmax: -0.7450,
		Ymin: 0.0950,
		Ymax: 0.0980,
	}

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = Region{
		Xmin: -0.7400,
		Xmax: -0.7350,
		Ymin: 0.1800,
		Ymax: 0.1850,
	}

	// Minibrot in a Mini-Spiral – self-similar Mandelbrot copy inside a spiral arm
	MinibrotInMiniSpiral = Region{
		Xmin: -1.7390,
		Xmax: -1.7375,
		Ymin: -0.0235,
		Ymax: -0.0220,
	}
)

var namedRegions = map[string]Region{
	"default":  DefaultRegion,
	"seahorse": SeahorseValley,
	"elephant": ElephantValley,
	"spiral":   SpiralMinibrot,
	"triple":   TripleSpiral,
	"dragon":   ValleyOfTheDragon,
	"minibrot": MinibrotInMiniSpiral,
}

// RegionNames lists the names accepted by RegionByName, sorted.
func RegionNames() []string {
	names := make([]string, 0, len(namedRegions))
	for n := range namedRegions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// RegionByName resolves a landmark name. Empty name means DefaultRegion.
func RegionByName(name string) (Region, error) {
	if name == "" {
		return DefaultRegion, nil
	}
	r, ok := namedRegions[name]
	if !ok {
		return Region{}, fmt.Errorf("%w: unknown region %q (known: %v)", ErrInvalidConfig, name, RegionNames())
	}
	return r, nil
}

// Validate reports whether r is a non-empty finite rectangle.
func (r Region) Validate() error {
	for _, v := range []float64{r.Xmin, r.Xmax, r.Ymin, r.Ymax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: region bounds must be finite, got %+v", ErrInvalidConfig, r)
		}
	}
	if r.Xmin >= r.Xmax {
		return fmt.Errorf("%w: region Xmin %g must be below Xmax %g", ErrInvalidConfig, r.Xmin, r.Xmax)
	}
	if r.Ymin >= r.Ymax {
		return fmt.Errorf("%w: region Ymin %g must be below Ymax %g", ErrInvalidConfig, r.Ymin, r.Ymax)
	}
	return nil
}

// PointAt maps pixel (col, row) of a width × height image onto r.
func (r Region) PointAt(col, row, width, height int) Point {
	return Point{
		Re: r.Xmin + float64((float64(col)/float64(width))*(r.Xmax-r.Xmin)),
		Im: r.Ymin + float64((float64(row)/float64(height))*(r.Ymax-r.Ymin)),
	}
}
