package scroll

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Easing maps linear progress in [0,1] to eased progress. Every easing here
// maps 0 to 0 and 1 to 1.
type Easing func(p float64) float64

func Linear(p float64) float64 { return p }

// PowerIn, PowerOut and PowerInOut follow the power1..power4 family:
// power1 is quadratic, power4 quintic.
func PowerIn(power int) Easing {
	n := float64(power + 1)
	return func(p float64) float64 { return math.Pow(p, n) }
}

func PowerOut(power int) Easing {
	n := float64(power + 1)
	return func(p float64) float64 { return 1 - math.Pow(1-p, n) }
}

func PowerInOut(power int) Easing {
	n := float64(power + 1)
	return func(p float64) float64 {
		if p < 0.5 {
			return math.Pow(2*p, n) / 2
		}
		return 1 - math.Pow(2*(1-p), n)/2
	}
}

// BackOut overshoots past 1 before settling; s controls the overshoot.
func BackOut(s float64) Easing {
	return func(p float64) float64 {
		q := p - 1
		return 1 + (s+1)*q*q*q + s*q*q
	}
}

// EaseInOutQuad is the smooth-scroll curve.
func EaseInOutQuad(p float64) float64 {
	if p < 0.5 {
		return 2 * p * p
	}
	q := -2*p + 2
	return 1 - q*q/2
}

// ParseEase resolves names such as "none", "power3.out", "power2.inOut" or
// "back.out(1.7)".
func ParseEase(name string) (Easing, error) {
	name = strings.TrimSpace(name)
	switch name {
	case "", "none", "linear":
		return Linear, nil
	case "easeInOutQuad":
		return EaseInOutQuad, nil
	}

	base, arg, hasArg := strings.Cut(name, "(")
	if hasArg {
		arg = strings.TrimSuffix(arg, ")")
	}

	family, variant, _ := strings.Cut(base, ".")
	if variant == "" {
		variant = "out"
	}

	if family == "back" {
		s := 1.70158
		if hasArg && arg != "" {
			v, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				return nil, fmt.Errorf("ease %q: %w", name, err)
			}
			s = v
		}
		if variant != "out" {
			return nil, fmt.Errorf("ease %q: unsupported variant", name)
		}
		return BackOut(s), nil
	}

	if strings.HasPrefix(family, "power") {
		power, err := strconv.Atoi(strings.TrimPrefix(family, "power"))
		if err != nil || power < 1 || power > 4 {
			return nil, fmt.Errorf("ease %q: unknown power", name)
		}
		switch variant {
		case "in":
			return PowerIn(power), nil
		case "out":
			return PowerOut(power), nil
		case "inOut":
			return PowerInOut(power), nil
		}
	}
	return nil, fmt.Errorf("ease %q: unknown", name)
}

// MustEase is ParseEase for names known at compile time.
func MustEase(name string) Easing {
	e, err := ParseEase(name)
	if err != nil {
		panic(err)
	}
	return e
}
