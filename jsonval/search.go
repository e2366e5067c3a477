package jsonval

// MatchingElements searches a shape-unknown tree for values addressed by the
// given path segments. With no segments left, the current value matches.
// Objects descend into the member named by the next segment, arrays fan out
// into every element with the same segments, and a string primitive matches
// when it equals the next segment. Duplicate matches are suppressed by value
// equality; ordering is not significant.
func MatchingElements(v Value, paths ...string) []Value {
	seen := make(map[string]struct{})
	var out []Value
	collectMatches(v, paths, seen, &out)
	return out
}

func collectMatches(v Value, paths []string, seen map[string]struct{}, out *[]Value) {
	if len(paths) == 0 {
		addMatch(v, seen, out)
		return
	}
	switch node := v.(type) {
	case Object:
		if sub, ok := node[paths[0]]; ok {
			collectMatches(sub, paths[1:], seen, out)
		}
	case Array:
		for _, elem := range node {
			collectMatches(elem, paths, seen, out)
		}
	case string:
		if node == paths[0] {
			addMatch(node, seen, out)
		}
	}
}

func addMatch(v Value, seen map[string]struct{}, out *[]Value) {
	key := String(v)
	if _, dup := seen[key]; dup {
		return
	}
	seen[key] = struct{}{}
	*out = append(*out, v)
}

// HasElement reports whether any value matches the given path segments.
func HasElement(v Value, paths ...string) bool {
	return len(MatchingElements(v, paths...)) > 0
}
