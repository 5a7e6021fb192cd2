package cssimport

// flatten returns the input assets that no working-set asset absorbed,
// in input order. An asset absorbed by several parents is dropped once.
func flatten(input, working []*Asset) []*Asset {
	absorbed := make(map[string]struct{})
	for _, a := range working {
		for _, inc := range a.Included {
			absorbed[identity(inc.Path)] = struct{}{}
		}
	}

	out := make([]*Asset, 0, len(input))
	for _, a := range input {
		if a == nil {
			continue
		}
		if _, ok := absorbed[identity(a.Path)]; ok {
			continue
		}
		out = append(out, a)
	}
	return out
}
