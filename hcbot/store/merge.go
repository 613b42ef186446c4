package store

// maxMergeDepth bounds the recursive merge to the known schema depth.
// The deepest real path is servers.<id>.leveling.role_multipliers.<id>,
// so 16 leaves generous headroom without risking runaway recursion on a
// hostile or cyclic document.
const maxMergeDepth = 16

// deepMerge merges update into base in place and returns base. For every
// key: when both sides hold a map the merge recurses, otherwise the
// update value replaces the base value outright, including map-vs-scalar
// mismatches. Updates to disjoint keys therefore compose in any order;
// updates to the same leaf are last-write-wins.
func deepMerge(base, update map[string]any) map[string]any {
	return mergeDepth(base, update, 0)
}

func mergeDepth(base, update map[string]any, depth int) map[string]any {
	for key, value := range update {
		if depth < maxMergeDepth {
			updateMap, updateIsMap := value.(map[string]any)
			baseMap, baseIsMap := base[key].(map[string]any)
			if updateIsMap && baseIsMap {
				base[key] = mergeDepth(baseMap, updateMap, depth+1)
				continue
			}
		}
		base[key] = value
	}
	return base
}

// mergeDefaults returns a copy of defaults with doc merged on top, so
// every schema key exists afterwards while stored values win.
func mergeDefaults(defaults, doc map[string]any) map[string]any {
	return deepMerge(copyDoc(defaults), doc)
}

func copyDoc(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for key, value := range doc {
		if nested, ok := value.(map[string]any); ok {
			out[key] = copyDoc(nested)
			continue
		}
		out[key] = value
	}
	return out
}
