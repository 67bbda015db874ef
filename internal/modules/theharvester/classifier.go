package theharvester

import "harvestx/internal/core/domain"

// Classify maps a raw harvest payload into the five artifact buckets.
// Every artifact kind is present in the result, possibly empty. Values are
// deduplicated per kind and kept verbatim; unrecognized categories are dropped.
func Classify(raw domain.RawHarvestResult) domain.ArtifactBuckets {
	buckets := domain.NewArtifactBuckets()
	for category, values := range raw {
		kind, ok := category.Kind()
		if !ok {
			continue
		}
		buckets[kind].AddAll(values...)
	}
	return buckets
}

// unrecognized lists the categories in raw that Classify drops.
func unrecognized(raw domain.RawHarvestResult) []string {
	var out []string
	for category := range raw {
		if !category.Known() {
			out = append(out, string(category))
		}
	}
	return out
}
