package routing

// Merge returns the shallow union of base and override. On a key collision
// the override value wins; every other key keeps its base value. Neither
// input is modified and the result is never nil.
func Merge[M ~map[K]V, K comparable, V any](base, override M) M {
	out := make(M, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}
