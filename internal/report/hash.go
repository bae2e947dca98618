package report

// pickIndex maps a phrase key and paragraph index onto a variant index,
// deterministically for a given seed. The multiply-by-31 rolling hash is
// kept as-is so reports stay byte-identical across reloads and releases.
func pickIndex(seed int64, key string, index, variants int) int {
	if variants <= 0 {
		return 0
	}

	hash := seed
	for _, c := range key {
		hash = hash*31 + int64(c)
	}
	hash = hash*31 + int64(index)

	hash %= int64(variants)
	if hash < 0 {
		hash += int64(variants)
	}
	return int(hash)
}
