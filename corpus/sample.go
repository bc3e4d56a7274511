package corpus

import (
	"context"
	"math/rand/v2"
)

// LoadSample loads the baseline files (file 0 unless configured otherwise)
// and draws n articles from them. The same seed over the same files yields
// the same articles in the same order.
func (c *Cache) LoadSample(ctx context.Context, n int, seed int64) (Table, error) {
	base, err := c.Load(ctx, c.sampleFiles)
	if err != nil {
		return nil, err
	}
	return Sample(base, n, seed), nil
}

// Sample draws min(n, len(t)) articles uniformly without replacement, in draw order.
func Sample(t Table, n int, seed int64) Table {
	if n > len(t) {
		n = len(t)
	}
	if n <= 0 {
		return Table{}
	}

	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	order := make([]int, len(t))
	for i := range order {
		order[i] = i
	}

	out := make(Table, n)
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(order)-i)
		order[i], order[j] = order[j], order[i]
		out[i] = t[order[i]]
	}
	return out
}
