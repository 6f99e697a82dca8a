package walk

import "math/rand/v2"

type options struct {
	seed uint64
}

// Option configures a walk.
type Option func(*options)

// WithSeed makes the walk deterministic. Walker i draws from its own PCG
// stream seeded with (seed, i), so results do not depend on scheduling.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

func newOptions(optFns []Option) options {
	o := options{seed: rand.Uint64()}
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}
