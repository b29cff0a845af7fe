package replacement

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind enumerates the supported policies.
type Kind int

// The supported policies.
const (
	KindFIFO Kind = iota
	KindLRU
	KindClock
	KindRandom
)

var kindNames = map[Kind]string{
	KindFIFO:   "FIFO",
	KindLRU:    "LRU",
	KindClock:  "Clock",
	KindRandom: "Random",
}

func (k Kind) String() string {
	name, ok := kindNames[k]
	if !ok {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return name
}

// A Spec selects a policy. Seed only matters for Random.
type Spec struct {
	Kind Kind
	Seed int64
}

func (s Spec) String() string {
	if s.Kind == KindRandom {
		return fmt.Sprintf("Random(%d)", s.Seed)
	}

	return s.Kind.String()
}

// ParseSpec parses policy names such as "FIFO", "lru", "Clock", "Random" or
// "Random(42)". Random without a seed uses seed 0.
func ParseSpec(s string) (Spec, error) {
	text := strings.ToLower(strings.TrimSpace(s))

	switch text {
	case "fifo":
		return Spec{Kind: KindFIFO}, nil
	case "lru":
		return Spec{Kind: KindLRU}, nil
	case "clock":
		return Spec{Kind: KindClock}, nil
	case "random":
		return Spec{Kind: KindRandom}, nil
	}

	if strings.HasPrefix(text, "random(") && strings.HasSuffix(text, ")") {
		seedText := strings.TrimSpace(text[len("random(") : len(text)-1])

		seed, err := strconv.ParseInt(seedText, 10, 64)
		if err != nil {
			return Spec{}, fmt.Errorf("invalid random seed %q: %w", seedText, err)
		}

		return Spec{Kind: KindRandom, Seed: seed}, nil
	}

	return Spec{}, fmt.Errorf("unknown replacement policy %q", s)
}

// New creates the policy described by the spec for a pool of numFrames frames.
func New(spec Spec, numFrames int) Policy {
	switch spec.Kind {
	case KindFIFO:
		return NewFIFO()
	case KindLRU:
		return NewLRU()
	case KindClock:
		return NewClock(numFrames)
	case KindRandom:
		return NewRandom(spec.Seed)
	default:
		panic(fmt.Sprintf("unknown policy kind %d", spec.Kind))
	}
}

// AllSpecs returns one spec of each kind, using the given seed for Random.
func AllSpecs(seed int64) []Spec {
	return []Spec{
		{Kind: KindFIFO},
		{Kind: KindLRU},
		{Kind: KindClock},
		{Kind: KindRandom, Seed: seed},
	}
}
