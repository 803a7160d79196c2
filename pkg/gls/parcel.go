package gls

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// ParcelNumberLength is the total length of a GLS parcel number:
// 2-digit depot, 2-digit product code, 7 random digits, 1 check digit.
const ParcelNumberLength = 12

const randomSegmentLength = 7

// CheckDigit computes the check digit for an 11-character decimal base
// string according to the Modulo 10+1 method: scanning from the last
// character to the first, digits at even positions are weighted 3 and
// digits at odd positions weighted 1; the check digit is the distance from
// the weighted sum plus one to the next multiple of ten.
func CheckDigit(base string) (string, error) {
	sum := 0
	for idx := 0; idx < len(base); idx++ {
		c := base[len(base)-1-idx]
		if c < '0' || c > '9' {
			return "", fmt.Errorf("parcel number base %q contains non-digit %q", base, c)
		}
		digit := int(c - '0')
		if idx%2 == 0 {
			sum += digit * 3
		} else {
			sum += digit
		}
	}
	sum++

	nextMultiple := (sum/10 + 1) * 10
	check := nextMultiple - sum
	if check == 10 {
		// Sum landed on a multiple of ten; a single digit must come back.
		check = 0
	}
	return string(rune('0' + check)), nil
}

// Compose builds a full parcel number from a 2-digit depot, a service type
// and a 7-digit random segment. It is pure: callers own uniqueness.
func Compose(depot string, service ServiceType, random string) (string, error) {
	if len(depot) != 2 {
		return "", fmt.Errorf("depot number must be 2 digits, got %q", depot)
	}
	if len(random) != randomSegmentLength {
		return "", fmt.Errorf("random segment must be %d digits, got %q", randomSegmentLength, random)
	}

	code, err := ProductCode(service)
	if err != nil {
		return "", err
	}

	base := depot + code + random
	check, err := CheckDigit(base)
	if err != nil {
		return "", err
	}
	return base + check, nil
}

// Generator produces parcel numbers with a random variable segment. It has
// no knowledge of persistence; uniqueness is enforced by the storage layer
// and collision handling belongs to the Orchestrator.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator with its own seeded source.
func NewGenerator() *Generator {
	return &Generator{}
}

// NewGeneratorWithSource creates a generator with a deterministic source,
// for tests.
func NewGeneratorWithSource(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// Generate returns a fresh 12-digit parcel number for the given depot and
// service type.
func (g *Generator) Generate(depot string, service ServiceType) (string, error) {
	var sb strings.Builder
	for i := 0; i < randomSegmentLength; i++ {
		sb.WriteByte(byte('0' + g.intN(10)))
	}
	return Compose(depot, service, sb.String())
}

func (g *Generator) intN(n int) int {
	if g.rng != nil {
		return g.rng.IntN(n)
	}
	return rand.IntN(n)
}
