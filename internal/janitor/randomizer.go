// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package janitor

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strconv"
)

const (
	// RandomMin is the smallest number produced by the Randomizer.
	RandomMin = 1_000_000
	// RandomMax is the biggest number produced by the Randomizer.
	RandomMax = 9_999_999
	// TextSuffix marks every text value produced by the Randomizer.
	TextSuffix = "-janitor"
)

var randomRange = big.NewInt(RandomMax - RandomMin + 1)

// Randomizer replaces values of sanitized columns with random placeholders.
// It holds no state and is safe for concurrent use if its random source is.
type Randomizer struct {
	random io.Reader
}

// NewRandomizer returns a Randomizer reading entropy from random.
// A nil reader selects crypto/rand.
func NewRandomizer(random io.Reader) Randomizer {
	if random == nil {
		random = rand.Reader
	}

	return Randomizer{random: random}
}

// Randomize returns the replacement for value if column of table must be sanitized
// according to config, otherwise value itself.
func (r Randomizer) Randomize(table, column string, value Value, config *Config) (Value, error) {
	randomized, _, err := r.randomize(table, column, value, config)
	return randomized, err
}

// randomize also reports whether the returned value is a replacement.
func (r Randomizer) randomize(table, column string, value Value, config *Config) (Value, bool, error) {
	if !config.ShouldSanitize(table, column) {
		return value, false, nil
	}

	switch value.Kind {
	case KindInteger, KindFloat, KindDecimal:
		number, err := r.number()
		if err != nil {
			return value, false, err
		}
		return IntValue(number), true, nil
	case KindText:
		number, err := r.number()
		if err != nil {
			return value, false, err
		}
		return TextValue(strconv.FormatInt(number, 10) + TextSuffix), true, nil
	case KindNull, KindBytes, KindTemporal, KindJSON:
		return value, false, nil
	default:
		return value, false, fmt.Errorf("%w: %s", ErrUnknownKind, value.Kind)
	}
}

// number returns a uniformly distributed integer in [RandomMin, RandomMax].
func (r Randomizer) number() (int64, error) {
	n, err := rand.Int(r.random, randomRange)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrRandomSource, err)
	}

	return n.Int64() + RandomMin, nil
}
