// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchkey derives canonical string keys from ordered sets of
// experiment factors.
//
// A factor is a named dimension of variation, such as the length of an
// input array, and a level is its concrete value in one experiment
// instance. Joining the "name:level" pairs of a factor set yields a key
// that uniquely identifies the instance. Keys come in two forms: a full
// form used in logs and table headers, and an abbreviated form used
// where a length-constrained identifier is required, such as a result
// directory name.
package benchkey

import (
	"fmt"
	"strings"
)

// DefaultKeyLimit is the default upper bound on the length of a short
// treatment key. It follows the common practice of keeping benchmark
// identifiers safe to use as path components.
const DefaultKeyLimit = 64

// Separators used to assemble keys. These are a fixed convention: a
// colon binds a level to its factor name, an underscore joins pairs,
// and a slash joins the input half of a treatment key to the algorithm
// half.
const (
	sepLevel     = ":"
	sepPair      = "_"
	sepTreatment = "/"
)

// Factors is an ordered set of (name, level) pairs describing one
// instance of an input or algorithm.
//
// FactorNames and FactorLevels must return slices of the same length,
// with elements matching in order, so that the Nth name and the Nth
// level describe the same underlying factor.
type Factors interface {
	// FactorNames returns the factor names in declared order.
	FactorNames() []string

	// FactorLevels returns the string form of each factor's level,
	// in the same order as FactorNames.
	FactorLevels() []string
}

// ShortFactors is implemented by factor sets that carry abbreviated
// names and levels in addition to the full forms. The short slices
// must enumerate the same factors, in the same order, as the full
// ones.
//
// Implementing ShortFactors is only necessary when full keys grow past
// the key limit; abbreviated keys must still uniquely identify an
// instance.
type ShortFactors interface {
	Factors

	FactorNamesShort() []string
	FactorLevelsShort() []string
}

// ShortNames returns f's abbreviated factor names, falling back to the
// full names when f does not implement ShortFactors.
func ShortNames(f Factors) []string {
	if s, ok := f.(ShortFactors); ok {
		return s.FactorNamesShort()
	}
	return f.FactorNames()
}

// ShortLevels returns f's abbreviated factor levels, falling back to
// the full levels when f does not implement ShortFactors.
func ShortLevels(f Factors) []string {
	if s, ok := f.(ShortFactors); ok {
		return s.FactorLevelsShort()
	}
	return f.FactorLevels()
}

// Join builds a key from parallel name and level slices:
// "name1:level1_name2:level2_...". An empty sequence yields "".
// Join panics if the slices have different lengths, since that means
// the factor set violates its ordering invariant.
func Join(names, levels []string) string {
	if len(names) != len(levels) {
		panic(fmt.Sprintf("benchkey: %d names but %d levels", len(names), len(levels)))
	}
	if len(names) == 0 {
		return ""
	}
	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteString(sepPair)
		}
		b.WriteString(name)
		b.WriteString(sepLevel)
		b.WriteString(levels[i])
	}
	return b.String()
}

// Key returns the full key of a factor set.
func Key(f Factors) string {
	return Join(f.FactorNames(), f.FactorLevels())
}

// ShortKey returns the abbreviated key of a factor set. The result is
// unbounded; use ShortTreatmentKey to enforce the key limit.
func ShortKey(f Factors) string {
	return Join(ShortNames(f), ShortLevels(f))
}

// TreatmentKey returns the full key of the (input, alg) treatment:
// "<inputKey>/<algKey>".
func TreatmentKey(input, alg Factors) string {
	return Key(input) + sepTreatment + Key(alg)
}

// ShortTreatmentKey returns the abbreviated treatment key, verifying
// that it fits within limit. A limit of 0 means DefaultKeyLimit.
//
// An over-long key is reported as a *KeyTooLongError rather than
// truncated: truncation would silently break key uniqueness. The
// caller recovers by supplying shorter abbreviations.
func ShortTreatmentKey(input, alg Factors, limit int) (string, error) {
	if limit == 0 {
		limit = DefaultKeyLimit
	}
	key := ShortKey(input) + sepTreatment + ShortKey(alg)
	if len(key) > limit {
		return "", &KeyTooLongError{Key: key, Limit: limit}
	}
	return key, nil
}

// A KeyTooLongError reports a short treatment key that exceeds the
// configured length limit.
type KeyTooLongError struct {
	Key   string
	Limit int
}

func (e *KeyTooLongError) Error() string {
	return fmt.Sprintf("benchkey: short key %q is %d bytes, exceeds limit %d", e.Key, len(e.Key), e.Limit)
}

// A Pair is a single decoded (name, level) pair from a key.
type Pair struct {
	Name, Level string
}

// ParseKey decodes a treatment key back into its input and algorithm
// halves. It is the inverse of TreatmentKey for factor names and
// levels that do not themselves contain the separator characters.
func ParseKey(key string) (input, alg []Pair, err error) {
	half := strings.SplitN(key, sepTreatment, 2)
	if len(half) != 2 {
		return nil, nil, fmt.Errorf("benchkey: key %q has no %q separator", key, sepTreatment)
	}
	if input, err = parseHalf(half[0]); err != nil {
		return nil, nil, err
	}
	if alg, err = parseHalf(half[1]); err != nil {
		return nil, nil, err
	}
	return input, alg, nil
}

func parseHalf(s string) ([]Pair, error) {
	if s == "" {
		return nil, nil
	}
	var pairs []Pair
	for _, part := range strings.Split(s, sepPair) {
		name, level, ok := strings.Cut(part, sepLevel)
		if !ok || name == "" {
			return nil, fmt.Errorf("benchkey: malformed pair %q", part)
		}
		pairs = append(pairs, Pair{name, level})
	}
	return pairs, nil
}
