package dtomapping

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/nemtech/catapult-sdk-go/packages/faults"
)

// EnumPair associates a value of one enumeration with the value of another enumeration that shares its meaning.
type EnumPair[A comparable, B comparable] struct {
	From A
	To   B
}

// EnumMapping is an explicit bijective table between two enumerations. Values outside the table are rejected instead
// of being reinterpreted numerically.
type EnumMapping[A comparable, B comparable] struct {
	forward  map[A]B
	backward map[B]A
	order    []A
}

// NewEnumMapping creates an EnumMapping from the given pairs. It panics if a value appears more than once on either
// side, since the table would not be bijective.
func NewEnumMapping[A comparable, B comparable](pairs ...EnumPair[A, B]) *EnumMapping[A, B] {
	mapping := &EnumMapping[A, B]{
		forward:  make(map[A]B, len(pairs)),
		backward: make(map[B]A, len(pairs)),
		order:    make([]A, 0, len(pairs)),
	}

	for _, pair := range pairs {
		if _, exists := mapping.forward[pair.From]; exists {
			panic(fmt.Sprintf("duplicate source value %v in enum mapping", pair.From))
		}
		if _, exists := mapping.backward[pair.To]; exists {
			panic(fmt.Sprintf("duplicate target value %v in enum mapping", pair.To))
		}

		mapping.forward[pair.From] = pair.To
		mapping.backward[pair.To] = pair.From
		mapping.order = append(mapping.order, pair.From)
	}

	return mapping
}

// Map translates a source value into the corresponding target value.
func (e *EnumMapping[A, B]) Map(value A) (mapped B, err error) {
	mapped, exists := e.forward[value]
	if !exists {
		err = errors.Errorf("value %v is not part of the enum mapping: %w", value, faults.ErrFormat)
	}

	return
}

// Unmap translates a target value back into the corresponding source value.
func (e *EnumMapping[A, B]) Unmap(value B) (unmapped A, err error) {
	unmapped, exists := e.backward[value]
	if !exists {
		err = errors.Errorf("value %v is not part of the enum mapping: %w", value, faults.ErrFormat)
	}

	return
}

// Values returns the source values of the table in the order they were registered.
func (e *EnumMapping[A, B]) Values() []A {
	return append([]A(nil), e.order...)
}
