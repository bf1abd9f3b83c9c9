// Package safe narrows integers to fixed width unsigned types, rejecting
// values that do not fit.
package safe

import (
	"errors"
	"fmt"
	"math"
)

// ErrOutOfRange is wrapped by every conversion failure.
var ErrOutOfRange = errors.New("value out of range")

// Integer is any built-in integer kind.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Uint8 converts v to uint8.
func Uint8[T Integer](v T) (uint8, error) {
	if err := check(v, math.MaxUint8, "uint8"); err != nil {
		return 0, err
	}
	return uint8(v), nil
}

// Uint32 converts v to uint32.
func Uint32[T Integer](v T) (uint32, error) {
	if err := check(v, math.MaxUint32, "uint32"); err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// Uint64 converts v to uint64, rejecting negatives.
func Uint64[T Integer](v T) (uint64, error) {
	if err := check(v, math.MaxUint64, "uint64"); err != nil {
		return 0, err
	}
	return uint64(v), nil
}

func check[T Integer](v T, max uint64, kind string) error {
	if v < 0 || uint64(v) > max {
		return fmt.Errorf("%w: %d does not fit %s", ErrOutOfRange, v, kind)
	}
	return nil
}
