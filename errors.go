package unitconv

import "errors"

// Every message carries the "unitconv: " prefix. Functions wrap these with
// context through fmt.Errorf("...: %w", ErrX); match them with errors.Is.
var (
	// ErrUnknownCategory is returned when a category name is not in the table.
	ErrUnknownCategory = errors.New("unitconv: unknown category")

	// ErrUnknownUnit is returned when a unit name is not part of the given category.
	ErrUnknownUnit = errors.New("unitconv: unknown unit")

	// ErrInvalidValue is returned for NaN or ±Inf input values.
	ErrInvalidValue = errors.New("unitconv: value must be finite")

	// ErrOutOfRange is returned when a finite input overflows float64 during conversion.
	ErrOutOfRange = errors.New("unitconv: result out of range")
)

// ErrInvalidTable is returned when a category or table being built breaks a
// table invariant, for instance a duplicate name or a non-positive factor.
var ErrInvalidTable = errors.New("unitconv: invalid unit table")
