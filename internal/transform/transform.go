package transform

import (
	"fmt"

	"github.com/rgehrsitz/jptax/internal/domain"
)

// InputTransform is a composable, validated change to a household's tax inputs. The
// donation limit solver, the child growth projection and the what-if comparison all
// perturb inputs through transforms.
type InputTransform interface {
	// Apply returns modified inputs. The base value is never changed.
	Apply(base domain.TaxInputs) (domain.TaxInputs, error)

	// Name returns a short identifier (e.g. "set_ideco").
	Name() string

	// Description returns a human-readable description of the change.
	Description() string

	// Validate checks the transform parameters against the base without applying it.
	Validate(base domain.TaxInputs) error
}

// ApplyTransforms applies transforms in order, each receiving the output of the previous one.
func ApplyTransforms(base domain.TaxInputs, transforms []InputTransform) (domain.TaxInputs, error) {
	current := base
	for i, t := range transforms {
		if t == nil {
			return domain.TaxInputs{}, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := t.Validate(current); err != nil {
			return domain.TaxInputs{}, fmt.Errorf("transform %s validation failed: %w", t.Name(), err)
		}

		next, err := t.Apply(current)
		if err != nil {
			return domain.TaxInputs{}, fmt.Errorf("transform %s failed: %w", t.Name(), err)
		}
		current = next
	}
	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
