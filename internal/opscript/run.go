package opscript

import (
	"fmt"

	"github.com/joshuapare/bucketkit/bucket"
)

// RunOptions controls script execution.
type RunOptions struct {
	// Validate runs a full structural check after every operation and
	// aborts on the first violation.
	Validate bool
}

// Result records the container state after one executed operation.
type Result struct {
	Op     Op
	Size   int
	Blocks int
}

// Run applies ops to the container in order and returns one Result per
// executed operation. On error the returned results cover the
// operations that completed before the failure.
func Run(s *bucket.Storage[string], ops []Op, opts *RunOptions) ([]Result, error) {
	if opts == nil {
		opts = &RunOptions{}
	}

	results := make([]Result, 0, len(ops))

	for _, op := range ops {
		switch op.Kind {
		case KindInsert:
			s.Insert(op.Value)

		case KindErase:
			if op.Pos >= s.Size() {
				return results, fmt.Errorf("line %d: erase position %d out of range (size %d)", op.Line, op.Pos, s.Size())
			}
			it := s.Begin()
			it.Advance(op.Pos)
			s.Erase(it)

		case KindClear:
			s.Clear()

		case KindShrink:
			s.ShrinkToFit()

		default:
			return results, fmt.Errorf("line %d: unknown operation kind %d", op.Line, int(op.Kind))
		}

		if opts.Validate {
			if err := s.Validate(); err != nil {
				return results, fmt.Errorf("after line %d (%s): %w", op.Line, op.Kind, err)
			}
		}

		results = append(results, Result{Op: op, Size: s.Size(), Blocks: s.Blocks()})
	}

	return results, nil
}
