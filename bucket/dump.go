package bucket

import (
	"fmt"
	"io"
	"strings"
)

// DumpStructure writes a human-readable rendering of the container:
// one header line, then per block the active arc in chain order with
// insertion ids and the reservoir arc. Intended for debugging and the
// CLI; the format is not stable.
func (s *Storage[T]) DumpStructure(w io.Writer) error {
	st := s.Stats()
	if _, err := fmt.Fprintf(w, "storage: size=%d blocks=%d capacity=%d (block capacity %d)\n",
		st.Size, st.Blocks, st.Capacity, st.BlockCapacity); err != nil {
		return err
	}
	for pos, snap := range s.Snapshot() {
		state := "incomplete"
		if snap.Size == st.BlockCapacity {
			state = "full"
		}
		if _, err := fmt.Fprintf(w, "  block %d (id %d, %s): size=%d first=%d last=%d\n",
			pos, snap.ID, state, snap.Size, snap.First, snap.Last); err != nil {
			return err
		}
		var line strings.Builder
		line.WriteString("    active:")
		for _, slot := range snap.Active {
			fmt.Fprintf(&line, " %d(id=%d)", slot, snap.IDs[slot])
		}
		if _, err := fmt.Fprintln(w, line.String()); err != nil {
			return err
		}
		if len(snap.Reservoir) > 0 {
			line.Reset()
			line.WriteString("    reservoir:")
			for _, slot := range snap.Reservoir {
				fmt.Fprintf(&line, " %d", slot)
			}
			if _, err := fmt.Fprintln(w, line.String()); err != nil {
				return err
			}
		}
	}
	return nil
}
