package matrix

import (
	"fmt"
	"strings"
)

// Format renders m as a named block, each line indented by pad spaces:
//
//	name[2x2] = [
//	  0.1000  0.2000
//	  0.3000  0.4000
//	]
func (m *Matrix) Format(name string, pad int) string {
	indent := strings.Repeat(" ", pad)

	var b strings.Builder
	fmt.Fprintf(&b, "%s%s[%dx%d] = [\n", indent, name, m.rows, m.cols)
	for i := 0; i < m.rows; i++ {
		b.WriteString(indent)
		b.WriteString("  ")
		for j, v := range m.rowSlice(i) {
			if j > 0 {
				b.WriteString("  ")
			}
			fmt.Fprintf(&b, "%.4f", v)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "%s]\n", indent)
	return b.String()
}

// String implements fmt.Stringer.
func (m *Matrix) String() string {
	return m.Format("m", 0)
}

// Describe returns the layout of m without its elements.
func (m *Matrix) Describe() string {
	return fmt.Sprintf("{rows:%d cols:%d stride:%d offset:%d view:%t}", m.rows, m.cols, m.stride, m.offset, m.view)
}
