package dag

import (
	"fmt"
	"io"

	"github.com/specialistvlad/workgrid/internal/station"
)

const rule = "*****************************************************************"

// DescribeGraph writes the description of every station reachable from start
// to w, depth first.
func DescribeGraph(w io.Writer, start *station.Station) error {
	if _, err := fmt.Fprintln(w, "****************************** DAG ******************************"); err != nil {
		return err
	}
	for _, st := range Reachable(start) {
		if _, err := io.WriteString(w, st.Describe()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, rule)
	return err
}
