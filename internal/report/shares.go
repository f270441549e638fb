package report

import (
	"fmt"

	"github.com/emergylab/emergia/internal/engine"
)

// Share is one input flow's contribution to a single process, as an absolute
// emergy value and as a percentage of the process total. This is the data a
// chart collaborator needs to draw the per-process contribution breakdown.
type Share struct {
	Flow    string
	Value   float64
	Percent float64
}

// Shares slices the total-emergy contribution table to one process column.
// When the process total is zero every percentage is zero.
func Shares(res *engine.Results, process string) ([]Share, error) {
	if res == nil || res.Mode != engine.ModeTotalEmergy || res.Contributions == nil {
		return nil, fmt.Errorf("shares: results bundle has no contribution table")
	}

	column, err := res.Contributions.Column(process)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, v := range column {
		total += v
	}

	shares := make([]Share, len(column))
	for i, v := range column {
		s := Share{Flow: res.Contributions.Flows[i], Value: v}
		if total != 0 {
			s.Percent = v / total * 100
		}
		shares[i] = s
	}
	return shares, nil
}
