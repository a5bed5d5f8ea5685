package grammar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	reFormRange = regexp.MustCompile(`^(\d+)-(\d+)$`)
	reFormList  = regexp.MustCompile(`^\d+(?:,\d+)+$`)
	reFormOne   = regexp.MustCompile(`^\d+$`)
)

// maxFormRange caps the number of ids one range may expand to.
const maxFormRange = 1000

// ParseFormSpec expands the form column of a rule line into form ids.
// Accepted shapes: "N", "N1,N2,..." and the inclusive range "N1-N2" with
// N2 > N1, spanning at most maxFormRange ids. Repeated ids are dropped;
// dup reports whether that happened.
func ParseFormSpec(spec string) (ids []int, dup bool, err error) {
	var raw []int
	switch {
	case reFormRange.MatchString(spec):
		m := reFormRange.FindStringSubmatch(spec)
		from, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, false, fmt.Errorf("wrong range %s: %w", spec, err)
		}
		to, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, false, fmt.Errorf("wrong range %s: %w", spec, err)
		}
		if to <= from {
			return nil, false, fmt.Errorf("wrong range: %s", spec)
		}
		if to-from >= maxFormRange {
			return nil, false, fmt.Errorf("range %s spans more than %d ids", spec, maxFormRange)
		}
		for i := from; i <= to; i++ {
			raw = append(raw, i)
		}
	case reFormList.MatchString(spec):
		for _, s := range strings.Split(spec, ",") {
			n, err := strconv.Atoi(s)
			if err != nil {
				return nil, false, fmt.Errorf("wrong form id in %s: %w", spec, err)
			}
			raw = append(raw, n)
		}
	case reFormOne.MatchString(spec):
		n, err := strconv.Atoi(spec)
		if err != nil {
			return nil, false, fmt.Errorf("wrong form id %s: %w", spec, err)
		}
		raw = append(raw, n)
	default:
		return nil, false, fmt.Errorf("should be either a number, a list or a range: %q", spec)
	}

	seen := make(map[int]bool, len(raw))
	for _, n := range raw {
		if seen[n] {
			dup = true
			continue
		}
		seen[n] = true
		ids = append(ids, n)
	}
	return ids, dup, nil
}
