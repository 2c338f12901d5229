package pricing

import (
	"bytes"

	"staybook/internal/domain/calendar"
)

// Resolve selects the rule that prices date d.
//
// Active rules of one property are not allowed to overlap, so normally at most
// one rule matches. When several do, the outcome does not depend on slice
// order: the narrowest period wins, then the latest start date, then the
// smallest id.
func Resolve(rules []*PriceRule, d calendar.Date) *PriceRule {
	var best *PriceRule
	for _, r := range rules {
		if r == nil || !r.AppliesOn(d) {
			continue
		}
		if best == nil || precedes(r, best) {
			best = r
		}
	}
	return best
}

func precedes(a, b *PriceRule) bool {
	if sa, sb := a.SpanDays(), b.SpanDays(); sa != sb {
		return sa < sb
	}
	if !a.startDate.Equal(b.startDate) {
		return a.startDate.After(b.startDate)
	}
	return bytes.Compare(a.id[:], b.id[:]) < 0
}
