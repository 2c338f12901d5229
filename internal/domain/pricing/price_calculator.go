package pricing

import (
	"errors"
	"math"

	"staybook/internal/domain/calendar"
)

// DailyPrice is the unrounded price of one night.
func DailyPrice(basePrice int64, rule *PriceRule) float64 {
	if rule == nil {
		return float64(basePrice)
	}
	switch rule.priceType {
	case PriceTypePercentage:
		return float64(basePrice) * (1 + rule.value/100)
	case PriceTypeFixed:
		return rule.value
	default:
		return float64(basePrice)
	}
}

// MaxAmount bounds a night and a stay total. Amounts below it are exact
// integers in float64.
const MaxAmount int64 = 1_000_000_000_000_000

var ErrPriceOutOfRange = errors.New("price exceeds the supported range")

// RoundAmount rounds half away from zero to a whole currency unit.
func RoundAmount(v float64) (int64, error) {
	r := math.Round(v)
	if math.IsNaN(r) || r > float64(MaxAmount) || r < -float64(MaxAmount) {
		return 0, ErrPriceOutOfRange
	}
	return int64(r), nil
}

// Availability answers single-range availability questions for one room.
type Availability interface {
	IsAvailable(r calendar.Range) bool
}

type DayQuote struct {
	Date        calendar.Date
	Price       int64
	IsAvailable bool
	IsHoliday   bool
	IsWeekend   bool
}

// Calculator prices stays and month calendars for a room with a given base price.
type Calculator interface {
	TotalPrice(basePrice int64, rules []*PriceRule, stay calendar.Range) (int64, error)
	MonthCalendar(basePrice int64, rules []*PriceRule, availability Availability, month calendar.Month) ([]DayQuote, error)
}

// RangePricer rounds every night to a whole unit and sums the rounded
// nights, so a stay total always equals the sum of its calendar prices.
type RangePricer struct{}

func NewRangePricer() *RangePricer {
	return &RangePricer{}
}

func (p *RangePricer) TotalPrice(basePrice int64, rules []*PriceRule, stay calendar.Range) (int64, error) {
	var total int64
	for d := range stay.Days() {
		night, err := RoundAmount(DailyPrice(basePrice, Resolve(rules, d)))
		if err != nil {
			return 0, err
		}
		if total > MaxAmount-night {
			return 0, ErrPriceOutOfRange
		}
		total += night
	}
	return total, nil
}

func (p *RangePricer) MonthCalendar(basePrice int64, rules []*PriceRule, availability Availability, month calendar.Month) ([]DayQuote, error) {
	days := make([]DayQuote, 0, month.Days())
	for d := range month.Range().Days() {
		rule := Resolve(rules, d)
		available := true
		if availability != nil {
			available = availability.IsAvailable(calendar.SingleDay(d))
		}
		price, err := RoundAmount(DailyPrice(basePrice, rule))
		if err != nil {
			return nil, err
		}
		days = append(days, DayQuote{
			Date:        d,
			Price:       price,
			IsAvailable: available,
			IsHoliday:   rule != nil,
			IsWeekend:   d.IsWeekend(),
		})
	}
	return days, nil
}
