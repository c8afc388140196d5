package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/dealbridge/billing-engine/constants"
	"github.com/dealbridge/billing-engine/types/business"
	"github.com/shopspring/decimal"
)

// Proration failure modes. Generators translate these into zero-amount
// results with explanatory notes; proration is advisory pending human review.
var (
	// ErrInvalidDateRange means the contract dates were unparsable or start
	// is not before end.
	ErrInvalidDateRange = errors.New("invalid contract date range")

	// ErrNoRemainingPeriod means the contract end is not after the effective
	// start, so there is nothing left to prorate.
	ErrNoRemainingPeriod = errors.New("no remaining period to prorate")
)

// Calculation method labels carried into the review sheet.
const (
	MethodMonthlyDailyRate   = "monthly_daily_rate"
	MethodQuarterlyDailyRate = "quarterly_daily_rate"
	MethodAnnualDailyRate    = "annual_daily_rate"
)

const delayedStartDiscount = 0.10

// ProrationCalculator computes partial-period charges for line items. It
// holds no clock; "now" is always an explicit parameter so calculations are
// reproducible.
type ProrationCalculator struct{}

// NewProrationCalculator creates a new proration calculator.
func NewProrationCalculator() *ProrationCalculator {
	return &ProrationCalculator{}
}

// CalculateLineItemProration computes the charge for the partial period from
// now (or contract start, if still in the future) through contract end, at a
// daily rate derived from the billing frequency's anchor period. Amounts are
// rounded to the nearest minor unit and never negative.
func (pc *ProrationCalculator) CalculateLineItemProration(
	item *business.LineItem,
	contractStart, contractEnd string,
	frequency business.BillingFrequency,
	now time.Time,
	hints *business.ProrationHints,
) (*business.ProrationResult, error) {
	start, err := time.Parse(constants.ContractDateLayout, contractStart)
	if err != nil {
		return nil, fmt.Errorf("%w: start %q", ErrInvalidDateRange, contractStart)
	}
	end, err := time.Parse(constants.ContractDateLayout, contractEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: end %q", ErrInvalidDateRange, contractEnd)
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: start %s is not before end %s", ErrInvalidDateRange, contractStart, contractEnd)
	}

	effectiveStart := truncateToDay(now)
	if start.After(effectiveStart) {
		effectiveStart = start
	}

	daysRemaining := daysBetween(effectiveStart, end)
	if daysRemaining <= 0 {
		return nil, fmt.Errorf("%w: %d days between %s and %s", ErrNoRemainingPeriod,
			daysRemaining, effectiveStart.Format(constants.ContractDateLayout), contractEnd)
	}

	monthlyCents := decimal.NewFromFloat(item.UnitPrice).
		Mul(decimal.NewFromInt(item.Quantity)).
		Mul(decimal.NewFromInt(100))

	var periodCents decimal.Decimal
	var periodDays int
	var method string

	switch frequency {
	case business.FrequencyQuarterly:
		periodCents = monthlyCents.Mul(decimal.NewFromInt(3))
		periodDays = daysInQuarter(effectiveStart)
		method = MethodQuarterlyDailyRate
	case business.FrequencyAnnually:
		periodCents = monthlyCents.Mul(decimal.NewFromInt(12))
		periodDays = daysInYear(effectiveStart.Year())
		method = MethodAnnualDailyRate
	default:
		// Monthly is also the fallback for unrecognized frequencies.
		periodCents = monthlyCents
		periodDays = daysInMonth(effectiveStart)
		method = MethodMonthlyDailyRate
	}

	notes := []string{
		fmt.Sprintf("Daily rate over a %d-day %s period, %d days remaining", periodDays, method, daysRemaining),
	}

	amount := periodCents.
		Div(decimal.NewFromInt(int64(periodDays))).
		Mul(decimal.NewFromInt(int64(daysRemaining)))

	amount = pc.applyHints(amount, item, now, hints, &notes)
	cents := pc.applyFloor(amount.Round(0).IntPart(), item, &notes)

	if cents < 0 {
		cents = 0
	}

	return &business.ProrationResult{
		AmountCents: cents,
		Method:      method,
		DaysUsed:    daysRemaining,
		Notes:       notes,
	}, nil
}

// applyHints applies the scenario-specific business-rule adjustments. Hints
// are only honored when supplied by the caller.
func (pc *ProrationCalculator) applyHints(
	amount decimal.Decimal,
	item *business.LineItem,
	now time.Time,
	hints *business.ProrationHints,
	notes *[]string,
) decimal.Decimal {
	if hints == nil {
		return amount
	}

	if hints.ImmediateInvoice && item.ActivationDate != "" {
		activation, err := time.Parse(constants.ContractDateLayout, item.ActivationDate)
		if err == nil && activation.After(truncateToDay(now)) {
			amount = amount.Mul(decimal.NewFromFloat(1 - delayedStartDiscount))
			*notes = append(*notes, fmt.Sprintf("Delayed-start discount applied: activation %s is in the future", item.ActivationDate))
		}
	}

	if hints.SubscriptionUpdate && item.PreviousPrice != nil {
		oldPrice := decimal.NewFromFloat(*item.PreviousPrice)
		newPrice := decimal.NewFromFloat(item.UnitPrice)
		if oldPrice.LessThan(newPrice) && newPrice.IsPositive() {
			// Only the incremental portion of a price increase is prorated.
			// The ratio is taken against the new price, not the delta's own
			// base.
			ratio := newPrice.Sub(oldPrice).Div(newPrice)
			amount = amount.Mul(ratio)
			*notes = append(*notes, fmt.Sprintf("Partial-increase proration: charging the increment above previous price $%s", oldPrice.StringFixed(2)))
		}
	}

	return amount
}

// applyFloor rounds sub-dollar amounts up to the minimum charge for
// subscription-affecting items and waives them entirely for add-ons.
func (pc *ProrationCalculator) applyFloor(cents int64, item *business.LineItem, notes *[]string) int64 {
	if cents <= 0 || cents >= constants.MinimumSubscriptionChargeCents {
		return cents
	}
	if item.IsSubscriptionAffecting() {
		*notes = append(*notes, "Sub-dollar amount raised to the minimum subscription charge")
		return constants.MinimumSubscriptionChargeCents
	}
	*notes = append(*notes, "Sub-dollar add-on amount waived")
	return 0
}

// truncateToDay normalizes a timestamp to midnight UTC so day arithmetic is
// stable regardless of the caller's clock precision.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween is the calendar-day difference between two dates.
func daysBetween(start, end time.Time) int {
	return int(truncateToDay(end).Sub(truncateToDay(start)).Hours() / 24)
}

// daysInMonth returns the length of the calendar month containing t.
func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// daysInQuarter returns the length of the calendar quarter containing t,
// counting both boundary days' months in full.
func daysInQuarter(t time.Time) int {
	quarterStartMonth := time.Month(((int(t.Month())-1)/3)*3 + 1)
	quarterStart := time.Date(t.Year(), quarterStartMonth, 1, 0, 0, 0, 0, time.UTC)
	return daysBetween(quarterStart, quarterStart.AddDate(0, 3, 0))
}

// daysInYear applies the Gregorian leap-year rule.
func daysInYear(year int) int {
	if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
		return 366
	}
	return 365
}
