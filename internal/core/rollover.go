// Rollover advances a recurring payment's due date by one frequency period.
// This is a pure calendar computation with no storage access.

package core

// maxRolloverDay caps the day-of-month when rolling into the next month, so
// a payment anchored on the 29th..31st never lands on a day the target month
// does not have.
const maxRolloverDay = 28

// NextDueDate computes the due date one period after d.
//
//	weekly:  d + 7 days
//	monthly: next calendar month, day clamped to 28, year rolls past December
//	yearly:  same month and day, year + 1
//
// Any unrecognized frequency behaves like monthly. That fallback mirrors the
// legacy application and keeps rows written with a frequency this version does
// not know moving forward instead of going permanently overdue.
func NextDueDate(d Date, f Frequency) Date {
	switch f {
	case Weekly:
		return nextWeekly(d)
	case Yearly:
		return nextYearly(d)
	default:
		return nextMonthly(d)
	}
}

func nextWeekly(d Date) Date {
	return NewDate(d.Year(), int(d.Time.Month()), d.Day()+7)
}

func nextMonthly(d Date) Date {
	month := int(d.Time.Month())
	year := d.Year() + month/12
	month = month%12 + 1

	day := d.Day()
	if day > maxRolloverDay {
		day = maxRolloverDay
	}
	return NewDate(year, month, day)
}

// nextYearly keeps the month and day verbatim, so Feb 29 of a leap year maps
// to "Feb 29" of the next year; time.Date normalizes that to Mar 1. The
// legacy system had the same wrinkle and it is reproduced, not repaired.
func nextYearly(d Date) Date {
	return NewDate(d.Year()+1, int(d.Time.Month()), d.Day())
}
