package core

// IsLeapYear reports whether year is a leap year in the Gregorian calendar.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of calendar days in the given month (1-12).
func DaysInMonth(year, month int) (int, error) {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31, nil
	case 4, 6, 9, 11:
		return 30, nil
	case 2:
		if IsLeapYear(year) {
			return 29, nil
		}
		return 28, nil
	default:
		return 0, ErrInvalidMonth
	}
}
