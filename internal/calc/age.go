package calc

import "time"

// AgeAt returns the age in whole years at the given instant.
func AgeAt(birthDate, now time.Time) (int, error) {
	if birthDate.IsZero() {
		return 0, validationErr("birth date is required")
	}
	if birthDate.After(now) {
		return 0, validationErr("birth date %s is in the future", birthDate.Format("2006-01-02"))
	}

	age := now.Year() - birthDate.Year()
	if now.Month() < birthDate.Month() ||
		(now.Month() == birthDate.Month() && now.Day() < birthDate.Day()) {
		age--
	}
	return age, nil
}

func Age(birthDate time.Time) (int, error) {
	return AgeAt(birthDate, time.Now())
}
