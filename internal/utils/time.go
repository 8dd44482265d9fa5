package utils

import (
	"fmt"
	"time"
)

var SPLoc *time.Location

func init() {
	var err error
	SPLoc, err = time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		// No tzdata on the host; São Paulo has no DST since 2019.
		SPLoc = time.FixedZone("BRT", -3*60*60)
	}
}

// FormatSaoPaulo returns the provided time formatted in São Paulo local time.
func FormatSaoPaulo(t time.Time) string {
	return t.In(SPLoc).Format("02/01/2006 15:04")
}

// FormatDate returns the São Paulo calendar date in the dd/mm/yyyy form.
func FormatDate(t time.Time) string {
	return t.In(SPLoc).Format("02/01/2006")
}

// ToSaoPaulo converts a given time to São Paulo time.
func ToSaoPaulo(t time.Time) time.Time {
	return t.In(SPLoc)
}

// ParseDate accepts 2006-01-02, 02/01/2006 and 02/01/06, read as São Paulo
// dates.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "02/01/2006", "02/01/06"} {
		if t, err := time.ParseInLocation(layout, s, SPLoc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD or DD/MM/YYYY", s)
}
