package skilift

import (
	"time"

	"github.com/pkg/errors"
)

// dateLayout is the GTFS service_date layout, YYYYMMDD.
const dateLayout = "20060102"

// shiftDate returns date shifted by days calendar days (may be negative),
// in the same YYYYMMDD layout.
func shiftDate(date string, days int) (string, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", errors.Wrapf(ErrMalformedFeed, "invalid date %q", date)
	}
	return t.AddDate(0, 0, days).Format(dateLayout), nil
}
