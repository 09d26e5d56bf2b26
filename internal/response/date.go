package response

import (
	"time"

	"github.com/lestrrat-go/strftime"
)

// TimeFormat is the IMF-fixdate layout used by Date and Last-Modified.
const TimeFormat = "%a, %d %b %Y %H:%M:%S GMT"

var httpDate = mustStrftime(TimeFormat)

func mustStrftime(pattern string) *strftime.Strftime {
	f, err := strftime.New(pattern)
	if err != nil {
		panic(err)
	}
	return f
}

// FormatDate renders t as an HTTP date in GMT.
func FormatDate(t time.Time) string {
	return httpDate.FormatString(t.UTC())
}
