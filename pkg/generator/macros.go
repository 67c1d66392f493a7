package generator

import (
	"fmt"
	"time"

	"github.com/srcmake/srcmake/pkg/macro"
	"github.com/srcmake/srcmake/pkg/names"
)

// UniversalMacros returns the macros every template can use. now is
// converted to UTC.
func UniversalMacros(name, ext, author string, now time.Time) macro.Map {
	now = now.UTC()
	date := fmt.Sprintf("%04d-%02d-%02d", now.Year(), int(now.Month()), now.Day())
	clock := fmt.Sprintf("%02d:%02d", now.Hour(), now.Minute())

	return macro.Map{
		"FILE_NAME": names.FileName(name, true),
		"FILE_EXT":  ext,
		"NAME":      names.PathToIdentifier(name),
		"AUTHOR":    author,
		"DATETIME":  date + ": " + clock,
		"DATE":      date,
		"TIME":      clock,
		"YEAR":      fmt.Sprintf("%d", now.Year()),
		"MONTH_NUM": fmt.Sprintf("%d", int(now.Month())),
		"MONTH":     now.Month().String(),
		"DAY":       fmt.Sprintf("%d", now.Day()),
		"WEEKDAY":   now.Weekday().String(),
	}
}
