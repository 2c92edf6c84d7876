package screenbind

import (
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Layouts tried in order when parsing a date argument.
var dateParseLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Format tokens accepted by formatDate, longest first so YYYY is not
// half-consumed by a shorter token.
var dateFormatTokens = []struct {
	token  string
	layout string
}{
	{"YYYY", "2006"},
	{"MM", "01"},
	{"DD", "02"},
	{"HH", "15"},
	{"mm", "04"},
	{"ss", "05"},
}

func registerDateFunctions(registry *DefaultFunctionRegistry) {
	registry.RegisterFunction(newSafeFunction(Signature{
		Name:        "now",
		Params:      nil,
		Returns:     "string",
		Description: "Returns the current UTC timestamp in RFC 3339 format.",
	}, 0, 0, func(args ...interface{}) (interface{}, error) {
		return time.Now().UTC().Format(time.RFC3339), nil
	}))

	registry.RegisterFunction(newSafeFunction(Signature{
		Name: "formatDate",
		Params: []Param{
			{Name: "date", Type: "string|number"},
			{Name: "format", Type: "string", Optional: true},
		},
		Returns:     "string",
		Description: "Formats a date using YYYY, MM, DD, HH, mm, ss tokens.",
	}, 1, 2, func(args ...interface{}) (interface{}, error) {
		t, ok := parseDateValue(args[0])
		if !ok {
			// Unparsable input passes through stringified, never errors.
			return formatValue(args[0]), nil
		}
		format := "YYYY-MM-DD"
		if len(args) > 1 && args[1] != nil {
			format = formatValue(args[1])
		}
		return formatDateTokens(t, format), nil
	}))
}

// parseDateValue accepts time.Time, the known string layouts, and numeric
// epoch values (seconds, or milliseconds above 1e12).
func parseDateValue(value interface{}) (time.Time, bool) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return v, true
	case string:
		for _, layout := range dateParseLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	}

	if isNumeric(value) {
		epoch, err := cast.ToFloat64E(value)
		if err != nil {
			return time.Time{}, false
		}
		if epoch >= 1e12 {
			return time.UnixMilli(int64(epoch)).UTC(), true
		}
		return time.Unix(int64(epoch), 0).UTC(), true
	}

	return time.Time{}, false
}

func formatDateTokens(t time.Time, format string) string {
	var b strings.Builder
	for i := 0; i < len(format); {
		matched := false
		for _, entry := range dateFormatTokens {
			if strings.HasPrefix(format[i:], entry.token) {
				b.WriteString(t.Format(entry.layout))
				i += len(entry.token)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(format[i])
			i++
		}
	}
	return b.String()
}
