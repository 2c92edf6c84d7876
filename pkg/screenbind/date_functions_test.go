package screenbind

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNow(t *testing.T) {
	value := callSafe(t, "now")
	str, ok := value.(string)
	require.True(t, ok)

	parsed, err := time.Parse(time.RFC3339, str)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), parsed, time.Minute)
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want string
	}{
		{"rfc3339 default format", []interface{}{"2026-08-28T14:30:45Z"}, "2026-08-28"},
		{"full token vocabulary", []interface{}{"2026-08-28T14:30:45Z", "YYYY-MM-DD HH:mm:ss"}, "2026-08-28 14:30:45"},
		{"date only input", []interface{}{"2026-01-05", "DD/MM/YYYY"}, "05/01/2026"},
		{"space separated input", []interface{}{"2026-08-28 14:30:45", "HH:mm"}, "14:30"},
		{"literal text preserved", []interface{}{"2026-08-28", "year YYYY!"}, "year 2026!"},
		{"unparsable passes through", []interface{}{"not a date", "YYYY"}, "not a date"},
		{"nil passes through", []interface{}{nil, "YYYY"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, callSafe(t, "formatDate", tt.args...))
		})
	}
}

func TestFormatDateEpochInputs(t *testing.T) {
	// 2026-08-28T00:00:00Z
	epochSeconds := float64(time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC).Unix())
	epochMillis := epochSeconds * 1000

	assert.Equal(t, "2026-08-28", callSafe(t, "formatDate", epochSeconds, "YYYY-MM-DD"))
	assert.Equal(t, "2026-08-28", callSafe(t, "formatDate", epochMillis, "YYYY-MM-DD"))
}

func TestFormatDateTimeValue(t *testing.T) {
	moment := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	assert.Equal(t, "2026-02-03 04:05:06", callSafe(t, "formatDate", moment, "YYYY-MM-DD HH:mm:ss"))
}
