package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.February, 29)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-02-29"`, string(data))

	var parsed Date
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, d.Equal(parsed.Time))
}

func TestDate_UnmarshalRejectsGarbage(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"29/02/2024"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20240229`), &d))
}

func TestDate_ScanString(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2023-12-31"))
	assert.Equal(t, "2023-12-31", d.String())

	// Datetime strings truncate to the day.
	require.NoError(t, d.Scan("2023-12-31 10:00:00"))
	assert.Equal(t, "2023-12-31", d.String())
}

func TestDate_ScanTime(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, time.June, 1, 23, 30, 0, 0, time.UTC)))
	assert.Equal(t, "2024-06-01", d.String())
}

func TestDateOf_TruncatesToUTCDay(t *testing.T) {
	loc := time.FixedZone("plus4", 4*3600)
	// 01:30 +04:00 is still the previous day in UTC.
	d := DateOf(time.Date(2024, time.June, 2, 1, 30, 0, 0, loc))
	assert.Equal(t, "2024-06-01", d.String())
}
