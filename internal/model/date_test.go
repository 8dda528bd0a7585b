package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, time.January, 5)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-05"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, d.String(), back.String())
}

func TestDateUnmarshalTruncatesTimestamps(t *testing.T) {
	// old pg clients sent full timestamps
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-01-05T00:00:00.000Z"`), &d))
	assert.Equal(t, "2024-01-05", d.String())
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-03-02", d.String())

	require.NoError(t, d.Scan([]byte("2024-04-09")))
	assert.Equal(t, "2024-04-09", d.String())
}
