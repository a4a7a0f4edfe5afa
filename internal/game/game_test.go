// SPDX-License-Identifier: MIT

package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatLocal(t *testing.T) {
	est := Timezone{OffsetHours: -5, Name: "EST"}

	tests := []struct {
		name string
		utc  string
		tz   Timezone
		want string
	}{
		{
			name: "evening game shifts into afternoon",
			utc:  "2026-01-11T23:30:00Z",
			tz:   est,
			want: "1/11 6:30PM",
		},
		{
			name: "midnight UTC rolls back a day",
			utc:  "2026-01-12T00:00:00Z",
			tz:   est,
			want: "1/11 7:00PM",
		},
		{
			name: "noon stays PM",
			utc:  "2026-06-03T17:00:00Z",
			tz:   est,
			want: "6/3 12:00PM",
		},
		{
			name: "local midnight displays as 12AM",
			utc:  "2026-06-03T05:00:00Z",
			tz:   est,
			want: "6/3 12:00AM",
		},
		{
			name: "positive offset",
			utc:  "2026-06-03T10:15:00Z",
			tz:   Timezone{OffsetHours: 2, Name: "CEST"},
			want: "6/3 12:15PM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := time.Parse(time.RFC3339, tt.utc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, FormatLocal(ts, tt.tz))
		})
	}
}

func TestFormatLocalZeroTime(t *testing.T) {
	assert.Equal(t, "TBD", FormatLocal(time.Time{}, Timezone{OffsetHours: -5}))
}

func TestParseEventTime(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "2026-01-11T23:30Z", want: "2026-01-11T23:30:00Z"},
		{in: "2026-01-11T23:30:15Z", want: "2026-01-11T23:30:15Z"},
		{in: "", wantErr: true},
		{in: "next tuesday", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseEventTime(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got.Format(time.RFC3339))
	}
}

func TestDisplayStatus(t *testing.T) {
	est := Timezone{OffsetHours: -5, Name: "EST"}
	start, _ := time.Parse(time.RFC3339, "2026-01-11T23:30:00Z")

	tests := []struct {
		name        string
		statusName  string
		shortDetail string
		want        string
	}{
		{"final", "STATUS_FINAL", "Final", "FINAL"},
		{"in progress uses detail", "STATUS_IN_PROGRESS", "Q3 5:42", "Q3 5:42"},
		{"scheduled shows local time", "STATUS_SCHEDULED", "1/11 - 11:30 PM UTC", "1/11 6:30PM"},
		{"postponed", "STATUS_POSTPONED", "Postponed", "POSTPONED"},
		{"canceled", "STATUS_CANCELED", "Canceled", "CANCELED"},
		{"unknown with detail", "STATUS_HALFTIME", "Halftime", "Halftime"},
		{"unknown without detail", "STATUS_WEIRD", "", "SCHEDULED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayStatus(tt.statusName, tt.shortDetail, start, est))
		})
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"LAC", "lac"},
		{"Montréal", "montreal"},
		{"SF 49ers", "sf-49ers"},
		{"St. Louis  Blues", "st-louis-blues"},
		{"", "team"},
		{"---", "team"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slug(tt.in), "input %q", tt.in)
	}
}

func TestLeagueByName(t *testing.T) {
	l, err := LeagueByName("nhl")
	require.NoError(t, err)
	assert.Equal(t, "hockey", l.Sport)

	_, err = LeagueByName("curling")
	assert.Error(t, err)
}
