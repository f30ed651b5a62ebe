package risika

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     time.Time
		wantRaw  string
		wantZero bool
	}{
		{
			name:  "date",
			input: `"2019-03-01"`,
			want:  time.Date(2019, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "RFC3339 timestamp",
			input: `"2024-01-15T10:30:00Z"`,
			want:  time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:  "timestamp without timezone",
			input: `"2020-01-01T00:00:00"`,
			want:  time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "timestamp with space separator",
			input: `"2020-01-01 12:00:00"`,
			want:  time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name:     "null value",
			input:    `null`,
			wantZero: true,
		},
		{
			name:     "empty string",
			input:    `""`,
			wantZero: true,
		},
		{
			name:    "unknown format is kept",
			input:   `"31-12-2020"`,
			wantRaw: "31-12-2020",
		},
		{
			name:    "number is kept",
			input:   `1234567890`,
			wantRaw: "1234567890",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Date
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("Date.UnmarshalJSON() error = %v", err)
			}

			if got.IsZero() != tt.wantZero {
				t.Errorf("Date.IsZero() = %v, want %v", got.IsZero(), tt.wantZero)
			}
			if !got.Time.Equal(tt.want) {
				t.Errorf("Date.UnmarshalJSON() = %v, want %v", got.Time, tt.want)
			}
			if got.Raw != tt.wantRaw {
				t.Errorf("Date.Raw = %q, want %q", got.Raw, tt.wantRaw)
			}
		})
	}
}

func TestDate_MarshalJSON(t *testing.T) {
	zero, err := json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(zero))

	set, err := json.Marshal(Date{Time: time.Date(2019, 3, 1, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.Equal(t, `"2019-03-01T00:00:00Z"`, string(set))

	raw, err := json.Marshal(Date{Raw: "31-12-2020"})
	require.NoError(t, err)
	assert.Equal(t, `"31-12-2020"`, string(raw))
}

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input   string
		want    ID
		wantErr bool
	}{
		{input: `"4000123456"`, want: "4000123456"},
		{input: `4000123456`, want: "4000123456"},
		{input: `null`, want: ""},
		{input: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var got ID
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPercent_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input   string
		want    Percent
		wantErr bool
	}{
		{input: `25`, want: Percent{Value: 25, Valid: true}},
		{input: `24.9`, want: Percent{Value: 24.9, Valid: true}},
		{input: `"33.33"`, want: Percent{Value: 33.33, Valid: true}},
		{input: `"50 %"`, want: Percent{Value: 50, Valid: true}},
		{input: `"unknown"`, want: Percent{}},
		{input: `null`, want: Percent{}},
		{input: `[]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var got Percent
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDocument_Field(t *testing.T) {
	var doc Document
	require.NoError(t, json.Unmarshal([]byte(`{"status":"ACTIVE","employees":12,"powers_to_bind":null}`), &doc))

	var status string
	require.NoError(t, doc.Field("status", &status))
	assert.Equal(t, "ACTIVE", status)

	var employees int
	require.NoError(t, doc.Field("employees", &employees))
	assert.Equal(t, 12, employees)

	var missing string
	assert.ErrorIs(t, doc.Field("company_name", &missing), ErrMissingField)
	assert.ErrorIs(t, doc.Field("powers_to_bind", &missing), ErrMissingField)

	var wrongType int
	err := doc.Field("status", &wrongType)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingField)
}
