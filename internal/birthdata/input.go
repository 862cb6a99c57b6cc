// Package birthdata defines the birth data collected during onboarding and
// the rules it must satisfy before it can be submitted.
package birthdata

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

// DefaultTimezone preselected on a new form
const DefaultTimezone = "UTC"

// LocationID is a location id exactly as submitted. JSON strings and numbers
// are both accepted, null leaves it empty. Any other JSON value is kept as
// its raw text and later fails coercion.
type LocationID string

func (l *LocationID) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*l = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = LocationID(s)
		return nil
	}
	*l = LocationID(raw)
	return nil
}

// Input is raw form input as a browser posts it
type Input struct {
	BirthDate         string     `form:"birthDate" json:"birthDate"`
	BirthTime         string     `form:"birthTime" json:"birthTime"`
	Timezone          string     `form:"timezone" json:"timezone"`
	BirthLocationID   LocationID `form:"birthLocationId" json:"birthLocationId"`
	CurrentLocationID LocationID `form:"currentLocationId" json:"currentLocationId"`
}

// Values are validated and coerced, ready for the submit handler
type Values struct {
	BirthDate         string `json:"birthDate"`
	BirthTime         string `json:"birthTime"`
	Timezone          string `json:"timezone"`
	BirthLocationID   int64  `json:"birthLocationId"`
	CurrentLocationID *int64 `json:"currentLocationId,omitempty"`
}

var timeLayouts = []string{"15:04", "15:04:05"}

// BirthDatetime interprets the birth date and time as wall clock time in the
// chosen timezone.
func (v Values) BirthDatetime() (time.Time, error) {
	loc, err := time.LoadLocation(v.Timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("unknown timezone %q: %w", v.Timezone, err)
	}
	for _, layout := range timeLayouts {
		t, err := time.ParseInLocation("2006-01-02 "+layout, v.BirthDate+" "+v.BirthTime, loc)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse birth date %q and time %q", v.BirthDate, v.BirthTime)
}

// CoerceLocationID turns a submitted location id into an integer.
// Empty input is missing; anything that is not a number is the wrong type;
// a number that is not a whole number is invalid. Whole numbers written as
// floats ("42.0", "1e2") are accepted. Positivity is checked by the schema.
func CoerceLocationID(raw LocationID) (int64, Kind) {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return 0, KindMissing
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, KindOK
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, KindInvalidType
	}
	if math.IsInf(f, 0) || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, KindInvalid
	}
	return int64(f), KindOK
}
