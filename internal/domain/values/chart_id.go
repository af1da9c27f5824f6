// Package values contains the closed alphabets and small value objects the
// arrangement engine is built from.
package values

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// chartNamespace scopes chart IDs so they never collide with other name-based UUIDs.
var chartNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:qimen:chart"))

// ChartID identifies a chart by its inputs. Two requests with the same
// pillars and solar term always produce the same ID.
type ChartID struct {
	value uuid.UUID
}

// NewChartID derives the ID from the four pillars and the solar term.
// The hour token is display only and does not take part.
func NewChartID(year, month, day, hour Pillar, term SolarTerm) ChartID {
	key := strings.Join([]string{
		year.String(), month.String(), day.String(), hour.String(), term.String(),
	}, "|")
	return ChartID{value: uuid.NewSHA1(chartNamespace, []byte(key))}
}

// ParseChartID parses a string into a ChartID
func ParseChartID(s string) (ChartID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ChartID{}, fmt.Errorf("invalid chart ID: %w", err)
	}
	return ChartID{value: id}, nil
}

// MustParseChartID parses a string or panics (for tests only)
func MustParseChartID(s string) ChartID {
	id, err := ParseChartID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the string representation
func (c ChartID) String() string {
	return c.value.String()
}

// UUID returns the underlying uuid.UUID
func (c ChartID) UUID() uuid.UUID {
	return c.value
}

// IsZero returns true if this is the zero value
func (c ChartID) IsZero() bool {
	return c.value == uuid.Nil
}

// Equals checks if two ChartIDs are equal
func (c ChartID) Equals(other ChartID) bool {
	return c.value == other.value
}

// MarshalJSON implements json.Marshaler
func (c ChartID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.value.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (c *ChartID) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 {
		return fmt.Errorf("invalid chart ID JSON")
	}
	s = s[1 : len(s)-1]

	id, err := ParseChartID(s)
	if err != nil {
		return err
	}
	*c = id
	return nil
}
