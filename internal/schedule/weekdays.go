package schedule

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Weekday numbers days ISO style: 0 is Monday, 6 is Sunday.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var (
	ErrEmptyWeekdays     = errors.New("repeat days must not be empty")
	ErrDuplicateWeekday  = errors.New("repeat days must not contain duplicates")
	ErrWeekdayOutOfRange = errors.New("repeat day must be between 0 and 6")
)

func WeekdayOf(value time.Time) Weekday {
	return Weekday((int(value.Weekday()) + 6) % 7)
}

func (day Weekday) Valid() bool {
	return day >= Monday && day <= Sunday
}

// WeekdaySet is a set of weekdays kept as a bitmask, so iteration is always ascending.
type WeekdaySet uint8

func NewWeekdaySet(days []int) (WeekdaySet, error) {
	if len(days) == 0 {
		return 0, ErrEmptyWeekdays
	}

	var set WeekdaySet
	for _, raw := range days {
		day := Weekday(raw)
		if !day.Valid() {
			return 0, fmt.Errorf("%w: %d", ErrWeekdayOutOfRange, raw)
		}
		if set.Contains(day) {
			return 0, fmt.Errorf("%w: %d", ErrDuplicateWeekday, raw)
		}
		set |= 1 << uint(day)
	}
	return set, nil
}

// ParseWeekdaySet decodes the stored digit form, e.g. "0246".
func ParseWeekdaySet(stored string) (WeekdaySet, error) {
	stored = strings.TrimSpace(stored)
	days := make([]int, 0, len(stored))
	for _, symbol := range stored {
		if symbol < '0' || symbol > '9' {
			return 0, fmt.Errorf("invalid weekday symbol %q in %q", symbol, stored)
		}
		days = append(days, int(symbol-'0'))
	}
	return NewWeekdaySet(days)
}

func (set WeekdaySet) Contains(day Weekday) bool {
	if !day.Valid() {
		return false
	}
	return set&(1<<uint(day)) != 0
}

func (set WeekdaySet) Empty() bool {
	return set&0x7f == 0
}

func (set WeekdaySet) Days() []Weekday {
	days := make([]Weekday, 0, 7)
	for day := Monday; day <= Sunday; day++ {
		if set.Contains(day) {
			days = append(days, day)
		}
	}
	return days
}

func (set WeekdaySet) Ints() []int {
	days := set.Days()
	values := make([]int, len(days))
	for index, day := range days {
		values[index] = int(day)
	}
	return values
}

func (set WeekdaySet) String() string {
	var builder strings.Builder
	for _, day := range set.Days() {
		builder.WriteByte(byte('0' + day))
	}
	return builder.String()
}

func (set WeekdaySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(set.Ints())
}

func (set WeekdaySet) Value() (driver.Value, error) {
	return set.String(), nil
}

func (set *WeekdaySet) Scan(src any) error {
	var stored string
	switch value := src.(type) {
	case nil:
		*set = 0
		return nil
	case string:
		stored = value
	case []byte:
		stored = string(value)
	default:
		return fmt.Errorf("scan weekday set: unsupported type %T", src)
	}

	if strings.TrimSpace(stored) == "" {
		*set = 0
		return nil
	}
	parsed, err := ParseWeekdaySet(stored)
	if err != nil {
		return fmt.Errorf("scan weekday set: %w", err)
	}
	*set = parsed
	return nil
}
