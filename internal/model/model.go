package model

import (
	"fmt"
	"strings"
	"time"
)

type Prefix string

const (
	PrefixMr   Prefix = "Mr"
	PrefixMrs  Prefix = "Mrs"
	PrefixMiss Prefix = "Miss"
)

// Prefixes lists the honorifics in form/display order.
func Prefixes() []Prefix {
	return []Prefix{PrefixMr, PrefixMrs, PrefixMiss}
}

func ParsePrefix(s string) (Prefix, error) {
	switch strings.TrimSpace(s) {
	case string(PrefixMr):
		return PrefixMr, nil
	case string(PrefixMrs):
		return PrefixMrs, nil
	case string(PrefixMiss):
		return PrefixMiss, nil
	default:
		return "", fmt.Errorf("invalid prefix: %q (expected Mr|Mrs|Miss)", s)
	}
}

// Member is one registry record as exchanged with the remote store.
// Field names are snake_case on the wire across list, create and update.
type Member struct {
	ID        string    `json:"id"`
	Prefix    Prefix    `json:"prefix"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	BirthDate time.Time `json:"birth_date"`
	// ProfileImage is an inline data URI, or empty when no image is set.
	ProfileImage string    `json:"profile_image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Date is a date-only value (no time-of-day). Used while editing the
// birth date; the wire format stays a full timestamp.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{Year: y, Month: m, Day: d}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date: %q (expected YYYY-MM-DD)", s)
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// Time converts back to a timestamp at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}
