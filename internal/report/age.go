// Package report derives age statistics from the member set.
package report

import (
	"sort"
	"time"

	"memberbook/internal/model"
)

// Age returns whole years between birth and now, counting a year only
// once the birthday has passed.
func Age(birth, now time.Time) int {
	birth = birth.UTC()
	now = now.UTC()
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return years
}

// AgeCount is one row of the age report.
type AgeCount struct {
	Age   int `json:"age"`
	Count int `json:"count"`
}

// CountByAge buckets members by current age, ages ascending.
func CountByAge(members []model.Member, now time.Time) []AgeCount {
	counts := map[int]int{}
	for _, m := range members {
		counts[Age(m.BirthDate, now)]++
	}
	out := make([]AgeCount, 0, len(counts))
	for age, n := range counts {
		out = append(out, AgeCount{Age: age, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Age < out[j].Age })
	return out
}
