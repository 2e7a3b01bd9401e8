package app

import (
	"time"

	"github.com/lomoval/menu-events/internal/storage"
)

type Category string

const (
	CurrentWeek  Category = "current_week"
	FutureEvents Category = "future_events"
	PastEvents   Category = "past_events"
)

var Categories = []Category{CurrentWeek, FutureEvents, PastEvents}

// ParseCategory maps unknown names to PastEvents.
func ParseCategory(name string) Category {
	switch Category(name) {
	case CurrentWeek:
		return CurrentWeek
	case FutureEvents:
		return FutureEvents
	default:
		return PastEvents
	}
}

// Classify compares ISO (year, week) pairs of start and now in the location of now.
func Classify(start, now time.Time) Category {
	year, week := start.In(now.Location()).ISOWeek()
	nowYear, nowWeek := now.ISOWeek()
	switch {
	case year == nowYear && week == nowWeek:
		return CurrentWeek
	case year == nowYear && week > nowWeek, year > nowYear:
		return FutureEvents
	default:
		return PastEvents
	}
}

type Buckets map[Category][]storage.Event

func Partition(events []storage.Event, now time.Time) Buckets {
	buckets := make(Buckets, len(Categories))
	for _, e := range events {
		c := Classify(e.StartTime, now)
		buckets[c] = append(buckets[c], e)
	}
	return buckets
}
