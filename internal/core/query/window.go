// Package query is the pure read side over a snapshot: temporal race
// classification, result resolution, rider history, and search. Nothing
// here does I/O; "today" is always injected so every function is
// deterministic under test.
package query

import (
	"time"

	"peloton/internal/core/domain"
	"peloton/internal/platform/timeutil"
)

// Window places a race relative to a given day
type Window int

// Race windows
const (
	WindowFuture Window = iota
	WindowActive
	WindowPast
)

// String implements fmt.Stringer
func (w Window) String() string {
	switch w {
	case WindowActive:
		return "Active"
	case WindowPast:
		return "Past"
	default:
		return "Future"
	}
}

// RaceWindow compares today against the race's first and last stage dates
func RaceWindow(race domain.Race, today time.Time) Window {
	day := timeutil.Date(today)
	if day.Before(timeutil.Date(race.StartDate().In(today.Location()))) {
		return WindowFuture
	}
	if day.After(timeutil.Date(race.EndDate().In(today.Location()))) {
		return WindowPast
	}
	return WindowActive
}

// StageOn returns the first stage scheduled on today's date and its
// zero-based index; ok is false on a rest day or out-of-window day
func StageOn(race domain.Race, today time.Time) (domain.Stage, int, bool) {
	for i, s := range race.Stages {
		if timeutil.SameDay(today, s.StartDateTime) {
			return s, i, true
		}
	}
	return domain.Stage{}, 0, false
}

// SeasonState summarizes where today falls relative to the whole season
type SeasonState int

// Season states. SeasonNoData is returned for an empty race list rather
// than assuming a non-empty season.
const (
	SeasonNoData SeasonState = iota
	SeasonNotStarted
	SeasonInProgress
	SeasonEnded
)

// String implements fmt.Stringer
func (s SeasonState) String() string {
	switch s {
	case SeasonNotStarted:
		return "NotStarted"
	case SeasonInProgress:
		return "InProgress"
	case SeasonEnded:
		return "Ended"
	default:
		return "NoData"
	}
}

// Season compares today against the earliest start and latest end across
// all races
func Season(races []domain.Race, today time.Time) SeasonState {
	if len(races) == 0 {
		return SeasonNoData
	}
	first := races[0].StartDate()
	last := races[0].EndDate()
	for _, r := range races[1:] {
		if r.StartDate().Before(first) {
			first = r.StartDate()
		}
		if r.EndDate().After(last) {
			last = r.EndDate()
		}
	}
	day := timeutil.Date(today)
	if day.Before(timeutil.Date(first.In(today.Location()))) {
		return SeasonNotStarted
	}
	if day.After(timeutil.Date(last.In(today.Location()))) {
		return SeasonEnded
	}
	return SeasonInProgress
}

// Today is what an active race resolves to on a given day
type Today interface{ isToday() }

// RestDay is a multi-stage race with no stage scheduled today
type RestDay struct{}

// SingleDayRace always resolves to its one stage
type SingleDayRace struct {
	Stage domain.Stage
}

// MultiStageRace resolves to the stage scheduled today
type MultiStageRace struct {
	Stage domain.Stage
	Index int // zero-based; stage number is Index+1
}

func (RestDay) isToday()        {}
func (SingleDayRace) isToday()  {}
func (MultiStageRace) isToday() {}

// ClassifyToday resolves what an active race is doing today
func ClassifyToday(race domain.Race, today time.Time) Today {
	if race.IsSingleDay() {
		return SingleDayRace{Stage: race.Stages[0]}
	}
	if s, i, ok := StageOn(race, today); ok {
		return MultiStageRace{Stage: s, Index: i}
	}
	return RestDay{}
}
