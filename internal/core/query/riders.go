package query

import (
	"time"

	"peloton/internal/core/domain"
)

// RaceParticipation is a rider's confirmed entry in one race
type RaceParticipation struct {
	Race      domain.Race
	BibNumber int
}

// Participations is a rider's race history split by window; at most one
// race can be current
type Participations struct {
	Past    []RaceParticipation
	Current *RaceParticipation
	Future  []RaceParticipation
}

// RiderParticipations finds the rider's bib entry in every race and
// classifies it by window. The bib search flattens across all team
// participations rather than going through the rider's current roster:
// rosters get revised between refreshes, the entry list does not.
func RiderParticipations(riderID string, races []domain.Race, today time.Time) Participations {
	var out Participations
	for _, race := range races {
		bib, ok := bibFor(riderID, race)
		if !ok {
			continue
		}
		p := RaceParticipation{Race: race, BibNumber: bib}
		switch RaceWindow(race, today) {
		case WindowPast:
			out.Past = append(out.Past, p)
		case WindowActive:
			cp := p
			out.Current = &cp
		case WindowFuture:
			out.Future = append(out.Future, p)
		}
	}
	return out
}

func bibFor(riderID string, race domain.Race) (int, bool) {
	for _, tp := range race.TeamParticipations {
		for _, rp := range tp.Riders {
			if rp.RiderID == riderID {
				return rp.BibNumber, true
			}
		}
	}
	return 0, false
}

// RiderResult is one podium placing: the final general classification when
// StageNumber is 0, otherwise a single stage's own result
type RiderResult struct {
	Race        domain.Race
	StageNumber int // 0 = final general classification, else 1-based stage
	Position    int
}

const podiumSize = 3

// RiderResults collects the rider's top-3 placings across the given
// participations: the final GC of each race, plus every stage of a
// multi-stage race where the rider made the podium. Order follows the
// participations, GC placing before stage placings per race.
func RiderResults(riderID string, parts []RaceParticipation) []RiderResult {
	var out []RiderResult
	for _, p := range parts {
		race := p.Race
		final := race.Stages[len(race.Stages)-1]
		if pos, ok := podiumPosition(riderID, final.GeneralResults.Time); ok {
			out = append(out, RiderResult{Race: race, StageNumber: 0, Position: pos})
		}
		if race.IsSingleDay() {
			continue
		}
		for i, stage := range race.Stages {
			if pos, ok := podiumPosition(riderID, stage.StageResults.Time); ok {
				out = append(out, RiderResult{Race: race, StageNumber: i + 1, Position: pos})
			}
		}
	}
	return out
}

func podiumPosition(riderID string, results []domain.TimeResult) (int, bool) {
	for _, r := range results {
		if r.Position > podiumSize {
			continue
		}
		if r.ParticipantID == riderID {
			return r.Position, true
		}
	}
	return 0, false
}
