package query

import (
	"testing"
	"time"

	"peloton/internal/core/domain"
)

func entry(race domain.Race, riderID string, bib int) domain.Race {
	race.TeamParticipations = []domain.TeamParticipation{{
		TeamID: "alpecin",
		Riders: []domain.RiderParticipation{{RiderID: riderID, BibNumber: bib}},
	}}
	return race
}

func TestRiderParticipationsWindows(t *testing.T) {
	past := entry(classic(), "r1", 14)      // June 20
	current := entry(grandTour(), "r1", 21) // July 1-4
	future := entry(domain.Race{
		ID:     "worlds-2024",
		Name:   "Worlds",
		Stages: []domain.Stage{{ID: "worlds-2024-1", StartDateTime: stageStart(2024, time.September, 29)}},
	}, "r1", 1)
	notEntered := classic()
	notEntered.ID = "other-classic"

	races := []domain.Race{past, current, future, notEntered}
	parts := RiderParticipations("r1", races, day(2024, time.July, 2))

	if len(parts.Past) != 1 || parts.Past[0].Race.ID != "classic-2024" || parts.Past[0].BibNumber != 14 {
		t.Fatalf("past = %+v", parts.Past)
	}
	if parts.Current == nil || parts.Current.Race.ID != "tour-2024" || parts.Current.BibNumber != 21 {
		t.Fatalf("current = %+v", parts.Current)
	}
	if len(parts.Future) != 1 || parts.Future[0].Race.ID != "worlds-2024" {
		t.Fatalf("future = %+v", parts.Future)
	}
}

func TestRiderParticipationsNoEntries(t *testing.T) {
	parts := RiderParticipations("nobody", []domain.Race{entry(classic(), "r1", 14)}, day(2024, time.July, 2))
	if len(parts.Past) != 0 || parts.Current != nil || len(parts.Future) != 0 {
		t.Fatalf("expected empty history, got %+v", parts)
	}
}

func TestRiderResultsMultiStage(t *testing.T) {
	race := grandTour()
	// stage 1 win, off the podium on stage 2, final GC second place
	race.Stages[0].StageResults.Time = []domain.TimeResult{
		{Position: 1, ParticipantID: "r1", Elapsed: 3600 * time.Second},
		{Position: 2, ParticipantID: "r2", Elapsed: 3605 * time.Second},
	}
	race.Stages[1].StageResults.Time = []domain.TimeResult{
		{Position: 1, ParticipantID: "r2", Elapsed: 3600 * time.Second},
		{Position: 4, ParticipantID: "r1", Elapsed: 3640 * time.Second},
	}
	race.Stages[2].GeneralResults.Time = []domain.TimeResult{
		{Position: 1, ParticipantID: "r2", Elapsed: 10800 * time.Second},
		{Position: 2, ParticipantID: "r1", Elapsed: 10830 * time.Second},
	}

	results := RiderResults("r1", []RaceParticipation{{Race: race, BibNumber: 21}})
	if len(results) != 2 {
		t.Fatalf("results = %+v", results)
	}
	// GC placing first, then stage placings
	if results[0].StageNumber != 0 || results[0].Position != 2 {
		t.Fatalf("gc result = %+v", results[0])
	}
	if results[1].StageNumber != 1 || results[1].Position != 1 {
		t.Fatalf("stage result = %+v", results[1])
	}
}

func TestRiderResultsSingleDaySkipsStagePlacings(t *testing.T) {
	race := classic()
	race.Stages[0].StageResults.Time = []domain.TimeResult{
		{Position: 1, ParticipantID: "r1", Elapsed: 18000 * time.Second},
	}
	race.Stages[0].GeneralResults.Time = []domain.TimeResult{
		{Position: 1, ParticipantID: "r1", Elapsed: 18000 * time.Second},
	}

	results := RiderResults("r1", []RaceParticipation{{Race: race, BibNumber: 14}})
	if len(results) != 1 {
		t.Fatalf("single-day race should yield one result, got %+v", results)
	}
	if results[0].StageNumber != 0 || results[0].Position != 1 {
		t.Fatalf("result = %+v", results[0])
	}
}

func TestRiderResultsOffPodium(t *testing.T) {
	race := classic()
	race.Stages[0].GeneralResults.Time = []domain.TimeResult{
		{Position: 4, ParticipantID: "r1", Elapsed: 18100 * time.Second},
	}
	if results := RiderResults("r1", []RaceParticipation{{Race: race, BibNumber: 14}}); len(results) != 0 {
		t.Fatalf("position 4 should not count, got %+v", results)
	}
}
