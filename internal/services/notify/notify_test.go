package notify

import (
	"testing"
	"time"

	"peloton/internal/core/domain"
	perr "peloton/internal/platform/errors"
)

func snapshot() *domain.Snapshot {
	riders := []domain.Rider{
		{ID: "pog", FirstName: "Tadej", LastName: "Pogačar"},
		{ID: "vin", FirstName: "Jonas", LastName: "Vingegaard"},
	}
	teams := []domain.Team{{ID: "uae", Name: "UAE Team Emirates", Status: domain.StatusWorldTeam}}

	tour := domain.Race{
		ID:   "tour",
		Name: "Tour de France",
		Stages: []domain.Stage{
			{ID: "tour-1", StartDateTime: time.Date(2024, time.June, 29, 11, 0, 0, 0, time.UTC), Type: domain.StageRegular},
			{
				ID:            "tour-2",
				StartDateTime: time.Date(2024, time.June, 30, 11, 0, 0, 0, time.UTC),
				Type:          domain.StageRegular,
				StageResults: domain.StageResults{Time: []domain.TimeResult{
					{Position: 1, ParticipantID: "vin", Elapsed: 14400 * time.Second},
					{Position: 2, ParticipantID: "pog", Elapsed: 14403 * time.Second},
				}},
				GeneralResults: domain.GeneralResults{Time: []domain.TimeResult{
					{Position: 1, ParticipantID: "pog", Elapsed: 28800 * time.Second},
					{Position: 2, ParticipantID: "vin", Elapsed: 28801 * time.Second},
				}},
			},
		},
	}
	classic := domain.Race{
		ID:   "roubaix",
		Name: "Paris-Roubaix",
		Stages: []domain.Stage{{
			ID:            "roubaix-1",
			StartDateTime: time.Date(2024, time.April, 7, 10, 0, 0, 0, time.UTC),
			Type:          domain.StageRegular,
			StageResults: domain.StageResults{Time: []domain.TimeResult{
				{Position: 1, ParticipantID: "pog", Elapsed: 20000 * time.Second},
			}},
			GeneralResults: domain.GeneralResults{Time: []domain.TimeResult{
				{Position: 1, ParticipantID: "pog", Elapsed: 20000 * time.Second},
			}},
		}},
	}
	return domain.NewSnapshot(teams, riders, []domain.Race{tour, classic})
}

func TestStageFinishedMultiStage(t *testing.T) {
	n, err := StageFinished(snapshot(), map[string]string{KeyRaceID: "tour", KeyStageID: "tour-2"})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if n.Title != "Tour de France – stage 2" {
		t.Fatalf("title = %q", n.Title)
	}
	if n.Body != "Jonas Vingegaard wins, Tadej Pogačar leads the general classification" {
		t.Fatalf("body = %q", n.Body)
	}
}

func TestStageFinishedSingleDay(t *testing.T) {
	n, err := StageFinished(snapshot(), map[string]string{KeyRaceID: "roubaix", KeyStageID: "roubaix-1"})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if n.Title != "Paris-Roubaix" {
		t.Fatalf("title = %q", n.Title)
	}
	if n.Body != "Tadej Pogačar wins" {
		t.Fatalf("body = %q", n.Body)
	}
}

func TestStageFinishedUnknownRace(t *testing.T) {
	_, err := StageFinished(snapshot(), map[string]string{KeyRaceID: "giro", KeyStageID: "giro-1"})
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("want NotFound, got %v", err)
	}
}

func TestStageFinishedUnknownStage(t *testing.T) {
	_, err := StageFinished(snapshot(), map[string]string{KeyRaceID: "tour", KeyStageID: "tour-99"})
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("want NotFound, got %v", err)
	}
}

func TestStageFinishedMissingKeys(t *testing.T) {
	_, err := StageFinished(snapshot(), map[string]string{KeyStageID: "tour-2"})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("want InvalidArgument, got %v", err)
	}
	_, err = StageFinished(snapshot(), map[string]string{KeyRaceID: "tour"})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("want InvalidArgument, got %v", err)
	}
}

func TestStageFinishedUnresolvableWinner(t *testing.T) {
	snap := snapshot()
	race, _ := snap.RaceByID("tour")
	race.Stages[1].StageResults.Time[0].ParticipantID = "ghost"
	_, err := StageFinished(snap, map[string]string{KeyRaceID: "tour", KeyStageID: "tour-2"})
	if !perr.IsCode(err, perr.ErrorCodeDataIntegrity) {
		t.Fatalf("want DataIntegrity, got %v", err)
	}
}
