// Package notify turns a stage-results push payload into user-facing
// notification text, using the current snapshot to resolve names. It is
// a read-only consumer of the feed; delivery is someone else's job.
package notify

import (
	"fmt"

	"peloton/internal/core/domain"
	"peloton/internal/core/query"
	perr "peloton/internal/platform/errors"
)

// Payload keys delivered by the push transport
const (
	KeyRaceID  = "race-id"
	KeyStageID = "stage-id"
)

// Notification is ready-to-display text
type Notification struct {
	Title string
	Body  string
}

// StageFinished builds the "stage finished" notification for a push
// payload. Unknown race or stage ids are NotFound errors; unresolvable
// winners surface as DataIntegrity errors from the query layer.
func StageFinished(snap *domain.Snapshot, payload map[string]string) (Notification, error) {
	raceID, ok := payload[KeyRaceID]
	if !ok {
		return Notification{}, perr.InvalidArgf("payload missing %s", KeyRaceID)
	}
	stageID, ok := payload[KeyStageID]
	if !ok {
		return Notification{}, perr.InvalidArgf("payload missing %s", KeyStageID)
	}

	race, ok := snap.RaceByID(raceID)
	if !ok {
		return Notification{}, perr.NotFoundf("race %s not in snapshot", raceID)
	}
	stageIdx := -1
	for i := range race.Stages {
		if race.Stages[i].ID == stageID {
			stageIdx = i
			break
		}
	}
	if stageIdx < 0 {
		return Notification{}, perr.NotFoundf("stage %s not in race %s", stageID, raceID)
	}
	stage := race.Stages[stageIdx]

	winner, err := leaderName(stage, query.ModeStage, snap)
	if err != nil {
		return Notification{}, err
	}
	leader, err := leaderName(stage, query.ModeGeneral, snap)
	if err != nil {
		return Notification{}, err
	}

	title := race.Name
	if !race.IsSingleDay() {
		title = fmt.Sprintf("%s – stage %d", race.Name, stageIdx+1)
	}
	body := fmt.Sprintf("%s wins", winner)
	if leader != "" && !race.IsSingleDay() {
		body = fmt.Sprintf("%s wins, %s leads the general classification", winner, leader)
	}
	return Notification{Title: title, Body: body}, nil
}

// leaderName resolves the rank-1 name of a stage's time classification;
// empty when no results are in yet
func leaderName(stage domain.Stage, mode query.ResultMode, snap *domain.Snapshot) (string, error) {
	res, err := query.StageResults(stage, mode, query.ClassTime, snap)
	if err != nil {
		return "", err
	}
	switch v := res.(type) {
	case query.RiderTimes:
		for _, row := range v.Rows {
			if row.Position == 1 {
				return row.Rider.FullName(), nil
			}
		}
	case query.TeamTimes:
		for _, row := range v.Rows {
			if row.Position == 1 {
				return row.Team.Name, nil
			}
		}
	}
	return "", nil
}
