package query

import (
	"time"

	"peloton/internal/core/domain"
	perr "peloton/internal/platform/errors"
)

// ResultMode selects a stage's own standings or the cumulative ones
type ResultMode int

// Result modes
const (
	ModeStage ResultMode = iota
	ModeGeneral
)

// Classification is one of the five result axes
type Classification int

// Classifications
const (
	ClassTime Classification = iota
	ClassPoints
	ClassKOM
	ClassYouth
	ClassTeams
)

// Results is the resolved, ranked view of one classification. Variants:
// RiderTimes, TeamTimes, RiderPoints, PlacePoints.
type Results interface{ isResults() }

// RiderTimeRow is a resolved rider with rank and elapsed time
type RiderTimeRow struct {
	Position int
	Rider    domain.Rider
	Elapsed  time.Duration
}

// RiderTimes is a ranked time list resolved to riders
type RiderTimes struct {
	Rows []RiderTimeRow
}

// TeamTimeRow is a resolved team with rank and elapsed time
type TeamTimeRow struct {
	Position int
	Team     domain.Team
	Elapsed  time.Duration
}

// TeamTimes is a ranked time list resolved to teams (teams
// classification, and the time classification of team time trials)
type TeamTimes struct {
	Rows []TeamTimeRow
}

// RiderPointsRow is a resolved rider with rank and points
type RiderPointsRow struct {
	Position int
	Rider    domain.Rider
	Points   int
}

// RiderPoints is a flat ranked points list resolved to riders
type RiderPoints struct {
	Rows []RiderPointsRow
}

// PlaceStanding is the awards given at one intermediate place
type PlaceStanding struct {
	Place domain.Place
	Rows  []RiderPointsRow
}

// PlacePoints groups stage-level KOM/points awards per intermediate place
type PlacePoints struct {
	Places []PlaceStanding
}

func (RiderTimes) isResults()  {}
func (TeamTimes) isResults()   {}
func (RiderPoints) isResults() {}
func (PlacePoints) isResults() {}

// StageResults resolves one classification of one stage against the
// snapshot's lookup tables.
//
// A participant id absent from the snapshot is a DataIntegrity error: it
// means the producer shipped inconsistent data, and returning a quietly
// shortened list would show a wrong ranking.
//
// Time results on a team time trial stage resolve to teams in stage
// mode; general classification stays individual even through a TTT.
func StageResults(
	stage domain.Stage,
	mode ResultMode,
	cls Classification,
	snap *domain.Snapshot,
) (Results, error) {
	switch cls {
	case ClassTime:
		if mode == ModeStage {
			if stage.Type == domain.StageTeamTimeTrial {
				return resolveTeamTimes(stage.StageResults.Time, snap)
			}
			return resolveRiderTimes(stage.StageResults.Time, snap)
		}
		return resolveRiderTimes(stage.GeneralResults.Time, snap)

	case ClassYouth:
		if mode == ModeStage {
			return resolveRiderTimes(stage.StageResults.Youth, snap)
		}
		return resolveRiderTimes(stage.GeneralResults.Youth, snap)

	case ClassTeams:
		if mode == ModeStage {
			return resolveTeamTimes(stage.StageResults.Teams, snap)
		}
		return resolveTeamTimes(stage.GeneralResults.Teams, snap)

	case ClassKOM:
		if mode == ModeStage {
			return resolvePlacePoints(stage.StageResults.KOM, snap)
		}
		return resolveRiderPoints(stage.GeneralResults.KOM, snap)

	case ClassPoints:
		if mode == ModeStage {
			return resolvePlacePoints(stage.StageResults.Points, snap)
		}
		return resolveRiderPoints(stage.GeneralResults.Points, snap)

	default:
		return nil, perr.InvalidArgf("unknown classification %d", cls)
	}
}

func resolveRiderTimes(in []domain.TimeResult, snap *domain.Snapshot) (Results, error) {
	rows := make([]RiderTimeRow, 0, len(in))
	for _, r := range in {
		rider, ok := snap.RiderByID(r.ParticipantID)
		if !ok {
			return nil, perr.DataIntegrityf("time result references unknown rider %s", r.ParticipantID)
		}
		rows = append(rows, RiderTimeRow{Position: r.Position, Rider: *rider, Elapsed: r.Elapsed})
	}
	return RiderTimes{Rows: rows}, nil
}

func resolveTeamTimes(in []domain.TimeResult, snap *domain.Snapshot) (Results, error) {
	rows := make([]TeamTimeRow, 0, len(in))
	for _, r := range in {
		team, ok := snap.TeamByID(r.ParticipantID)
		if !ok {
			return nil, perr.DataIntegrityf("time result references unknown team %s", r.ParticipantID)
		}
		rows = append(rows, TeamTimeRow{Position: r.Position, Team: *team, Elapsed: r.Elapsed})
	}
	return TeamTimes{Rows: rows}, nil
}

func resolveRiderPoints(in []domain.PointsResult, snap *domain.Snapshot) (Results, error) {
	rows, err := riderPointsRows(in, snap)
	if err != nil {
		return nil, err
	}
	return RiderPoints{Rows: rows}, nil
}

func resolvePlacePoints(in []domain.PlaceAwards, snap *domain.Snapshot) (Results, error) {
	places := make([]PlaceStanding, 0, len(in))
	for _, pa := range in {
		rows, err := riderPointsRows(pa.Awards, snap)
		if err != nil {
			return nil, err
		}
		places = append(places, PlaceStanding{Place: pa.Place, Rows: rows})
	}
	return PlacePoints{Places: places}, nil
}

func riderPointsRows(in []domain.PointsResult, snap *domain.Snapshot) ([]RiderPointsRow, error) {
	rows := make([]RiderPointsRow, 0, len(in))
	for _, r := range in {
		rider, ok := snap.RiderByID(r.ParticipantID)
		if !ok {
			return nil, perr.DataIntegrityf("points result references unknown rider %s", r.ParticipantID)
		}
		rows = append(rows, RiderPointsRow{Position: r.Position, Rider: *rider, Points: r.Points})
	}
	return rows, nil
}
