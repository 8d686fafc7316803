// Package mapper converts wire DTOs into domain entities. This is the
// only place defaults and nullability rules are applied; downstream code
// sees normalized values.
//
// Strictness is deliberately uneven: an unresolvable team status aborts
// the whole snapshot, while an unrecognized stage profile or stage type
// degrades to nil / regular. Team status drives grouping everywhere in
// the app and must be known; terrain and trial type are cosmetic enough
// to tolerate an older vocabulary.
package mapper

import (
	"time"

	"peloton/internal/core/domain"
	perr "peloton/internal/platform/errors"
	str "peloton/internal/platform/strings"
	"peloton/internal/wire"
)

// Snapshot maps a full payload atomically: either every entity maps, or
// the error aborts the whole triple and the previous snapshot stays live
func Snapshot(d *wire.CyclingData) (*domain.Snapshot, error) {
	teams, err := Teams(d.Teams)
	if err != nil {
		return nil, err
	}
	riders := Riders(d.Riders)
	races, err := Races(d.Races)
	if err != nil {
		return nil, err
	}
	return domain.NewSnapshot(teams, riders, races), nil
}

// Teams maps team DTOs. An unspecified or unrecognized status, or a
// duplicated rider id within a roster, is a Mapping error.
func Teams(in []wire.Team) ([]domain.Team, error) {
	out := make([]domain.Team, 0, len(in))
	for _, t := range in {
		status, err := teamStatus(t)
		if err != nil {
			return nil, err
		}
		seen := make(map[string]struct{}, len(t.RiderIDs))
		for _, id := range t.RiderIDs {
			if _, dup := seen[id]; dup {
				return nil, perr.Mappingf("team %s: duplicate rider id %s", t.ID, id)
			}
			seen[id] = struct{}{}
		}
		out = append(out, domain.Team{
			ID:           t.ID,
			Name:         t.Name,
			Status:       status,
			Abbreviation: str.Deref(t.Abbreviation),
			Country:      t.Country,
			Bike:         t.Bike,
			Jersey:       t.Jersey,
			Year:         int(t.Year),
			RiderIDs:     append([]string(nil), t.RiderIDs...),
			Website:      str.Deref(t.Website),
		})
	}
	return out, nil
}

func teamStatus(t wire.Team) (domain.TeamStatus, error) {
	switch t.Status {
	case wire.TeamStatusWorldTeam:
		return domain.StatusWorldTeam, nil
	case wire.TeamStatusProTeam:
		return domain.StatusProTeam, nil
	default:
		return 0, perr.Mappingf("team %s: unrecognized status %d", t.ID, t.Status)
	}
}

// Riders maps rider DTOs; everything optional defaults here
func Riders(in []wire.Rider) []domain.Rider {
	out := make([]domain.Rider, 0, len(in))
	for _, r := range in {
		out = append(out, domain.Rider{
			ID:                 r.ID,
			FirstName:          r.FirstName,
			LastName:           r.LastName,
			Country:            r.Country,
			Photo:              r.Photo,
			Website:            str.Deref(r.Website),
			BirthDate:          optInstant(r.BirthDate),
			BirthPlace:         str.Deref(r.BirthPlace),
			Weight:             optInt(r.Weight),
			Height:             optInt(r.Height),
			UCIRankingPosition: optInt(r.UCIRankingPosition),
		})
	}
	return out
}

// Races maps race DTOs. A race without stages is a Mapping error: every
// consumer indexes stages unguarded, so the invariant is enforced here.
func Races(in []wire.Race) ([]domain.Race, error) {
	out := make([]domain.Race, 0, len(in))
	for _, r := range in {
		if len(r.Stages) == 0 {
			return nil, perr.Mappingf("race %s: no stages", r.ID)
		}
		stages := make([]domain.Stage, 0, len(r.Stages))
		for _, s := range r.Stages {
			stages = append(stages, mapStage(s))
		}
		out = append(out, domain.Race{
			ID:                 r.ID,
			Name:               r.Name,
			Country:            r.Country,
			Website:            str.Deref(r.Website),
			Stages:             stages,
			TeamParticipations: mapParticipations(r.TeamParticipations),
		})
	}
	return out, nil
}

func mapStage(s wire.Stage) domain.Stage {
	return domain.Stage{
		ID:             s.ID,
		StartDateTime:  instant(s.StartDateTime),
		Distance:       float64(s.Distance),
		Departure:      str.Deref(s.Departure),
		Arrival:        str.Deref(s.Arrival),
		Profile:        stageProfile(s.ProfileType),
		Type:           stageType(s.StageType),
		StageResults:   mapStageResults(s.StageResults),
		GeneralResults: mapGeneralResults(s.GeneralResults),
	}
}

// stageProfile maps lenient: unspecified or future values become nil
func stageProfile(v int32) *domain.StageProfile {
	if v < wire.ProfileFlat || v > wire.ProfileMountainsUphillFinish {
		return nil
	}
	p := domain.StageProfile(v)
	return &p
}

// stageType maps lenient: unspecified or future values become Regular
func stageType(v int32) domain.StageType {
	switch v {
	case wire.StageTypeIndividualTimeTrial:
		return domain.StageIndividualTimeTrial
	case wire.StageTypeTeamTimeTrial:
		return domain.StageTeamTimeTrial
	default:
		return domain.StageRegular
	}
}

func mapStageResults(sr wire.StageResults) domain.StageResults {
	return domain.StageResults{
		Time:   mapTimes(sr.Time),
		Youth:  mapTimes(sr.Youth),
		Teams:  mapTimes(sr.Teams),
		KOM:    mapPlaces(sr.KOM),
		Points: mapPlaces(sr.Points),
	}
}

func mapGeneralResults(gr wire.GeneralResults) domain.GeneralResults {
	return domain.GeneralResults{
		Time:   mapTimes(gr.Time),
		Youth:  mapTimes(gr.Youth),
		Teams:  mapTimes(gr.Teams),
		KOM:    mapPoints(gr.KOM),
		Points: mapPoints(gr.Points),
	}
}

func mapTimes(in []wire.ParticipantResultTime) []domain.TimeResult {
	out := make([]domain.TimeResult, 0, len(in))
	for _, r := range in {
		out = append(out, domain.TimeResult{
			Position:      int(r.Position),
			ParticipantID: r.ParticipantID,
			Elapsed:       time.Duration(r.Time) * time.Second,
		})
	}
	return out
}

func mapPoints(in []wire.ParticipantResultPoints) []domain.PointsResult {
	out := make([]domain.PointsResult, 0, len(in))
	for _, r := range in {
		out = append(out, domain.PointsResult{
			Position:      int(r.Position),
			ParticipantID: r.ParticipantID,
			Points:        int(r.Points),
		})
	}
	return out
}

func mapPlaces(in []wire.PlaceResult) []domain.PlaceAwards {
	out := make([]domain.PlaceAwards, 0, len(in))
	for _, pr := range in {
		out = append(out, domain.PlaceAwards{
			Place:  domain.Place{Name: pr.Place.Name, Distance: float64(pr.Place.Distance)},
			Awards: mapPoints(pr.Points),
		})
	}
	return out
}

// mapParticipations drops rider entries without a bib number: no bib
// means the rider did not start, it is a filter, not an error
func mapParticipations(in []wire.TeamParticipation) []domain.TeamParticipation {
	out := make([]domain.TeamParticipation, 0, len(in))
	for _, tp := range in {
		riders := make([]domain.RiderParticipation, 0, len(tp.RiderParticipations))
		for _, rp := range tp.RiderParticipations {
			if rp.Number == nil {
				continue
			}
			riders = append(riders, domain.RiderParticipation{
				RiderID:   rp.RiderID,
				BibNumber: int(*rp.Number),
			})
		}
		out = append(out, domain.TeamParticipation{TeamID: tp.TeamID, Riders: riders})
	}
	return out
}

// instant converts a wire timestamp; absent means epoch 0, read as
// "unknown start", not some other epoch
func instant(ts *wire.Timestamp) time.Time {
	if ts == nil {
		return time.Unix(0, 0).UTC()
	}
	return time.Unix(ts.Seconds, int64(ts.Nanos)).UTC()
}

func optInstant(ts *wire.Timestamp) *time.Time {
	if ts == nil {
		return nil
	}
	t := time.Unix(ts.Seconds, int64(ts.Nanos)).UTC()
	return &t
}

func optInt(v *int32) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}
