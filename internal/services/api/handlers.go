package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	coredom "peloton/internal/core/domain"
	"peloton/internal/core/query"
	perr "peloton/internal/platform/errors"
)

func (s *Server) snapshot(w http.ResponseWriter) (*coredom.Snapshot, bool) {
	snap, ok := s.feed.Latest()
	if !ok {
		respondError(w, perr.Newf(perr.ErrorCodeUnavailable, "no snapshot loaded yet"))
		return nil, false
	}
	return snap, true
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	_, hasSnap := s.feed.Latest()
	respondOK(w, map[string]any{
		"status":       s.feed.Status().String(),
		"has_snapshot": hasSnap,
	})
}

func (s *Server) listTeams(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	respondOK(w, snap.Teams)
}

func (s *Server) listRiders(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	respondOK(w, query.SearchRiders(snap.Riders, r.URL.Query().Get("q")))
}

func (s *Server) listRaces(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	type raceRow struct {
		coredom.Race
		Window string `json:"window"`
	}
	rows := make([]raceRow, 0, len(snap.Races))
	for _, race := range snap.Races {
		rows = append(rows, raceRow{Race: race, Window: query.RaceWindow(race, s.now()).String()})
	}
	respondOK(w, map[string]any{
		"season": query.Season(snap.Races, s.now()).String(),
		"races":  rows,
	})
}

func (s *Server) getRace(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	race, ok := snap.RaceByID(chi.URLParam(r, "raceID"))
	if !ok {
		respondError(w, perr.NotFoundf("race not found"))
		return
	}
	out := map[string]any{
		"race":   race,
		"window": query.RaceWindow(*race, s.now()).String(),
	}
	if query.RaceWindow(*race, s.now()) == query.WindowActive {
		switch v := query.ClassifyToday(*race, s.now()).(type) {
		case query.RestDay:
			out["today"] = map[string]any{"kind": "rest-day"}
		case query.SingleDayRace:
			out["today"] = map[string]any{"kind": "single-day", "stage": v.Stage}
		case query.MultiStageRace:
			out["today"] = map[string]any{"kind": "stage", "stage": v.Stage, "stageNumber": v.Index + 1}
		}
	}
	respondOK(w, out)
}

func (s *Server) riderParticipations(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	riderID := chi.URLParam(r, "riderID")
	if _, ok := snap.RiderByID(riderID); !ok {
		respondError(w, perr.NotFoundf("rider not found"))
		return
	}
	parts := query.RiderParticipations(riderID, snap.Races, s.now())
	respondOK(w, map[string]any{
		"past":    participationRows(parts.Past),
		"current": currentRow(parts.Current),
		"future":  participationRows(parts.Future),
	})
}

func (s *Server) riderResults(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	riderID := chi.URLParam(r, "riderID")
	if _, ok := snap.RiderByID(riderID); !ok {
		respondError(w, perr.NotFoundf("rider not found"))
		return
	}
	parts := query.RiderParticipations(riderID, snap.Races, s.now())
	history := parts.Past
	if parts.Current != nil {
		history = append(history, *parts.Current)
	}
	results := query.RiderResults(riderID, history)
	type resultRow struct {
		RaceID      string `json:"raceId"`
		RaceName    string `json:"raceName"`
		StageNumber int    `json:"stageNumber"` // 0 = final general classification
		Position    int    `json:"position"`
	}
	rows := make([]resultRow, 0, len(results))
	for _, res := range results {
		rows = append(rows, resultRow{
			RaceID:      res.Race.ID,
			RaceName:    res.Race.Name,
			StageNumber: res.StageNumber,
			Position:    res.Position,
		})
	}
	respondOK(w, rows)
}

func (s *Server) stageResults(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	race, ok := snap.RaceByID(chi.URLParam(r, "raceID"))
	if !ok {
		respondError(w, perr.NotFoundf("race not found"))
		return
	}
	num, err := strconv.Atoi(chi.URLParam(r, "stage"))
	if err != nil || num < 1 || num > len(race.Stages) {
		respondError(w, perr.InvalidArgf("stage number out of range"))
		return
	}
	mode, err := parseMode(r.URL.Query().Get("mode"))
	if err != nil {
		respondError(w, err)
		return
	}
	cls, err := parseClassification(r.URL.Query().Get("classification"))
	if err != nil {
		respondError(w, err)
		return
	}

	res, err := query.StageResults(race.Stages[num-1], mode, cls, snap)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, resultsPayload(res))
}

func parseMode(s string) (query.ResultMode, error) {
	switch strings.ToLower(s) {
	case "", "stage":
		return query.ModeStage, nil
	case "general":
		return query.ModeGeneral, nil
	default:
		return 0, perr.InvalidArgf("mode must be stage or general")
	}
}

func parseClassification(s string) (query.Classification, error) {
	switch strings.ToLower(s) {
	case "", "time":
		return query.ClassTime, nil
	case "points":
		return query.ClassPoints, nil
	case "kom":
		return query.ClassKOM, nil
	case "youth":
		return query.ClassYouth, nil
	case "teams":
		return query.ClassTeams, nil
	default:
		return 0, perr.InvalidArgf("classification must be one of time, points, kom, youth, teams")
	}
}

type riderTimeRow struct {
	Position       int    `json:"position"`
	RiderID        string `json:"riderId"`
	Name           string `json:"name"`
	ElapsedSeconds int64  `json:"elapsedSeconds"`
}

type teamTimeRow struct {
	Position       int    `json:"position"`
	TeamID         string `json:"teamId"`
	Name           string `json:"name"`
	ElapsedSeconds int64  `json:"elapsedSeconds"`
}

type riderPointsRow struct {
	Position int    `json:"position"`
	RiderID  string `json:"riderId"`
	Name     string `json:"name"`
	Points   int    `json:"points"`
}

func resultsPayload(res query.Results) any {
	switch v := res.(type) {
	case query.RiderTimes:
		rows := make([]riderTimeRow, 0, len(v.Rows))
		for _, row := range v.Rows {
			rows = append(rows, riderTimeRow{
				Position:       row.Position,
				RiderID:        row.Rider.ID,
				Name:           row.Rider.FullName(),
				ElapsedSeconds: int64(row.Elapsed.Seconds()),
			})
		}
		return map[string]any{"type": "rider-times", "rows": rows}
	case query.TeamTimes:
		rows := make([]teamTimeRow, 0, len(v.Rows))
		for _, row := range v.Rows {
			rows = append(rows, teamTimeRow{
				Position:       row.Position,
				TeamID:         row.Team.ID,
				Name:           row.Team.Name,
				ElapsedSeconds: int64(row.Elapsed.Seconds()),
			})
		}
		return map[string]any{"type": "team-times", "rows": rows}
	case query.RiderPoints:
		return map[string]any{"type": "rider-points", "rows": pointsRows(v.Rows)}
	case query.PlacePoints:
		type placeBlock struct {
			Place coredom.Place    `json:"place"`
			Rows  []riderPointsRow `json:"rows"`
		}
		places := make([]placeBlock, 0, len(v.Places))
		for _, p := range v.Places {
			places = append(places, placeBlock{Place: p.Place, Rows: pointsRows(p.Rows)})
		}
		return map[string]any{"type": "place-points", "places": places}
	default:
		return nil
	}
}

func pointsRows(in []query.RiderPointsRow) []riderPointsRow {
	rows := make([]riderPointsRow, 0, len(in))
	for _, row := range in {
		rows = append(rows, riderPointsRow{
			Position: row.Position,
			RiderID:  row.Rider.ID,
			Name:     row.Rider.FullName(),
			Points:   row.Points,
		})
	}
	return rows
}

type participationRow struct {
	RaceID    string `json:"raceId"`
	RaceName  string `json:"raceName"`
	BibNumber int    `json:"bibNumber"`
}

func participationRows(in []query.RaceParticipation) []participationRow {
	rows := make([]participationRow, 0, len(in))
	for _, p := range in {
		rows = append(rows, participationRow{RaceID: p.Race.ID, RaceName: p.Race.Name, BibNumber: p.BibNumber})
	}
	return rows
}

func currentRow(p *query.RaceParticipation) *participationRow {
	if p == nil {
		return nil
	}
	return &participationRow{RaceID: p.Race.ID, RaceName: p.Race.Name, BibNumber: p.BibNumber}
}
