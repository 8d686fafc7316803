// Package domain holds the normalized cycling entities every consumer
// works with. Values are immutable snapshots; a refresh replaces the
// whole Snapshot, never mutates one in place.
package domain

import "time"

// TeamStatus is the division a team races in
type TeamStatus int

// Team divisions. There is no "unknown" variant on purpose: a team whose
// status cannot be resolved never makes it out of the mapper.
const (
	StatusWorldTeam TeamStatus = iota + 1
	StatusProTeam
)

// String implements fmt.Stringer
func (s TeamStatus) String() string {
	switch s {
	case StatusWorldTeam:
		return "WorldTeam"
	case StatusProTeam:
		return "ProTeam"
	default:
		return "Unknown"
	}
}

// StageProfile describes a stage's terrain; nil on a Stage means the
// profile was not published
type StageProfile int

// Stage profiles
const (
	ProfileFlat StageProfile = iota + 1
	ProfileHillsFlatFinish
	ProfileHillsUphillFinish
	ProfileMountainsFlatFinish
	ProfileMountainsUphillFinish
)

// String implements fmt.Stringer
func (p StageProfile) String() string {
	switch p {
	case ProfileFlat:
		return "Flat"
	case ProfileHillsFlatFinish:
		return "HillsFlatFinish"
	case ProfileHillsUphillFinish:
		return "HillsUphillFinish"
	case ProfileMountainsFlatFinish:
		return "MountainsFlatFinish"
	case ProfileMountainsUphillFinish:
		return "MountainsUphillFinish"
	default:
		return "Unknown"
	}
}

// StageType distinguishes mass-start stages from time trials; it decides
// whether time results resolve to riders or teams
type StageType int

// Stage types
const (
	StageRegular StageType = iota + 1
	StageIndividualTimeTrial
	StageTeamTimeTrial
)

// String implements fmt.Stringer
func (t StageType) String() string {
	switch t {
	case StageIndividualTimeTrial:
		return "IndividualTimeTrial"
	case StageTeamTimeTrial:
		return "TeamTimeTrial"
	default:
		return "Regular"
	}
}

// Team is a squad; membership lives here as the ordered RiderIDs list,
// riders exist independently
type Team struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Status       TeamStatus `json:"status"`
	Abbreviation string     `json:"abbreviation,omitempty"`
	Country      string     `json:"country"`
	Bike         string     `json:"bike"`
	Jersey       string     `json:"jersey"`
	Year         int        `json:"year"`
	RiderIDs     []string   `json:"riderIds"`
	Website      string     `json:"website,omitempty"`
}

// Rider carries no team back-reference; resolve membership via Team.RiderIDs
type Rider struct {
	ID                 string     `json:"id"`
	FirstName          string     `json:"firstName"`
	LastName           string     `json:"lastName"`
	Country            string     `json:"country"`
	Photo              string     `json:"photo"`
	Website            string     `json:"website,omitempty"`
	BirthDate          *time.Time `json:"birthDate,omitempty"`
	BirthPlace         string     `json:"birthPlace,omitempty"`
	Weight             *int       `json:"weight,omitempty"` // kg
	Height             *int       `json:"height,omitempty"` // cm
	UCIRankingPosition *int       `json:"uciRankingPosition,omitempty"`
}

// FullName is "First Last"
func (r Rider) FullName() string { return r.FirstName + " " + r.LastName }

// Race holds its stages in chronological order; index is stage number - 1.
// Stages is never empty once mapped.
type Race struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	Country            string              `json:"country"`
	Website            string              `json:"website,omitempty"`
	Stages             []Stage             `json:"stages"`
	TeamParticipations []TeamParticipation `json:"teamParticipations"`
}

// StartDate is the start of the first stage
func (r Race) StartDate() time.Time { return r.Stages[0].StartDateTime }

// EndDate is the start of the last stage
func (r Race) EndDate() time.Time { return r.Stages[len(r.Stages)-1].StartDateTime }

// IsSingleDay reports whether the race has exactly one stage
func (r Race) IsSingleDay() bool { return len(r.Stages) == 1 }

// Stage is one leg of a race with its own and cumulative standings
type Stage struct {
	ID             string        `json:"id"`
	StartDateTime  time.Time     `json:"startDateTime"`
	Distance       float64       `json:"distance"` // km, 0 = unknown
	Departure      string        `json:"departure,omitempty"`
	Arrival        string        `json:"arrival,omitempty"`
	Profile        *StageProfile `json:"profile,omitempty"`
	Type           StageType     `json:"type"`
	StageResults   StageResults  `json:"stageResults"`
	GeneralResults GeneralResults `json:"generalResults"`
}

// StageResults are one stage's own standings. KOM and points are awarded
// per intermediate place at stage level.
type StageResults struct {
	Time   []TimeResult  `json:"time"`
	Youth  []TimeResult  `json:"youth"`
	Teams  []TimeResult  `json:"teams"`
	KOM    []PlaceAwards `json:"kom"`
	Points []PlaceAwards `json:"points"`
}

// GeneralResults are the cumulative standings through a stage; KOM and
// points are flat ranked lists here
type GeneralResults struct {
	Time   []TimeResult   `json:"time"`
	Youth  []TimeResult   `json:"youth"`
	Teams  []TimeResult   `json:"teams"`
	KOM    []PointsResult `json:"kom"`
	Points []PointsResult `json:"points"`
}

// TimeResult is a ranked participant with elapsed time; cumulative in
// general classification. ParticipantID is a rider id, or a team id on
// team time trial stages.
type TimeResult struct {
	Position      int           `json:"position"` // 1-based
	ParticipantID string        `json:"participantId"`
	Elapsed       time.Duration `json:"elapsed"`
}

// PointsResult is a ranked participant with awarded points
type PointsResult struct {
	Position      int    `json:"position"`
	ParticipantID string `json:"participantId"`
	Points        int    `json:"points"`
}

// Place is a named intermediate point (sprint or climb) with its km marker
type Place struct {
	Name     string  `json:"name"`
	Distance float64 `json:"distance"`
}

// PlaceAwards pairs a place with the point awards given there
type PlaceAwards struct {
	Place  Place          `json:"place"`
	Awards []PointsResult `json:"awards"`
}

// TeamParticipation is a race entry for a team and its riders
type TeamParticipation struct {
	TeamID string               `json:"teamId"`
	Riders []RiderParticipation `json:"riders"`
}

// RiderParticipation is a confirmed rider entry. Entries without a bib
// number are dropped at mapping, so BibNumber is always set.
type RiderParticipation struct {
	RiderID   string `json:"riderId"`
	BibNumber int    `json:"bibNumber"`
}
