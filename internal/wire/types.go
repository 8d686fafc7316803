// Package wire defines the field-number-tagged binary messages the cycling
// data payload is encoded with, plus Unmarshal/Marshal for them.
//
// Field numbers are frozen; removing or renumbering one breaks every
// producer and consumer on the channel. New fields may be added freely:
// decoders skip unknown numbers.
package wire

// Timestamp is a (seconds, nanos) pair from the Unix epoch
type Timestamp struct {
	Seconds int64 // field 1
	Nanos   int32 // field 2
}

// CyclingData is the top-level payload message
type CyclingData struct {
	Teams  []Team  // field 1
	Riders []Rider // field 2
	Races  []Race  // field 3
}

// Team status wire values; 0 means unspecified
const (
	TeamStatusUnspecified int32 = 0
	TeamStatusWorldTeam   int32 = 1
	TeamStatusProTeam     int32 = 2
)

// Team is a squad entry; membership is the ordered RiderIDs list
type Team struct {
	ID           string  // field 1, required
	Name         string  // field 2, required
	Status       int32   // field 3, enum
	Abbreviation *string // field 4
	Country      string  // field 5
	Bike         string  // field 6
	Jersey       string  // field 7
	Year         int32   // field 8
	RiderIDs     []string
	Website      *string // field 10
}

// Rider is a single rider record; team membership is not stored here
type Rider struct {
	ID                 string     // field 1, required
	FirstName          string     // field 2, required
	LastName           string     // field 3, required
	Country            string     // field 4
	BirthDate          *Timestamp // field 5
	Photo              string     // field 6
	Website            *string    // field 7
	BirthPlace         *string    // field 8
	Weight             *int32     // field 9, kg
	Height             *int32     // field 10, cm
	UCIRankingPosition *int32     // field 11
}

// Race groups its stages chronologically with the entry list
type Race struct {
	ID                 string // field 1, required
	Name               string // field 2, required
	Country            string // field 3
	Stages             []Stage
	TeamParticipations []TeamParticipation
	Website            *string // field 6
}

// Stage profile wire values; 0 means unspecified
const (
	ProfileUnspecified           int32 = 0
	ProfileFlat                  int32 = 1
	ProfileHillsFlatFinish       int32 = 2
	ProfileHillsUphillFinish     int32 = 3
	ProfileMountainsFlatFinish   int32 = 4
	ProfileMountainsUphillFinish int32 = 5
)

// Stage type wire values; 0 means unspecified and decodes as a regular stage
const (
	StageTypeUnspecified         int32 = 0
	StageTypeRegular             int32 = 1
	StageTypeIndividualTimeTrial int32 = 2
	StageTypeTeamTimeTrial       int32 = 3
)

// Stage is one leg of a race with its own and cumulative standings
type Stage struct {
	ID             string     // field 1, required
	StartDateTime  *Timestamp // field 2
	Distance       float32    // field 3, km, 0 = unknown
	ProfileType    int32      // field 4, enum
	Departure      *string    // field 5
	Arrival        *string    // field 6
	StageType      int32      // field 7, enum
	StageResults   StageResults
	GeneralResults GeneralResults
}

// StageResults holds the five classification lists for a single stage.
// KOM and points are awarded per intermediate place at stage level.
type StageResults struct {
	Time   []ParticipantResultTime // field 1
	Youth  []ParticipantResultTime // field 2
	Teams  []ParticipantResultTime // field 3
	KOM    []PlaceResult           // field 4
	Points []PlaceResult           // field 5
}

// GeneralResults holds the five cumulative classification lists through a stage.
// KOM and points are flat ranked lists at general level.
type GeneralResults struct {
	Time   []ParticipantResultTime   // field 1
	Youth  []ParticipantResultTime   // field 2
	Teams  []ParticipantResultTime   // field 3
	KOM    []ParticipantResultPoints // field 4
	Points []ParticipantResultPoints // field 5
}

// ParticipantResultTime is a ranked participant with elapsed seconds
type ParticipantResultTime struct {
	Position      int32  // field 1, 1-based
	ParticipantID string // field 2, rider or team id depending on stage type
	Time          int64  // field 3, seconds
}

// ParticipantResultPoints is a ranked participant with awarded points
type ParticipantResultPoints struct {
	Position      int32  // field 1, 1-based
	ParticipantID string // field 2
	Points        int32  // field 3
}

// Place is a named intermediate point (sprint or climb) with its km marker
type Place struct {
	Name     string  // field 1
	Distance float32 // field 2, km from the start
}

// PlaceResult pairs a place with the awards given there
type PlaceResult struct {
	Place  Place                     // field 1
	Points []ParticipantResultPoints // field 2
}

// TeamParticipation binds a team and its entered riders to a race
type TeamParticipation struct {
	TeamID              string // field 1
	RiderParticipations []RiderParticipation
}

// RiderParticipation is one rider's entry; Number is the bib, absent when
// the rider did not start
type RiderParticipation struct {
	RiderID string // field 1
	Number  *int32 // field 2
}
