package domain

// Snapshot is the atomic (teams, riders, races) triple from one refresh
// cycle. The three collections always come from the same payload; a new
// cycle produces a new Snapshot that replaces this one as a unit.
type Snapshot struct {
	Teams  []Team
	Riders []Rider
	Races  []Race

	ridersByID map[string]*Rider
	teamsByID  map[string]*Team
	racesByID  map[string]*Race
}

// NewSnapshot builds a snapshot with its id indexes
func NewSnapshot(teams []Team, riders []Rider, races []Race) *Snapshot {
	s := &Snapshot{
		Teams:      teams,
		Riders:     riders,
		Races:      races,
		ridersByID: make(map[string]*Rider, len(riders)),
		teamsByID:  make(map[string]*Team, len(teams)),
		racesByID:  make(map[string]*Race, len(races)),
	}
	for i := range riders {
		s.ridersByID[riders[i].ID] = &riders[i]
	}
	for i := range teams {
		s.teamsByID[teams[i].ID] = &teams[i]
	}
	for i := range races {
		s.racesByID[races[i].ID] = &races[i]
	}
	return s
}

// RiderByID returns the rider with the given id, if present
func (s *Snapshot) RiderByID(id string) (*Rider, bool) {
	r, ok := s.ridersByID[id]
	return r, ok
}

// TeamByID returns the team with the given id, if present
func (s *Snapshot) TeamByID(id string) (*Team, bool) {
	t, ok := s.teamsByID[id]
	return t, ok
}

// RaceByID returns the race with the given id, if present
func (s *Snapshot) RaceByID(id string) (*Race, bool) {
	r, ok := s.racesByID[id]
	return r, ok
}
