package wire

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Marshal encodes a CyclingData payload. The producer-side inverse of
// Unmarshal: required fields are always written, optionals only when set,
// zero-valued scalars are omitted.
func Marshal(d *CyclingData) []byte {
	var b []byte
	for i := range d.Teams {
		b = appendMessage(b, 1, marshalTeam(&d.Teams[i]))
	}
	for i := range d.Riders {
		b = appendMessage(b, 2, marshalRider(&d.Riders[i]))
	}
	for i := range d.Races {
		b = appendMessage(b, 3, marshalRace(&d.Races[i]))
	}
	return b
}

func marshalTeam(t *Team) []byte {
	var b []byte
	b = appendReqString(b, 1, t.ID)
	b = appendReqString(b, 2, t.Name)
	b = appendVarint(b, 3, uint64(t.Status))
	if t.Abbreviation != nil {
		b = appendString(b, 4, *t.Abbreviation)
	}
	b = appendString(b, 5, t.Country)
	b = appendString(b, 6, t.Bike)
	b = appendString(b, 7, t.Jersey)
	b = appendVarint(b, 8, uint64(t.Year))
	for _, id := range t.RiderIDs {
		b = protowire.AppendTag(b, 9, protowire.BytesType)
		b = protowire.AppendString(b, id)
	}
	if t.Website != nil {
		b = appendString(b, 10, *t.Website)
	}
	return b
}

func marshalRider(r *Rider) []byte {
	var b []byte
	b = appendReqString(b, 1, r.ID)
	b = appendReqString(b, 2, r.FirstName)
	b = appendReqString(b, 3, r.LastName)
	b = appendString(b, 4, r.Country)
	if r.BirthDate != nil {
		b = appendMessage(b, 5, marshalTimestamp(*r.BirthDate))
	}
	b = appendString(b, 6, r.Photo)
	if r.Website != nil {
		b = appendString(b, 7, *r.Website)
	}
	if r.BirthPlace != nil {
		b = appendString(b, 8, *r.BirthPlace)
	}
	if r.Weight != nil {
		b = appendVarint(b, 9, uint64(*r.Weight))
	}
	if r.Height != nil {
		b = appendVarint(b, 10, uint64(*r.Height))
	}
	if r.UCIRankingPosition != nil {
		b = appendVarint(b, 11, uint64(*r.UCIRankingPosition))
	}
	return b
}

func marshalRace(r *Race) []byte {
	var b []byte
	b = appendReqString(b, 1, r.ID)
	b = appendReqString(b, 2, r.Name)
	b = appendString(b, 3, r.Country)
	for i := range r.Stages {
		b = appendMessage(b, 4, marshalStage(&r.Stages[i]))
	}
	for i := range r.TeamParticipations {
		b = appendMessage(b, 5, marshalTeamParticipation(&r.TeamParticipations[i]))
	}
	if r.Website != nil {
		b = appendString(b, 6, *r.Website)
	}
	return b
}

func marshalStage(s *Stage) []byte {
	var b []byte
	b = appendReqString(b, 1, s.ID)
	if s.StartDateTime != nil {
		b = appendMessage(b, 2, marshalTimestamp(*s.StartDateTime))
	}
	if s.Distance != 0 {
		b = protowire.AppendTag(b, 3, protowire.Fixed32Type)
		b = protowire.AppendFixed32(b, math.Float32bits(s.Distance))
	}
	b = appendVarint(b, 4, uint64(s.ProfileType))
	if s.Departure != nil {
		b = appendString(b, 5, *s.Departure)
	}
	if s.Arrival != nil {
		b = appendString(b, 6, *s.Arrival)
	}
	b = appendVarint(b, 7, uint64(s.StageType))
	if sr := marshalStageResults(&s.StageResults); len(sr) > 0 {
		b = appendMessage(b, 8, sr)
	}
	if gr := marshalGeneralResults(&s.GeneralResults); len(gr) > 0 {
		b = appendMessage(b, 9, gr)
	}
	return b
}

func marshalStageResults(sr *StageResults) []byte {
	var b []byte
	for i := range sr.Time {
		b = appendMessage(b, 1, marshalResultTime(sr.Time[i]))
	}
	for i := range sr.Youth {
		b = appendMessage(b, 2, marshalResultTime(sr.Youth[i]))
	}
	for i := range sr.Teams {
		b = appendMessage(b, 3, marshalResultTime(sr.Teams[i]))
	}
	for i := range sr.KOM {
		b = appendMessage(b, 4, marshalPlaceResult(&sr.KOM[i]))
	}
	for i := range sr.Points {
		b = appendMessage(b, 5, marshalPlaceResult(&sr.Points[i]))
	}
	return b
}

func marshalGeneralResults(gr *GeneralResults) []byte {
	var b []byte
	for i := range gr.Time {
		b = appendMessage(b, 1, marshalResultTime(gr.Time[i]))
	}
	for i := range gr.Youth {
		b = appendMessage(b, 2, marshalResultTime(gr.Youth[i]))
	}
	for i := range gr.Teams {
		b = appendMessage(b, 3, marshalResultTime(gr.Teams[i]))
	}
	for i := range gr.KOM {
		b = appendMessage(b, 4, marshalResultPoints(gr.KOM[i]))
	}
	for i := range gr.Points {
		b = appendMessage(b, 5, marshalResultPoints(gr.Points[i]))
	}
	return b
}

func marshalResultTime(rt ParticipantResultTime) []byte {
	var b []byte
	b = appendVarint(b, 1, uint64(rt.Position))
	b = appendString(b, 2, rt.ParticipantID)
	b = appendVarint(b, 3, uint64(rt.Time))
	return b
}

func marshalResultPoints(rp ParticipantResultPoints) []byte {
	var b []byte
	b = appendVarint(b, 1, uint64(rp.Position))
	b = appendString(b, 2, rp.ParticipantID)
	b = appendVarint(b, 3, uint64(rp.Points))
	return b
}

func marshalPlaceResult(pr *PlaceResult) []byte {
	var b []byte
	b = appendMessage(b, 1, marshalPlace(pr.Place))
	for i := range pr.Points {
		b = appendMessage(b, 2, marshalResultPoints(pr.Points[i]))
	}
	return b
}

func marshalPlace(p Place) []byte {
	var b []byte
	b = appendString(b, 1, p.Name)
	if p.Distance != 0 {
		b = protowire.AppendTag(b, 2, protowire.Fixed32Type)
		b = protowire.AppendFixed32(b, math.Float32bits(p.Distance))
	}
	return b
}

func marshalTeamParticipation(tp *TeamParticipation) []byte {
	var b []byte
	b = appendString(b, 1, tp.TeamID)
	for i := range tp.RiderParticipations {
		b = appendMessage(b, 2, marshalRiderParticipation(tp.RiderParticipations[i]))
	}
	return b
}

func marshalRiderParticipation(rp RiderParticipation) []byte {
	var b []byte
	b = appendString(b, 1, rp.RiderID)
	if rp.Number != nil {
		b = appendVarint(b, 2, uint64(*rp.Number))
	}
	return b
}

func marshalTimestamp(ts Timestamp) []byte {
	var b []byte
	b = appendVarint(b, 1, uint64(ts.Seconds))
	b = appendVarint(b, 2, uint64(ts.Nanos))
	return b
}

// appendReqString always writes, empty or not, so required-field presence
// survives a round trip
func appendReqString(b []byte, num protowire.Number, s string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	return appendReqString(b, num, s)
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendMessage(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}
