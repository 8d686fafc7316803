package wire

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	perr "peloton/internal/platform/errors"
)

// Unmarshal decodes a CyclingData payload.
//
// Unknown field numbers are skipped so newer producers stay readable by
// older consumers. A missing required field (ids and names) or a
// malformed tag is a WireDecode error.
func Unmarshal(data []byte) (*CyclingData, error) {
	var out CyclingData
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, tagErr("CyclingData", n)
		}
		b = b[n:]
		switch num {
		case 1:
			msg, m, err := consumeBytes(b, typ, "CyclingData.teams")
			if err != nil {
				return nil, err
			}
			t, err := unmarshalTeam(msg)
			if err != nil {
				return nil, err
			}
			out.Teams = append(out.Teams, t)
			b = b[m:]
		case 2:
			msg, m, err := consumeBytes(b, typ, "CyclingData.riders")
			if err != nil {
				return nil, err
			}
			r, err := unmarshalRider(msg)
			if err != nil {
				return nil, err
			}
			out.Riders = append(out.Riders, r)
			b = b[m:]
		case 3:
			msg, m, err := consumeBytes(b, typ, "CyclingData.races")
			if err != nil {
				return nil, err
			}
			r, err := unmarshalRace(msg)
			if err != nil {
				return nil, err
			}
			out.Races = append(out.Races, r)
			b = b[m:]
		default:
			m, err := skipField(b, num, typ, "CyclingData")
			if err != nil {
				return nil, err
			}
			b = b[m:]
		}
	}
	return &out, nil
}

func unmarshalTeam(data []byte) (Team, error) {
	var t Team
	var hasID, hasName bool
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return t, tagErr("Team", n)
		}
		b = b[n:]
		var m int
		var err error
		switch num {
		case 1:
			t.ID, m, err = consumeString(b, typ, "Team.id")
			hasID = err == nil
		case 2:
			t.Name, m, err = consumeString(b, typ, "Team.name")
			hasName = err == nil
		case 3:
			t.Status, m, err = consumeEnum(b, typ, "Team.status")
		case 4:
			var s string
			s, m, err = consumeString(b, typ, "Team.abbreviation")
			t.Abbreviation = &s
		case 5:
			t.Country, m, err = consumeString(b, typ, "Team.country")
		case 6:
			t.Bike, m, err = consumeString(b, typ, "Team.bike")
		case 7:
			t.Jersey, m, err = consumeString(b, typ, "Team.jersey")
		case 8:
			t.Year, m, err = consumeEnum(b, typ, "Team.year")
		case 9:
			var s string
			s, m, err = consumeString(b, typ, "Team.riderIds")
			t.RiderIDs = append(t.RiderIDs, s)
		case 10:
			var s string
			s, m, err = consumeString(b, typ, "Team.website")
			t.Website = &s
		default:
			m, err = skipField(b, num, typ, "Team")
		}
		if err != nil {
			return t, err
		}
		b = b[m:]
	}
	if !hasID || !hasName {
		return t, perr.WireDecodef("Team: missing required id or name")
	}
	return t, nil
}

func unmarshalRider(data []byte) (Rider, error) {
	var r Rider
	var hasID, hasFirst, hasLast bool
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return r, tagErr("Rider", n)
		}
		b = b[n:]
		var m int
		var err error
		switch num {
		case 1:
			r.ID, m, err = consumeString(b, typ, "Rider.id")
			hasID = err == nil
		case 2:
			r.FirstName, m, err = consumeString(b, typ, "Rider.firstName")
			hasFirst = err == nil
		case 3:
			r.LastName, m, err = consumeString(b, typ, "Rider.lastName")
			hasLast = err == nil
		case 4:
			r.Country, m, err = consumeString(b, typ, "Rider.country")
		case 5:
			var msg []byte
			msg, m, err = consumeBytes(b, typ, "Rider.birthDate")
			if err == nil {
				var ts Timestamp
				ts, err = unmarshalTimestamp(msg)
				r.BirthDate = &ts
			}
		case 6:
			r.Photo, m, err = consumeString(b, typ, "Rider.photo")
		case 7:
			var s string
			s, m, err = consumeString(b, typ, "Rider.website")
			r.Website = &s
		case 8:
			var s string
			s, m, err = consumeString(b, typ, "Rider.birthPlace")
			r.BirthPlace = &s
		case 9:
			var v int32
			v, m, err = consumeEnum(b, typ, "Rider.weight")
			r.Weight = &v
		case 10:
			var v int32
			v, m, err = consumeEnum(b, typ, "Rider.height")
			r.Height = &v
		case 11:
			var v int32
			v, m, err = consumeEnum(b, typ, "Rider.uciRankingPosition")
			r.UCIRankingPosition = &v
		default:
			m, err = skipField(b, num, typ, "Rider")
		}
		if err != nil {
			return r, err
		}
		b = b[m:]
	}
	if !hasID || !hasFirst || !hasLast {
		return r, perr.WireDecodef("Rider: missing required id or name")
	}
	return r, nil
}

func unmarshalRace(data []byte) (Race, error) {
	var r Race
	var hasID, hasName bool
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return r, tagErr("Race", n)
		}
		b = b[n:]
		var m int
		var err error
		switch num {
		case 1:
			r.ID, m, err = consumeString(b, typ, "Race.id")
			hasID = err == nil
		case 2:
			r.Name, m, err = consumeString(b, typ, "Race.name")
			hasName = err == nil
		case 3:
			r.Country, m, err = consumeString(b, typ, "Race.country")
		case 4:
			var msg []byte
			msg, m, err = consumeBytes(b, typ, "Race.stages")
			if err == nil {
				var st Stage
				st, err = unmarshalStage(msg)
				r.Stages = append(r.Stages, st)
			}
		case 5:
			var msg []byte
			msg, m, err = consumeBytes(b, typ, "Race.teamParticipations")
			if err == nil {
				var tp TeamParticipation
				tp, err = unmarshalTeamParticipation(msg)
				r.TeamParticipations = append(r.TeamParticipations, tp)
			}
		case 6:
			var s string
			s, m, err = consumeString(b, typ, "Race.website")
			r.Website = &s
		default:
			m, err = skipField(b, num, typ, "Race")
		}
		if err != nil {
			return r, err
		}
		b = b[m:]
	}
	if !hasID || !hasName {
		return r, perr.WireDecodef("Race: missing required id or name")
	}
	return r, nil
}

func unmarshalStage(data []byte) (Stage, error) {
	var s Stage
	var hasID bool
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return s, tagErr("Stage", n)
		}
		b = b[n:]
		var m int
		var err error
		switch num {
		case 1:
			s.ID, m, err = consumeString(b, typ, "Stage.id")
			hasID = err == nil
		case 2:
			var msg []byte
			msg, m, err = consumeBytes(b, typ, "Stage.startDateTime")
			if err == nil {
				var ts Timestamp
				ts, err = unmarshalTimestamp(msg)
				s.StartDateTime = &ts
			}
		case 3:
			s.Distance, m, err = consumeFloat(b, typ, "Stage.distance")
		case 4:
			s.ProfileType, m, err = consumeEnum(b, typ, "Stage.profileType")
		case 5:
			var v string
			v, m, err = consumeString(b, typ, "Stage.departure")
			s.Departure = &v
		case 6:
			var v string
			v, m, err = consumeString(b, typ, "Stage.arrival")
			s.Arrival = &v
		case 7:
			s.StageType, m, err = consumeEnum(b, typ, "Stage.stageType")
		case 8:
			var msg []byte
			msg, m, err = consumeBytes(b, typ, "Stage.stageResults")
			if err == nil {
				s.StageResults, err = unmarshalStageResults(msg)
			}
		case 9:
			var msg []byte
			msg, m, err = consumeBytes(b, typ, "Stage.generalResults")
			if err == nil {
				s.GeneralResults, err = unmarshalGeneralResults(msg)
			}
		default:
			m, err = skipField(b, num, typ, "Stage")
		}
		if err != nil {
			return s, err
		}
		b = b[m:]
	}
	if !hasID {
		return s, perr.WireDecodef("Stage: missing required id")
	}
	return s, nil
}

func unmarshalStageResults(data []byte) (StageResults, error) {
	var sr StageResults
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return sr, tagErr("StageResults", n)
		}
		b = b[n:]
		var m int
		var err error
		switch num {
		case 1, 2, 3:
			var msg []byte
			msg, m, err = consumeBytes(b, typ, "StageResults.time")
			if err == nil {
				var rt ParticipantResultTime
				rt, err = unmarshalResultTime(msg)
				switch num {
				case 1:
					sr.Time = append(sr.Time, rt)
				case 2:
					sr.Youth = append(sr.Youth, rt)
				case 3:
					sr.Teams = append(sr.Teams, rt)
				}
			}
		case 4, 5:
			var msg []byte
			msg, m, err = consumeBytes(b, typ, "StageResults.places")
			if err == nil {
				var pr PlaceResult
				pr, err = unmarshalPlaceResult(msg)
				if num == 4 {
					sr.KOM = append(sr.KOM, pr)
				} else {
					sr.Points = append(sr.Points, pr)
				}
			}
		default:
			m, err = skipField(b, num, typ, "StageResults")
		}
		if err != nil {
			return sr, err
		}
		b = b[m:]
	}
	return sr, nil
}

func unmarshalGeneralResults(data []byte) (GeneralResults, error) {
	var gr GeneralResults
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return gr, tagErr("GeneralResults", n)
		}
		b = b[n:]
		var m int
		var err error
		switch num {
		case 1, 2, 3:
			var msg []byte
			msg, m, err = consumeBytes(b, typ, "GeneralResults.time")
			if err == nil {
				var rt ParticipantResultTime
				rt, err = unmarshalResultTime(msg)
				switch num {
				case 1:
					gr.Time = append(gr.Time, rt)
				case 2:
					gr.Youth = append(gr.Youth, rt)
				case 3:
					gr.Teams = append(gr.Teams, rt)
				}
			}
		case 4, 5:
			var msg []byte
			msg, m, err = consumeBytes(b, typ, "GeneralResults.points")
			if err == nil {
				var rp ParticipantResultPoints
				rp, err = unmarshalResultPoints(msg)
				if num == 4 {
					gr.KOM = append(gr.KOM, rp)
				} else {
					gr.Points = append(gr.Points, rp)
				}
			}
		default:
			m, err = skipField(b, num, typ, "GeneralResults")
		}
		if err != nil {
			return gr, err
		}
		b = b[m:]
	}
	return gr, nil
}

func unmarshalResultTime(data []byte) (ParticipantResultTime, error) {
	var rt ParticipantResultTime
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return rt, tagErr("ParticipantResultTime", n)
		}
		b = b[n:]
		var m int
		var err error
		switch num {
		case 1:
			rt.Position, m, err = consumeEnum(b, typ, "ParticipantResultTime.position")
		case 2:
			rt.ParticipantID, m, err = consumeString(b, typ, "ParticipantResultTime.participantId")
		case 3:
			rt.Time, m, err = consumeInt64(b, typ, "ParticipantResultTime.time")
		default:
			m, err = skipField(b, num, typ, "ParticipantResultTime")
		}
		if err != nil {
			return rt, err
		}
		b = b[m:]
	}
	return rt, nil
}

func unmarshalResultPoints(data []byte) (ParticipantResultPoints, error) {
	var rp ParticipantResultPoints
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return rp, tagErr("ParticipantResultPoints", n)
		}
		b = b[n:]
		var m int
		var err error
		switch num {
		case 1:
			rp.Position, m, err = consumeEnum(b, typ, "ParticipantResultPoints.position")
		case 2:
			rp.ParticipantID, m, err = consumeString(b, typ, "ParticipantResultPoints.participantId")
		case 3:
			rp.Points, m, err = consumeEnum(b, typ, "ParticipantResultPoints.points")
		default:
			m, err = skipField(b, num, typ, "ParticipantResultPoints")
		}
		if err != nil {
			return rp, err
		}
		b = b[m:]
	}
	return rp, nil
}

func unmarshalPlaceResult(data []byte) (PlaceResult, error) {
	var pr PlaceResult
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return pr, tagErr("PlaceResult", n)
		}
		b = b[n:]
		var m int
		var err error
		switch num {
		case 1:
			var msg []byte
			msg, m, err = consumeBytes(b, typ, "PlaceResult.place")
			if err == nil {
				pr.Place, err = unmarshalPlace(msg)
			}
		case 2:
			var msg []byte
			msg, m, err = consumeBytes(b, typ, "PlaceResult.points")
			if err == nil {
				var rp ParticipantResultPoints
				rp, err = unmarshalResultPoints(msg)
				pr.Points = append(pr.Points, rp)
			}
		default:
			m, err = skipField(b, num, typ, "PlaceResult")
		}
		if err != nil {
			return pr, err
		}
		b = b[m:]
	}
	return pr, nil
}

func unmarshalPlace(data []byte) (Place, error) {
	var p Place
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return p, tagErr("Place", n)
		}
		b = b[n:]
		var m int
		var err error
		switch num {
		case 1:
			p.Name, m, err = consumeString(b, typ, "Place.name")
		case 2:
			p.Distance, m, err = consumeFloat(b, typ, "Place.distance")
		default:
			m, err = skipField(b, num, typ, "Place")
		}
		if err != nil {
			return p, err
		}
		b = b[m:]
	}
	return p, nil
}

func unmarshalTeamParticipation(data []byte) (TeamParticipation, error) {
	var tp TeamParticipation
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return tp, tagErr("TeamParticipation", n)
		}
		b = b[n:]
		var m int
		var err error
		switch num {
		case 1:
			tp.TeamID, m, err = consumeString(b, typ, "TeamParticipation.teamId")
		case 2:
			var msg []byte
			msg, m, err = consumeBytes(b, typ, "TeamParticipation.riderParticipations")
			if err == nil {
				var rp RiderParticipation
				rp, err = unmarshalRiderParticipation(msg)
				tp.RiderParticipations = append(tp.RiderParticipations, rp)
			}
		default:
			m, err = skipField(b, num, typ, "TeamParticipation")
		}
		if err != nil {
			return tp, err
		}
		b = b[m:]
	}
	return tp, nil
}

func unmarshalRiderParticipation(data []byte) (RiderParticipation, error) {
	var rp RiderParticipation
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return rp, tagErr("RiderParticipation", n)
		}
		b = b[n:]
		var m int
		var err error
		switch num {
		case 1:
			rp.RiderID, m, err = consumeString(b, typ, "RiderParticipation.riderId")
		case 2:
			var v int32
			v, m, err = consumeEnum(b, typ, "RiderParticipation.number")
			rp.Number = &v
		default:
			m, err = skipField(b, num, typ, "RiderParticipation")
		}
		if err != nil {
			return rp, err
		}
		b = b[m:]
	}
	return rp, nil
}

func unmarshalTimestamp(data []byte) (Timestamp, error) {
	var ts Timestamp
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return ts, tagErr("Timestamp", n)
		}
		b = b[n:]
		var m int
		var err error
		switch num {
		case 1:
			ts.Seconds, m, err = consumeInt64(b, typ, "Timestamp.seconds")
		case 2:
			ts.Nanos, m, err = consumeEnum(b, typ, "Timestamp.nanos")
		default:
			m, err = skipField(b, num, typ, "Timestamp")
		}
		if err != nil {
			return ts, err
		}
		b = b[m:]
	}
	return ts, nil
}

// Low-level consume helpers. Each returns the decoded value and the number
// of bytes consumed after the tag.

func consumeString(b []byte, typ protowire.Type, field string) (string, int, error) {
	if typ != protowire.BytesType {
		return "", 0, perr.WireDecodef("%s: expected length-delimited, got wire type %d", field, typ)
	}
	v, n := protowire.ConsumeString(b)
	if n < 0 {
		return "", 0, valueErr(field, n)
	}
	return v, n, nil
}

func consumeBytes(b []byte, typ protowire.Type, field string) ([]byte, int, error) {
	if typ != protowire.BytesType {
		return nil, 0, perr.WireDecodef("%s: expected length-delimited, got wire type %d", field, typ)
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, valueErr(field, n)
	}
	return v, n, nil
}

func consumeEnum(b []byte, typ protowire.Type, field string) (int32, int, error) {
	if typ != protowire.VarintType {
		return 0, 0, perr.WireDecodef("%s: expected varint, got wire type %d", field, typ)
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, 0, valueErr(field, n)
	}
	return int32(v), n, nil
}

func consumeInt64(b []byte, typ protowire.Type, field string) (int64, int, error) {
	if typ != protowire.VarintType {
		return 0, 0, perr.WireDecodef("%s: expected varint, got wire type %d", field, typ)
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, 0, valueErr(field, n)
	}
	return int64(v), n, nil
}

func consumeFloat(b []byte, typ protowire.Type, field string) (float32, int, error) {
	if typ != protowire.Fixed32Type {
		return 0, 0, perr.WireDecodef("%s: expected fixed32, got wire type %d", field, typ)
	}
	v, n := protowire.ConsumeFixed32(b)
	if n < 0 {
		return 0, 0, valueErr(field, n)
	}
	return math.Float32frombits(v), n, nil
}

func skipField(b []byte, num protowire.Number, typ protowire.Type, msg string) (int, error) {
	n := protowire.ConsumeFieldValue(num, typ, b)
	if n < 0 {
		return 0, perr.Wrapf(protowire.ParseError(n), perr.ErrorCodeWireDecode, "%s: skipping field %d", msg, num)
	}
	return n, nil
}

func tagErr(msg string, n int) error {
	return perr.Wrapf(protowire.ParseError(n), perr.ErrorCodeWireDecode, "%s: malformed tag", msg)
}

func valueErr(field string, n int) error {
	return perr.Wrapf(protowire.ParseError(n), perr.ErrorCodeWireDecode, "%s: malformed value", field)
}
