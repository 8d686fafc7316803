package query

import (
	"testing"
	"time"

	"peloton/internal/core/domain"
	perr "peloton/internal/platform/errors"
)

func testSnapshot() *domain.Snapshot {
	teams := []domain.Team{
		{ID: "alpecin", Name: "Alpecin", Status: domain.StatusWorldTeam},
		{ID: "visma", Name: "Visma", Status: domain.StatusWorldTeam},
	}
	riders := []domain.Rider{
		{ID: "r1", FirstName: "Mathieu", LastName: "van der Poel"},
		{ID: "r2", FirstName: "Wout", LastName: "van Aert"},
	}
	return domain.NewSnapshot(teams, riders, nil)
}

func timeRows(ids ...string) []domain.TimeResult {
	out := make([]domain.TimeResult, 0, len(ids))
	for i, id := range ids {
		out = append(out, domain.TimeResult{
			Position:      i + 1,
			ParticipantID: id,
			Elapsed:       time.Duration(3600+5*i) * time.Second,
		})
	}
	return out
}

func TestStageTimeResolvesToRiders(t *testing.T) {
	snap := testSnapshot()
	stage := domain.Stage{
		Type:         domain.StageRegular,
		StageResults: domain.StageResults{Time: timeRows("r1", "r2")},
	}

	res, err := StageResults(stage, ModeStage, ClassTime, snap)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	rt, ok := res.(RiderTimes)
	if !ok {
		t.Fatalf("want RiderTimes, got %T", res)
	}
	if len(rt.Rows) != 2 {
		t.Fatalf("rows = %d", len(rt.Rows))
	}
	if rt.Rows[0].Rider.LastName != "van der Poel" || rt.Rows[0].Position != 1 {
		t.Fatalf("row 0 = %+v", rt.Rows[0])
	}
	if rt.Rows[1].Elapsed != 3605*time.Second {
		t.Fatalf("row 1 elapsed = %v", rt.Rows[1].Elapsed)
	}
}

func TestTeamTimeTrialResolvesToTeams(t *testing.T) {
	snap := testSnapshot()
	stage := domain.Stage{
		Type:           domain.StageTeamTimeTrial,
		StageResults:   domain.StageResults{Time: timeRows("alpecin", "visma")},
		GeneralResults: domain.GeneralResults{Time: timeRows("r1", "r2")},
	}

	res, err := StageResults(stage, ModeStage, ClassTime, snap)
	if err != nil {
		t.Fatalf("stage mode: %v", err)
	}
	tt, ok := res.(TeamTimes)
	if !ok {
		t.Fatalf("stage-mode TTT time should be TeamTimes, got %T", res)
	}
	if tt.Rows[0].Team.ID != "alpecin" {
		t.Fatalf("row 0 = %+v", tt.Rows[0])
	}

	// the general classification stays individual even through a TTT
	res, err = StageResults(stage, ModeGeneral, ClassTime, snap)
	if err != nil {
		t.Fatalf("general mode: %v", err)
	}
	if _, ok := res.(RiderTimes); !ok {
		t.Fatalf("general-mode time should be RiderTimes, got %T", res)
	}
}

func TestTeamsClassification(t *testing.T) {
	snap := testSnapshot()
	stage := domain.Stage{
		Type:           domain.StageRegular,
		StageResults:   domain.StageResults{Teams: timeRows("visma", "alpecin")},
		GeneralResults: domain.GeneralResults{Teams: timeRows("alpecin", "visma")},
	}

	for _, mode := range []ResultMode{ModeStage, ModeGeneral} {
		res, err := StageResults(stage, mode, ClassTeams, snap)
		if err != nil {
			t.Fatalf("mode %d: %v", mode, err)
		}
		if _, ok := res.(TeamTimes); !ok {
			t.Fatalf("mode %d: want TeamTimes, got %T", mode, res)
		}
	}
}

func TestKOMStageModeGroupsByPlace(t *testing.T) {
	snap := testSnapshot()
	stage := domain.Stage{
		Type: domain.StageRegular,
		StageResults: domain.StageResults{
			KOM: []domain.PlaceAwards{{
				Place: domain.Place{Name: "Col du Test", Distance: 42.5},
				Awards: []domain.PointsResult{
					{Position: 1, ParticipantID: "r2", Points: 10},
					{Position: 2, ParticipantID: "r1", Points: 6},
				},
			}},
		},
		GeneralResults: domain.GeneralResults{
			KOM: []domain.PointsResult{{Position: 1, ParticipantID: "r2", Points: 31}},
		},
	}

	res, err := StageResults(stage, ModeStage, ClassKOM, snap)
	if err != nil {
		t.Fatalf("stage mode: %v", err)
	}
	pp, ok := res.(PlacePoints)
	if !ok {
		t.Fatalf("want PlacePoints, got %T", res)
	}
	if len(pp.Places) != 1 || pp.Places[0].Place.Name != "Col du Test" {
		t.Fatalf("places = %+v", pp.Places)
	}
	if pp.Places[0].Rows[0].Rider.ID != "r2" || pp.Places[0].Rows[0].Points != 10 {
		t.Fatalf("row 0 = %+v", pp.Places[0].Rows[0])
	}

	res, err = StageResults(stage, ModeGeneral, ClassKOM, snap)
	if err != nil {
		t.Fatalf("general mode: %v", err)
	}
	rp, ok := res.(RiderPoints)
	if !ok {
		t.Fatalf("general-mode KOM should be RiderPoints, got %T", res)
	}
	if rp.Rows[0].Points != 31 {
		t.Fatalf("row 0 = %+v", rp.Rows[0])
	}
}

func TestYouthClassification(t *testing.T) {
	snap := testSnapshot()
	stage := domain.Stage{
		Type:         domain.StageRegular,
		StageResults: domain.StageResults{Youth: timeRows("r1")},
	}
	res, err := StageResults(stage, ModeStage, ClassYouth, snap)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if _, ok := res.(RiderTimes); !ok {
		t.Fatalf("want RiderTimes, got %T", res)
	}
}

func TestUnknownParticipantIsDataIntegrity(t *testing.T) {
	snap := testSnapshot()
	stage := domain.Stage{
		Type:         domain.StageRegular,
		StageResults: domain.StageResults{Time: timeRows("r1", "ghost")},
	}
	_, err := StageResults(stage, ModeStage, ClassTime, snap)
	if !perr.IsCode(err, perr.ErrorCodeDataIntegrity) {
		t.Fatalf("want DataIntegrity error, got %v", err)
	}
}

func TestEmptyResultsResolveEmpty(t *testing.T) {
	snap := testSnapshot()
	res, err := StageResults(domain.Stage{Type: domain.StageRegular}, ModeStage, ClassTime, snap)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if rt := res.(RiderTimes); len(rt.Rows) != 0 {
		t.Fatalf("want empty rows, got %d", len(rt.Rows))
	}
}
