package service

import (
	"context"
	"testing"
	"time"

	"peloton/internal/codec"
	perr "peloton/internal/platform/errors"
	feeddom "peloton/internal/services/feed/domain"
	"peloton/internal/wire"
)

type fakeRemote struct {
	fetchErr    error
	activateErr error
	changed     bool
	value       string
	valueErr    error

	fetches   int
	valueGets int
}

func (f *fakeRemote) Fetch(ctx context.Context, minInterval time.Duration) error {
	f.fetches++
	return f.fetchErr
}

func (f *fakeRemote) Activate(ctx context.Context) (bool, error) {
	return f.changed, f.activateErr
}

func (f *fakeRemote) Value(key string) (string, error) {
	f.valueGets++
	if f.valueErr != nil {
		return "", f.valueErr
	}
	return f.value, nil
}

func encodePayload(t *testing.T, d *wire.CyclingData) string {
	t.Helper()
	b64, err := codec.EncodeString(d)
	if err != nil {
		t.Fatalf("encode payload: %v", err)
	}
	return b64
}

func validPayload(t *testing.T, raceID string) string {
	t.Helper()
	return encodePayload(t, &wire.CyclingData{
		Teams:  []wire.Team{{ID: "uae", Name: "UAE Team Emirates", Status: wire.TeamStatusWorldTeam}},
		Riders: []wire.Rider{{ID: "pog", FirstName: "Tadej", LastName: "Pogačar"}},
		Races: []wire.Race{{
			ID:     raceID,
			Name:   "Race",
			Stages: []wire.Stage{{ID: raceID + "-1", StartDateTime: &wire.Timestamp{Seconds: 1719792000}}},
		}},
	})
}

func newService(t *testing.T, remote feeddom.RemoteConfig) *Service {
	t.Helper()
	s, err := New(remote, Config{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return s
}

func TestRefreshPublishesSnapshot(t *testing.T) {
	remote := &fakeRemote{changed: true, value: validPayload(t, "tour")}
	s := newService(t, remote)

	if s.Status() != feeddom.StatusUninitialized {
		t.Fatalf("initial status = %v", s.Status())
	}
	if !s.Refresh(context.Background()) {
		t.Fatalf("refresh reported failure")
	}
	if s.Status() != feeddom.StatusReady {
		t.Fatalf("status = %v, want Ready", s.Status())
	}
	snap, ok := s.Latest()
	if !ok || snap.Races[0].ID != "tour" {
		t.Fatalf("latest = %v, %v", snap, ok)
	}
}

func TestRefreshFetchFailureKeepsSnapshot(t *testing.T) {
	remote := &fakeRemote{changed: true, value: validPayload(t, "tour")}
	s := newService(t, remote)
	if !s.Refresh(context.Background()) {
		t.Fatalf("seed refresh failed")
	}

	remote.fetchErr = perr.RemoteFetchf("config service unreachable")
	if s.Refresh(context.Background()) {
		t.Fatalf("refresh should report failure")
	}
	if s.Status() != feeddom.StatusFetchFailed {
		t.Fatalf("status = %v, want FetchFailed", s.Status())
	}
	snap, ok := s.Latest()
	if !ok || snap.Races[0].ID != "tour" {
		t.Fatalf("previous snapshot lost: %v, %v", snap, ok)
	}
}

func TestRefreshDecodeFailureKeepsSnapshot(t *testing.T) {
	remote := &fakeRemote{changed: true, value: validPayload(t, "tour")}
	s := newService(t, remote)
	if !s.Refresh(context.Background()) {
		t.Fatalf("seed refresh failed")
	}

	remote.value = "not base64 at all"
	if s.Refresh(context.Background()) {
		t.Fatalf("refresh should report failure")
	}
	snap, _ := s.Latest()
	if snap.Races[0].ID != "tour" {
		t.Fatalf("previous snapshot lost")
	}
}

func TestRefreshMappingFailureKeepsSnapshot(t *testing.T) {
	remote := &fakeRemote{changed: true, value: validPayload(t, "tour")}
	s := newService(t, remote)
	if !s.Refresh(context.Background()) {
		t.Fatalf("seed refresh failed")
	}

	// decodes fine at the wire level but the team status is unresolvable
	remote.value = encodePayload(t, &wire.CyclingData{
		Teams: []wire.Team{{ID: "uae", Name: "UAE", Status: wire.TeamStatusUnspecified}},
	})
	if s.Refresh(context.Background()) {
		t.Fatalf("refresh should report failure")
	}
	if s.Status() != feeddom.StatusFetchFailed {
		t.Fatalf("status = %v, want FetchFailed", s.Status())
	}
	snap, _ := s.Latest()
	if snap.Races[0].ID != "tour" {
		t.Fatalf("previous snapshot lost")
	}
}

func TestRefreshUnchangedSkipsDecode(t *testing.T) {
	remote := &fakeRemote{changed: true, value: validPayload(t, "tour")}
	s := newService(t, remote)
	if !s.Refresh(context.Background()) {
		t.Fatalf("seed refresh failed")
	}

	remote.changed = false
	gets := remote.valueGets
	if !s.Refresh(context.Background()) {
		t.Fatalf("unchanged refresh should succeed")
	}
	if remote.valueGets != gets {
		t.Fatalf("unchanged document was re-decoded")
	}
	if s.Status() != feeddom.StatusReady {
		t.Fatalf("status = %v, want Ready", s.Status())
	}
}

func TestRefreshUnchangedDecodesWhenNothingPublished(t *testing.T) {
	// first run against a document restored from cache: activation
	// reports no change but nothing is on the bus yet
	remote := &fakeRemote{changed: false, value: validPayload(t, "giro")}
	s := newService(t, remote)

	if !s.Refresh(context.Background()) {
		t.Fatalf("refresh failed")
	}
	snap, ok := s.Latest()
	if !ok || snap.Races[0].ID != "giro" {
		t.Fatalf("cached document not decoded: %v, %v", snap, ok)
	}
}

func TestRefreshPublishesToSubscribers(t *testing.T) {
	remote := &fakeRemote{changed: true, value: validPayload(t, "tour")}
	s := newService(t, remote)
	ch, cancel := s.Subscribe()
	defer cancel()

	if !s.Refresh(context.Background()) {
		t.Fatalf("refresh failed")
	}
	select {
	case snap := <-ch:
		if snap.Races[0].ID != "tour" {
			t.Fatalf("subscriber got %s", snap.Races[0].ID)
		}
	case <-time.After(time.Second):
		t.Fatalf("subscriber never got the snapshot")
	}
}

func TestNewRejectsShortCadence(t *testing.T) {
	_, err := New(&fakeRemote{}, Config{RefreshEvery: 10 * time.Second})
	if err == nil {
		t.Fatalf("sub-minute cadence should be rejected")
	}
}
