package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"tableflip.dev/palette/pkg/app"
	"tableflip.dev/palette/pkg/entry"
	"tableflip.dev/palette/pkg/remote"
	"tableflip.dev/palette/pkg/store"
)

var now = time.Date(2025, 1, 15, 12, 0, 0, 0, time.Local)

func newTestServer(t *testing.T) (*httptest.Server, *app.Service) {
	t.Helper()
	svc := app.New(nil, store.NewMemory(), zaptest.NewLogger(t))
	svc.Now = func() time.Time { return now }
	srv := httptest.NewServer(New(svc, zaptest.NewLogger(t), false).Router())
	t.Cleanup(srv.Close)
	return srv, svc
}

func newEntry(date, color, emotion string) *entry.Entry {
	d := entry.NewDraft()
	d.Date = date
	d.Color = color
	d.Emotion = emotion
	d.Episode = "note"
	return entry.New(d, now)
}

func TestClientServerRoundTrip(t *testing.T) {
	srv, svc := newTestServer(t)
	client := remote.New(srv.URL, time.Second)
	ctx := context.Background()

	in := newEntry("2025-01-14", "#ff0000", "joy")
	created, err := client.Create(ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != in.ID || created.Color != "#FF0000" {
		t.Fatalf("unexpected created %+v", created)
	}
	if _, err := client.Create(ctx, newEntry("2025-01-20", "#00FF00", "calm")); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := client.List(ctx, "2025-01-01", "2025-01-15")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != in.ID {
		t.Fatalf("unexpected list %+v", list)
	}
	all, err := client.List(ctx, "", "")
	if err != nil || len(all) != 2 {
		t.Fatalf("expected 2 entries, got %d (%v)", len(all), err)
	}

	got, err := client.Get(ctx, in.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Timestamp.Equal(in.Timestamp.Time) {
		t.Fatalf("timestamp changed: %v vs %v", got.Timestamp, in.Timestamp)
	}

	emotion := "calm"
	updated, err := client.Update(ctx, in.ID, entry.Patch{Emotion: &emotion})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Emotion != "calm" {
		t.Fatalf("unexpected update %+v", updated)
	}

	if err := client.Delete(ctx, in.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, in.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected deleted, got %v", err)
	}
	if _, err := client.Get(ctx, in.ID); !errors.Is(err, remote.ErrRemoteUnavailable) {
		t.Fatalf("missing entry should fail, got %v", err)
	}
}

func TestCreateFillsDefaults(t *testing.T) {
	srv, svc := newTestServer(t)
	resp, err := http.Post(srv.URL+"/emotions", "application/json",
		strings.NewReader(`{"color":"00ff00","emotion":"hope"}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	all, _ := svc.Entries(context.Background())
	if len(all) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(all))
	}
	e := all[0]
	if !strings.HasPrefix(e.ID, "emotion_") || e.Date != "2025-01-15" || e.Color != "#00FF00" || e.EmotionIntensity != 3 {
		t.Fatalf("unexpected defaults %+v", e)
	}
}

func TestCreateSameIDReturnsStored(t *testing.T) {
	srv, svc := newTestServer(t)
	client := remote.New(srv.URL, time.Second)
	ctx := context.Background()

	in := newEntry("2025-01-14", "#ff0000", "joy")
	if _, err := client.Create(ctx, in); err != nil {
		t.Fatalf("create: %v", err)
	}
	again, err := client.Create(ctx, in)
	if err != nil {
		t.Fatalf("repeated create: %v", err)
	}
	if again.ID != in.ID || again.Color != "#FF0000" {
		t.Fatalf("unexpected reply %+v", again)
	}
	if all, _ := svc.Entries(ctx); len(all) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(all))
	}

	resp, err := http.Post(srv.URL+"/emotions", "application/json",
		strings.NewReader(`{"id":"`+in.ID+`","color":"#00FF00","emotion":"calm"}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for a stored id, got %d", resp.StatusCode)
	}
}

// The server stored the entry but the reply never reached the client, so the
// entry sits in the local queue. The next sync must drain it.
func TestSyncPendingAfterLostReply(t *testing.T) {
	srv, server := newTestServer(t)
	ctx := context.Background()

	e := newEntry("2025-01-14", "#FF0000", "joy")
	if err := server.Persist(ctx, e); err != nil {
		t.Fatalf("server persist: %v", err)
	}

	local := app.New(nil, store.NewMemory(), zaptest.NewLogger(t))
	local.Remote = remote.New(srv.URL, time.Second)
	queued := e.Clone()
	queued.PendingSync = true
	if err := local.Persistence.Append(ctx, queued); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := local.Persistence.Enqueue(ctx, queued); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	for i := 0; i < 2; i++ {
		res, err := local.SyncPending(ctx)
		if err != nil {
			t.Fatalf("sync %d: %v", i, err)
		}
		if res.Failed != 0 {
			t.Fatalf("sync %d: unexpected result %+v", i, res)
		}
	}
	if n := len(local.Persistence.Pending(ctx)); n != 0 {
		t.Fatalf("expected empty queue, got %d", n)
	}
	if all, _ := server.Entries(ctx); len(all) != 1 {
		t.Fatalf("expected 1 server entry, got %d", len(all))
	}
}

func TestUpdateRejectsEmptyDate(t *testing.T) {
	srv, svc := newTestServer(t)
	ctx := context.Background()

	for i := 0; i < store.DailyLimit; i++ {
		if err := svc.Persist(ctx, newEntry("2025-01-15", "#111111", "joy")); err != nil {
			t.Fatalf("persist %d: %v", i, err)
		}
	}
	other := newEntry("2025-01-10", "#222222", "calm")
	if err := svc.Persist(ctx, other); err != nil {
		t.Fatalf("persist: %v", err)
	}

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/emotions/"+other.ID, strings.NewReader(`{"date":""}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	got, err := svc.Get(ctx, other.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Date != "2025-01-10" {
		t.Fatalf("date changed to %q", got.Date)
	}
	if all, _ := svc.EntriesBetween(ctx, "2025-01-15", "2025-01-15"); len(all) != store.DailyLimit {
		t.Fatalf("expected %d entries on 2025-01-15, got %d", store.DailyLimit, len(all))
	}
}

func TestStatusCodes(t *testing.T) {
	srv, _ := newTestServer(t)
	client := srv.Client()

	post := func(body string) int {
		resp, err := client.Post(srv.URL+"/emotions", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("post: %v", err)
		}
		resp.Body.Close()
		return resp.StatusCode
	}

	if code := post(`{"emotion":"joy"}`); code != http.StatusBadRequest {
		t.Fatalf("missing color: expected 400, got %d", code)
	}
	if code := post(`not json`); code != http.StatusBadRequest {
		t.Fatalf("bad json: expected 400, got %d", code)
	}
	for i := 0; i < store.DailyLimit; i++ {
		if code := post(`{"date":"2025-01-10","color":"#111111","emotion":"joy"}`); code != http.StatusCreated {
			t.Fatalf("create %d: got %d", i, code)
		}
	}
	if code := post(`{"date":"2025-01-10","color":"#111111","emotion":"joy"}`); code != http.StatusConflict {
		t.Fatalf("daily limit: expected 409, got %d", code)
	}

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/emotions/nope", strings.NewReader(`{"emotion":"calm"}`))
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown id: expected 404, got %d", resp.StatusCode)
	}

	resp, err = client.Get(srv.URL + "/emotions?startDate=yesterday")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad date: expected 400, got %d", resp.StatusCode)
	}
}

func TestAnalyzeEndpoints(t *testing.T) {
	srv, svc := newTestServer(t)
	client := remote.New(srv.URL, time.Second)
	ctx := context.Background()

	color, err := client.AnalyzeColor(ctx, remote.ColorRequest{Color: "#0D295D", Emotion: "calm", Intensity: 5})
	if err != nil {
		t.Fatalf("analyze color: %v", err)
	}
	if color.Family != "blue" || color.Tone != "deep" || len(color.Suggestions) != 2 {
		t.Fatalf("unexpected color analysis %+v", color)
	}
	if !strings.HasPrefix(color.Complement, "#") || len(color.Complement) != 7 {
		t.Fatalf("bad complement %q", color.Complement)
	}
	if _, err := client.AnalyzeColor(ctx, remote.ColorRequest{Color: "#12"}); !errors.Is(err, remote.ErrRemoteUnavailable) {
		t.Fatalf("bad color should fail, got %v", err)
	}

	for _, e := range []*entry.Entry{
		newEntry("2025-01-15", "#FF0000", "joy"),
		newEntry("2025-01-14", "#FF0000", "joy"),
		newEntry("2025-01-13", "#0000FF", "calm"),
	} {
		if err := svc.Persist(ctx, e); err != nil {
			t.Fatalf("persist: %v", err)
		}
	}
	a, err := client.AnalyzeTrends(ctx, remote.TrendsRequest{Period: "1week"})
	if err != nil {
		t.Fatalf("analyze trends: %v", err)
	}
	if a.TotalEntries != 3 || a.TopEmotions[0].Value != "joy" || a.Insight == "" {
		t.Fatalf("unexpected trends %+v", a)
	}
	if _, err := client.AnalyzeTrends(ctx, remote.TrendsRequest{Period: "forever"}); err == nil {
		t.Fatal("unknown period should fail")
	}
}

func TestAnalyzeColorFamilies(t *testing.T) {
	tests := []struct {
		color  string
		family string
		tone   string
	}{
		{"#FF0000", "red", "vivid"},
		{"#FFD700", "yellow", "vivid"},
		{"#B7EDB9", "green", "light"},
		{"#FFFFFF", "white", "light"},
		{"#000000", "black", "deep"},
		{"#808080", "gray", "muted"},
		{"#FFCBE9", "pink", "light"},
	}
	for _, tt := range tests {
		got, err := AnalyzeColor(remote.ColorRequest{Color: tt.color})
		if err != nil {
			t.Fatalf("%s: %v", tt.color, err)
		}
		if got.Family != tt.family || got.Tone != tt.tone {
			t.Fatalf("%s: got %s/%s, want %s/%s", tt.color, got.Family, got.Tone, tt.family, tt.tone)
		}
	}
}
