package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"uptimebar/internal/domain"
	"uptimebar/internal/logger"
	"uptimebar/internal/settings"
	"uptimebar/internal/status"
	"uptimebar/internal/transport/rest/middleware"
)

type fakeVerifier struct {
	principals map[string]domain.Principal
}

func (f *fakeVerifier) PrincipalFromToken(token string) (domain.Principal, error) {
	if p, ok := f.principals[token]; ok {
		return p, nil
	}
	return domain.Principal{}, domain.ErrUnauthorized
}

type fakeSource struct {
	system  domain.UptimeReading
	process domain.UptimeReading
}

func (f *fakeSource) System(ctx context.Context) domain.UptimeReading  { return f.system }
func (f *fakeSource) Process(ctx context.Context) domain.UptimeReading { return f.process }

type fakeProvider struct {
	st domain.DisplaySettings
}

func (f *fakeProvider) Get() domain.DisplaySettings { return f.st }

func newUptimeStack(source *fakeSource) http.Handler {
	svc := status.NewService(source, &fakeProvider{st: domain.DefaultDisplaySettings()}, logger.NewNop())
	handler := NewUptimeHandler(svc)

	verifier := &fakeVerifier{principals: map[string]domain.Principal{
		"widget-token": {Name: "widget", Role: domain.RoleWidget},
		"viewer-token": {Name: "viewer", Role: domain.RoleViewer},
	}}

	stack := middleware.New(middleware.Auth(verifier))
	return stack.Then(http.HandlerFunc(handler.Read))
}

func doRead(t *testing.T, handler http.Handler, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/uptime", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestReadEndpointServesBothSeries(t *testing.T) {
	handler := newUptimeStack(&fakeSource{
		system:  domain.NewUptimeReading(3661),
		process: domain.NewUptimeReading(42),
	})

	rec := doRead(t, handler, "widget-token")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp domain.StatusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	if resp.Seconds == nil || *resp.Seconds != 3661 {
		t.Fatalf("seconds = %v, want 3661", resp.Seconds)
	}
	if resp.ProcessSeconds == nil || *resp.ProcessSeconds != 42 {
		t.Fatalf("octoprint_seconds = %v, want 42", resp.ProcessSeconds)
	}
	if !resp.UptimeAvailable {
		t.Fatal("uptime_available = false")
	}
}

func TestReadEndpointNarrowsForViewer(t *testing.T) {
	handler := newUptimeStack(&fakeSource{
		system:  domain.NewUptimeReading(3661),
		process: domain.NewUptimeReading(42),
	})

	rec := doRead(t, handler, "viewer-token")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: a valid principal is narrowed, never rejected", rec.Code)
	}

	var resp domain.StatusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	if resp.Seconds != nil {
		t.Fatalf("seconds = %v, want null for a viewer", *resp.Seconds)
	}
	if resp.ProcessSeconds == nil || *resp.ProcessSeconds != 42 {
		t.Fatalf("octoprint_seconds = %v, want 42", resp.ProcessSeconds)
	}
}

func TestReadEndpointRequiresToken(t *testing.T) {
	handler := newUptimeStack(&fakeSource{})

	if rec := doRead(t, handler, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if rec := doRead(t, handler, "bogus"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestReadEndpointStays200WhenAcquisitionFails(t *testing.T) {
	handler := newUptimeStack(&fakeSource{
		system:  domain.UnavailableReading("check /proc"),
		process: domain.UnavailableReading("start time missing"),
	})

	rec := doRead(t, handler, "widget-token")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with a degraded body", rec.Code)
	}

	var resp domain.StatusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	if resp.UptimeAvailable {
		t.Fatal("uptime_available = true after total failure")
	}
	if resp.UptimeNote == nil || *resp.UptimeNote == "" {
		t.Fatal("uptime_note missing after acquisition failure")
	}
	if resp.Error == "" {
		t.Fatal("error field missing after total failure")
	}
}

type memSettingsRepo struct {
	saved *domain.DisplaySettings
}

func (r *memSettingsRepo) Load(ctx context.Context) (domain.DisplaySettings, bool, error) {
	if r.saved == nil {
		return domain.DisplaySettings{}, false, nil
	}
	return *r.saved, true, nil
}

func (r *memSettingsRepo) Save(ctx context.Context, s domain.DisplaySettings) error {
	r.saved = &s
	return nil
}

type recordingBroadcaster struct {
	events []string
}

func (b *recordingBroadcaster) Broadcast(channel, event string, payload any) {
	b.events = append(b.events, channel+"/"+event)
}

func TestSettingsUpdateClampsInsteadOfRejecting(t *testing.T) {
	store, err := settings.NewStore(context.Background(), &memSettingsRepo{}, logger.NewNop())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	broadcast := &recordingBroadcaster{}
	handler := NewSettingsHandler(store, broadcast, logger.NewNop())

	body := `{"poll_interval_seconds": 999, "compact_interval_seconds": "abc", "display_format": "dhm"}`
	req := httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: malformed values coerce, never fail", rec.Code)
	}

	saved := store.Get()
	if saved.PollIntervalSeconds != domain.MaxPollIntervalSeconds {
		t.Fatalf("PollIntervalSeconds = %d, want clamped to %d", saved.PollIntervalSeconds, domain.MaxPollIntervalSeconds)
	}
	if saved.CompactIntervalSeconds != domain.DefaultCompactIntervalSeconds {
		t.Fatalf("CompactIntervalSeconds = %d, want the default", saved.CompactIntervalSeconds)
	}
	if saved.DisplayFormat != domain.FormatDHM {
		t.Fatalf("DisplayFormat = %q, want dhm", saved.DisplayFormat)
	}

	if len(broadcast.events) != 1 || broadcast.events[0] != domain.WsChannelSettings+"/"+domain.WsEventSettingsUpdated {
		t.Fatalf("broadcasts = %v, want one settings.updated event", broadcast.events)
	}
}
