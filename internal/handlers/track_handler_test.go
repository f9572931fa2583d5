package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/formteam/formtrack-backend/internal/models"
	"github.com/formteam/formtrack-backend/internal/services"
	"github.com/formteam/formtrack-backend/internal/tracking"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type stubCampaignFinder struct {
	campaigns map[string]*models.Campaign
	failWith  error
}

func (s *stubCampaignFinder) FindByTrackingCode(code string) (*models.Campaign, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	campaign, ok := s.campaigns[code]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return campaign, nil
}

type recordingSink struct {
	mu   sync.Mutex
	logs []*models.ClickLog
	err  error
}

func (s *recordingSink) Insert(log *models.ClickLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.logs = append(s.logs, log)
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.logs)
}

func newTrackRouter(finder *stubCampaignFinder, sink *recordingSink) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewTrackHandler(
		tracking.NewResolver(finder),
		services.NewClickLogService(sink, nil),
		"https://landing.example",
	)
	r := gin.New()
	r.GET("/track/:code", handler.Track)
	return r
}

func trackingGet(t *testing.T, r *gin.Engine, code string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/track/"+code, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTrackRedirectOutcomes(t *testing.T) {
	finder := &stubCampaignFinder{campaigns: map[string]*models.Campaign{
		"aaaaaaa1": {ID: 1, Status: models.StatusActive, OfferURL: "https://advertiser.example/offer?x=1"},
		"aaaaaaa2": {ID: 2, Status: models.StatusStop},
		"aaaaaaa3": {ID: 3, Status: models.StatusExpire},
		"aaaaaaa4": {ID: 4, Status: models.StatusDraft},
	}}
	r := newTrackRouter(finder, &recordingSink{})

	tests := []struct {
		name     string
		code     string
		location string
	}{
		{"active campaign", "aaaaaaa1", "https://advertiser.example/offer?x=1"},
		{"stopped campaign", "aaaaaaa2", "https://landing.example/campaign-stop?reason=stop"},
		{"expired campaign", "aaaaaaa3", "https://landing.example/campaign-stop?reason=expire"},
		{"draft campaign", "aaaaaaa4", "https://landing.example/campaign-stop?reason=unavailable"},
		{"unknown code", "zzzzzzz9", "https://landing.example/campaign-stop?reason=not_found"},
		{"malformed code", "short", "https://landing.example/campaign-stop?reason=invalid"},
		{"non-alphabet code", "aaaa-aa1", "https://landing.example/campaign-stop?reason=invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := trackingGet(t, r, tt.code)
			if w.Code != http.StatusFound {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusFound)
			}
			if got := w.Header().Get("Location"); got != tt.location {
				t.Errorf("Location = %q, want %q", got, tt.location)
			}
		})
	}
}

func TestTrackLogsClickForKnownCampaign(t *testing.T) {
	finder := &stubCampaignFinder{campaigns: map[string]*models.Campaign{
		"aaaaaaa1": {ID: 1, Status: models.StatusActive, OfferURL: "https://advertiser.example/offer"},
	}}
	sink := &recordingSink{}
	r := newTrackRouter(finder, sink)

	req := httptest.NewRequest(http.MethodGet, "/track/aaaaaaa1", nil)
	req.Header.Set("User-Agent", "probe/1.0")
	req.Header.Set("Referer", "https://social.example/post")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusFound)
	}

	// The direct insert runs on its own goroutine.
	deadline := time.Now().Add(2 * time.Second)
	for sink.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if sink.count() != 1 {
		t.Fatalf("logged %d clicks, want 1", sink.count())
	}

	sink.mu.Lock()
	log := sink.logs[0]
	sink.mu.Unlock()
	if log.CampaignID != 1 {
		t.Errorf("campaign ID = %d, want 1", log.CampaignID)
	}
	if log.UserAgent != "probe/1.0" {
		t.Errorf("user agent = %q", log.UserAgent)
	}
	if log.Referer != "https://social.example/post" {
		t.Errorf("referer = %q", log.Referer)
	}
}

func TestTrackSkipsClickLogForUnknownCode(t *testing.T) {
	sink := &recordingSink{}
	r := newTrackRouter(&stubCampaignFinder{campaigns: map[string]*models.Campaign{}}, sink)

	trackingGet(t, r, "zzzzzzz9")

	time.Sleep(50 * time.Millisecond)
	if sink.count() != 0 {
		t.Errorf("logged %d clicks for an unknown code, want 0", sink.count())
	}
}

func TestTrackClickLogFailureDoesNotAffectRedirect(t *testing.T) {
	finder := &stubCampaignFinder{campaigns: map[string]*models.Campaign{
		"aaaaaaa1": {ID: 1, Status: models.StatusActive, OfferURL: "https://advertiser.example/offer"},
	}}
	sink := &recordingSink{err: errors.New("disk full")}
	r := newTrackRouter(finder, sink)

	w := trackingGet(t, r, "aaaaaaa1")
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusFound)
	}
	if got := w.Header().Get("Location"); got != "https://advertiser.example/offer" {
		t.Errorf("Location = %q", got)
	}
}

func TestTrackStoreOutageStillRedirects(t *testing.T) {
	finder := &stubCampaignFinder{failWith: errors.New("connection refused")}
	r := newTrackRouter(finder, &recordingSink{})

	w := trackingGet(t, r, "aaaaaaa1")
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusFound)
	}
	if got := w.Header().Get("Location"); got != "https://landing.example/campaign-stop?reason=unavailable" {
		t.Errorf("Location = %q", got)
	}
}
