package services

import (
	"strings"
	"testing"

	"github.com/formteam/formtrack-backend/internal/models"
	"github.com/formteam/formtrack-backend/internal/tracking"

	"gorm.io/gorm"
)

// stubCampaignStore is an in-memory CampaignStore. Codes listed in taken
// report as existing; failInserts makes the first N Create/UpdateTrackingCode
// calls fail with a duplicate-key error to simulate a lost insert race.
type stubCampaignStore struct {
	campaigns   map[uint]*models.Campaign
	taken       map[string]bool
	failInserts int
	nextID      uint
	clickCount  int64
	attempted   []string
}

func newStubCampaignStore() *stubCampaignStore {
	return &stubCampaignStore{
		campaigns: make(map[uint]*models.Campaign),
		taken:     make(map[string]bool),
	}
}

func (s *stubCampaignStore) Create(campaign *models.Campaign) error {
	if campaign.TrackingCode != nil {
		s.attempted = append(s.attempted, *campaign.TrackingCode)
	}
	if s.failInserts > 0 {
		s.failInserts--
		return gorm.ErrDuplicatedKey
	}
	s.nextID++
	campaign.ID = s.nextID
	s.campaigns[campaign.ID] = campaign
	if campaign.TrackingCode != nil {
		s.taken[*campaign.TrackingCode] = true
	}
	return nil
}

func (s *stubCampaignStore) TrackingCodeExists(code string) (bool, error) {
	return s.taken[code], nil
}

func (s *stubCampaignStore) GetByOwnerID(ownerID string) ([]*models.Campaign, error) {
	var out []*models.Campaign
	for _, c := range s.campaigns {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *stubCampaignStore) GetByOwnerIDAndID(ownerID string, campaignID uint) (*models.Campaign, error) {
	c, ok := s.campaigns[campaignID]
	if !ok || c.OwnerID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (s *stubCampaignStore) Update(campaign *models.Campaign) error {
	s.campaigns[campaign.ID] = campaign
	return nil
}

func (s *stubCampaignStore) UpdateTrackingCode(campaignID uint, code string) error {
	if s.failInserts > 0 {
		s.failInserts--
		return gorm.ErrDuplicatedKey
	}
	c, ok := s.campaigns[campaignID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if c.TrackingCode != nil {
		delete(s.taken, *c.TrackingCode)
	}
	c.TrackingCode = &code
	s.taken[code] = true
	return nil
}

func (s *stubCampaignStore) DeleteByOwnerIDAndID(ownerID string, campaignID uint) error {
	c, ok := s.campaigns[campaignID]
	if !ok || c.OwnerID != ownerID {
		return gorm.ErrRecordNotFound
	}
	delete(s.campaigns, campaignID)
	return nil
}

func (s *stubCampaignStore) CountClicks(campaignID uint) (int64, error) {
	return s.clickCount, nil
}

type stubClickReader struct {
	logs []*models.ClickLog
}

func (s *stubClickReader) GetByCampaignID(campaignID uint, limit int) ([]*models.ClickLog, error) {
	var out []*models.ClickLog
	for _, l := range s.logs {
		if l.CampaignID == campaignID {
			out = append(out, l)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func newTestCampaignService(store *stubCampaignStore) *CampaignService {
	return NewCampaignService(store, &stubClickReader{}, tracking.NewSeededGenerator(7), "https://api.example.test")
}

func TestCreateCampaignAssignsTrackingCode(t *testing.T) {
	store := newStubCampaignStore()
	svc := newTestCampaignService(store)

	resp, err := svc.CreateCampaign("owner-1", &models.CreateCampaignRequest{
		Name:     "Summer Promo",
		OfferURL: "https://advertiser.example/offer",
	})
	if err != nil {
		t.Fatalf("CreateCampaign failed: %v", err)
	}

	if len(resp.TrackingCode) != tracking.TrackingCodeLength {
		t.Errorf("tracking code %q has length %d, want %d", resp.TrackingCode, len(resp.TrackingCode), tracking.TrackingCodeLength)
	}
	if resp.Status != "active" {
		t.Errorf("default status = %q, want active", resp.Status)
	}
	if resp.Currency != "USD" {
		t.Errorf("default currency = %q, want USD", resp.Currency)
	}
	want := "https://api.example.test/track/" + resp.TrackingCode
	if resp.TrackingURL != want {
		t.Errorf("tracking URL = %q, want %q", resp.TrackingURL, want)
	}
}

func TestCreateCampaignRetriesLostInsertRace(t *testing.T) {
	store := newStubCampaignStore()
	store.failInserts = 1
	svc := newTestCampaignService(store)

	resp, err := svc.CreateCampaign("owner-1", &models.CreateCampaignRequest{
		Name:     "Racy",
		OfferURL: "https://advertiser.example/offer",
	})
	if err != nil {
		t.Fatalf("CreateCampaign failed after one duplicate-key error: %v", err)
	}
	if resp.TrackingCode == "" {
		t.Fatal("expected a tracking code after retry")
	}
	if len(store.attempted) != 2 {
		t.Fatalf("made %d insert attempts, want 2", len(store.attempted))
	}
	if store.attempted[0] == store.attempted[1] {
		t.Errorf("retry reused the colliding code %q", store.attempted[0])
	}
	if resp.TrackingCode != store.attempted[1] {
		t.Errorf("final code %q is not the retried one %q", resp.TrackingCode, store.attempted[1])
	}
}

func TestCreateCampaignGivesUpAfterRepeatedCollisions(t *testing.T) {
	store := newStubCampaignStore()
	store.failInserts = 2
	svc := newTestCampaignService(store)

	_, err := svc.CreateCampaign("owner-1", &models.CreateCampaignRequest{
		Name:     "Doomed",
		OfferURL: "https://advertiser.example/offer",
	})
	if err == nil {
		t.Fatal("expected an error when every insert collides")
	}
}

func TestCreateCampaignStatusValidation(t *testing.T) {
	tests := []struct {
		status  string
		wantErr bool
		want    string
	}{
		{"", false, "active"},
		{"draft", false, "draft"},
		{"Active", false, "active"},
		{"stop", true, ""},
		{"expire", true, ""},
		{"paused", true, ""},
	}

	for _, tt := range tests {
		store := newStubCampaignStore()
		svc := newTestCampaignService(store)

		resp, err := svc.CreateCampaign("owner-1", &models.CreateCampaignRequest{
			Name:     "Promo",
			Status:   tt.status,
			OfferURL: "https://advertiser.example/offer",
		})
		if tt.wantErr {
			if err == nil {
				t.Errorf("status %q: expected an error", tt.status)
			} else if !strings.Contains(err.Error(), "invalid campaign status") {
				// The HTTP layer keys its 400 mapping off this phrase.
				t.Errorf("status %q: error %q lacks the validation marker", tt.status, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("status %q: unexpected error: %v", tt.status, err)
			continue
		}
		if resp.Status != tt.want {
			t.Errorf("status %q: stored as %q, want %q", tt.status, resp.Status, tt.want)
		}
	}
}

func TestUpdateCampaignNormalizesStatusCasing(t *testing.T) {
	store := newStubCampaignStore()
	svc := newTestCampaignService(store)

	created, err := svc.CreateCampaign("owner-1", &models.CreateCampaignRequest{
		Name:     "Promo",
		OfferURL: "https://advertiser.example/offer",
	})
	if err != nil {
		t.Fatalf("CreateCampaign failed: %v", err)
	}

	status := " Stop "
	updated, err := svc.UpdateCampaign("owner-1", created.ID, &models.UpdateCampaignRequest{Status: &status})
	if err != nil {
		t.Fatalf("UpdateCampaign failed: %v", err)
	}
	if updated.Status != "stop" {
		t.Errorf("status = %q, want stop", updated.Status)
	}
	if store.campaigns[created.ID].Status != models.StatusStop {
		t.Errorf("persisted status = %q, want stop", store.campaigns[created.ID].Status)
	}
}

func TestUpdateCampaignRejectsUnknownStatus(t *testing.T) {
	store := newStubCampaignStore()
	svc := newTestCampaignService(store)

	created, err := svc.CreateCampaign("owner-1", &models.CreateCampaignRequest{
		Name:     "Promo",
		OfferURL: "https://advertiser.example/offer",
	})
	if err != nil {
		t.Fatalf("CreateCampaign failed: %v", err)
	}

	status := "paused"
	if _, err := svc.UpdateCampaign("owner-1", created.ID, &models.UpdateCampaignRequest{Status: &status}); err == nil {
		t.Fatal("expected an error for unknown status")
	}
	if store.campaigns[created.ID].Status != models.StatusActive {
		t.Errorf("status changed to %q despite rejected update", store.campaigns[created.ID].Status)
	}
}

func TestUpdateCampaignEnforcesOwnership(t *testing.T) {
	store := newStubCampaignStore()
	svc := newTestCampaignService(store)

	created, err := svc.CreateCampaign("owner-1", &models.CreateCampaignRequest{
		Name:     "Promo",
		OfferURL: "https://advertiser.example/offer",
	})
	if err != nil {
		t.Fatalf("CreateCampaign failed: %v", err)
	}

	name := "hijacked"
	_, err = svc.UpdateCampaign("owner-2", created.ID, &models.UpdateCampaignRequest{Name: &name})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found for foreign owner, got %v", err)
	}
}

func TestRegenerateTrackingCodeReplacesOldCode(t *testing.T) {
	store := newStubCampaignStore()
	svc := newTestCampaignService(store)

	created, err := svc.CreateCampaign("owner-1", &models.CreateCampaignRequest{
		Name:     "Promo",
		OfferURL: "https://advertiser.example/offer",
	})
	if err != nil {
		t.Fatalf("CreateCampaign failed: %v", err)
	}

	regenerated, err := svc.RegenerateTrackingCode("owner-1", created.ID)
	if err != nil {
		t.Fatalf("RegenerateTrackingCode failed: %v", err)
	}
	if regenerated.TrackingCode == created.TrackingCode {
		t.Error("regenerated code equals the old code")
	}
	if store.taken[created.TrackingCode] {
		t.Error("old tracking code still resolves after regeneration")
	}
}

func TestGetClicksEnforcesOwnership(t *testing.T) {
	store := newStubCampaignStore()
	reader := &stubClickReader{}
	svc := NewCampaignService(store, reader, tracking.NewSeededGenerator(7), "https://api.example.test")

	created, err := svc.CreateCampaign("owner-1", &models.CreateCampaignRequest{
		Name:     "Promo",
		OfferURL: "https://advertiser.example/offer",
	})
	if err != nil {
		t.Fatalf("CreateCampaign failed: %v", err)
	}
	reader.logs = []*models.ClickLog{
		{ID: 1, CampaignID: created.ID, IPAddress: "10.0.0.9"},
		{ID: 2, CampaignID: created.ID, IPAddress: "10.0.0.10"},
	}

	if _, err := svc.GetClicks("owner-2", created.ID, 10); err == nil {
		t.Fatal("expected not found for foreign owner")
	}

	clicks, err := svc.GetClicks("owner-1", created.ID, 1)
	if err != nil {
		t.Fatalf("GetClicks failed: %v", err)
	}
	if len(clicks) != 1 {
		t.Errorf("got %d clicks with limit 1, want 1", len(clicks))
	}
}

func TestDeleteCampaignNotFound(t *testing.T) {
	store := newStubCampaignStore()
	svc := newTestCampaignService(store)

	err := svc.DeleteCampaign("owner-1", 99)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found, got %v", err)
	}
}
