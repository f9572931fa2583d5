package tracking

import (
	"errors"
	"testing"

	"github.com/formteam/formtrack-backend/internal/models"

	"gorm.io/gorm"
)

type stubCampaignFinder struct {
	campaigns map[string]*models.Campaign
	err       error
	queries   int
}

func (s *stubCampaignFinder) FindByTrackingCode(code string) (*models.Campaign, error) {
	s.queries++
	if s.err != nil {
		return nil, s.err
	}
	if c, ok := s.campaigns[code]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func campaignWithStatus(id uint, status models.CampaignStatus) *models.Campaign {
	return &models.Campaign{
		ID:       id,
		Name:     "Status Test Campaign",
		Status:   status,
		OfferURL: "https://advertiser.example/offer?x=1",
	}
}

func TestResolveStatusMachine(t *testing.T) {
	finder := &stubCampaignFinder{campaigns: map[string]*models.Campaign{
		"activeC1": campaignWithStatus(1, models.StatusActive),
		"stoppedC": campaignWithStatus(2, models.StatusStop),
		"expiredC": campaignWithStatus(3, models.StatusExpire),
		"draftCod": campaignWithStatus(4, models.StatusDraft),
	}}
	r := NewResolver(finder)

	cases := []struct {
		name       string
		code       string
		outcome    Outcome
		target     string
		campaignID uint
	}{
		{"active redirects to offer", "activeC1", OutcomeRedirect, "https://advertiser.example/offer?x=1", 1},
		{"stop", "stoppedC", OutcomeStopped, "", 2},
		{"expire", "expiredC", OutcomeExpired, "", 3},
		{"draft is unavailable", "draftCod", OutcomeUnavailable, "", 4},
		{"unknown code", "zzzzzzzz", OutcomeNotFound, "", 0},
		{"empty code", "", OutcomeMalformed, "", 0},
		{"wrong length", "abc", OutcomeMalformed, "", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, _ := r.Resolve(tc.code)
			if res.Outcome != tc.outcome {
				t.Fatalf("outcome = %v, want %v", res.Outcome, tc.outcome)
			}
			if res.TargetURL != tc.target {
				t.Fatalf("target = %q, want %q", res.TargetURL, tc.target)
			}
			if res.CampaignID != tc.campaignID {
				t.Fatalf("campaign id = %d, want %d", res.CampaignID, tc.campaignID)
			}
		})
	}
}

func TestResolveMalformedSkipsLookup(t *testing.T) {
	finder := &stubCampaignFinder{}
	r := NewResolver(finder)

	r.Resolve("")
	r.Resolve("nope")
	r.Resolve("bad char!")

	if finder.queries != 0 {
		t.Fatalf("malformed codes must not query persistence, got %d queries", finder.queries)
	}
}

func TestResolveIsCaseSensitive(t *testing.T) {
	finder := &stubCampaignFinder{campaigns: map[string]*models.Campaign{
		"AbCdEfGh": campaignWithStatus(9, models.StatusActive),
	}}
	r := NewResolver(finder)

	res, _ := r.Resolve("abcdefgh")
	if res.Outcome != OutcomeNotFound {
		t.Fatalf("lookup must be exact-match, got %v", res.Outcome)
	}
}

func TestResolveIdempotent(t *testing.T) {
	finder := &stubCampaignFinder{campaigns: map[string]*models.Campaign{
		"activeC1": campaignWithStatus(1, models.StatusActive),
	}}
	r := NewResolver(finder)

	first, _ := r.Resolve("activeC1")
	second, _ := r.Resolve("activeC1")
	if first != second {
		t.Fatalf("resolving twice gave %+v then %+v", first, second)
	}
}

func TestResolveSeesStatusChangeImmediately(t *testing.T) {
	campaign := campaignWithStatus(5, models.StatusActive)
	finder := &stubCampaignFinder{campaigns: map[string]*models.Campaign{"liveCode": campaign}}
	r := NewResolver(finder)

	if res, _ := r.Resolve("liveCode"); res.Outcome != OutcomeRedirect {
		t.Fatalf("expected redirect before the owner stops the campaign, got %v", res.Outcome)
	}

	campaign.Status = models.StatusStop

	if res, _ := r.Resolve("liveCode"); res.Outcome != OutcomeStopped {
		t.Fatalf("status change must take effect on the next resolve, got %v", res.Outcome)
	}
}

func TestResolveDegradesWhenStoreIsDown(t *testing.T) {
	finder := &stubCampaignFinder{err: errors.New("connection refused")}
	r := NewResolver(finder)

	res, err := r.Resolve("aB3xYz91")
	if res.Outcome != OutcomeUnavailable {
		t.Fatalf("persistence failure must degrade to unavailable, got %v", res.Outcome)
	}
	if err == nil {
		t.Fatal("expected the underlying error to be reported for logging")
	}
}

func TestRedirectTarget(t *testing.T) {
	landing := "https://forms.example"

	cases := []struct {
		name string
		res  Resolution
		want string
	}{
		{"active goes to offer verbatim", Resolution{Outcome: OutcomeRedirect, TargetURL: "https://advertiser.example/offer?x=1"}, "https://advertiser.example/offer?x=1"},
		{"stopped", Resolution{Outcome: OutcomeStopped}, "https://forms.example/campaign-stop?reason=stop"},
		{"expired", Resolution{Outcome: OutcomeExpired}, "https://forms.example/campaign-stop?reason=expire"},
		{"not found", Resolution{Outcome: OutcomeNotFound}, "https://forms.example/campaign-stop?reason=not_found"},
		{"malformed", Resolution{Outcome: OutcomeMalformed}, "https://forms.example/campaign-stop?reason=invalid"},
		{"unavailable", Resolution{Outcome: OutcomeUnavailable}, "https://forms.example/campaign-stop?reason=unavailable"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RedirectTarget(tc.res, landing); got != tc.want {
				t.Fatalf("RedirectTarget = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRedirectTargetTrimsTrailingSlash(t *testing.T) {
	got := RedirectTarget(Resolution{Outcome: OutcomeStopped}, "https://forms.example/")
	if got != "https://forms.example/campaign-stop?reason=stop" {
		t.Fatalf("got %q", got)
	}
}
