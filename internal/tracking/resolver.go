package tracking

import (
	"errors"

	"github.com/formteam/formtrack-backend/internal/models"

	"gorm.io/gorm"
)

// Outcome classifies a tracking-code resolution
type Outcome int

const (
	// OutcomeMalformed means the code failed shape validation; no query is made
	OutcomeMalformed Outcome = iota
	// OutcomeNotFound means no campaign has this tracking code
	OutcomeNotFound
	// OutcomeRedirect means the campaign is active and traffic flows to the offer
	OutcomeRedirect
	// OutcomeStopped means the campaign status is stop
	OutcomeStopped
	// OutcomeExpired means the campaign status is expire
	OutcomeExpired
	// OutcomeUnavailable covers every other status (e.g. draft) and
	// persistence failures on the redirect path
	OutcomeUnavailable
)

// String returns the landing-page reason for the outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeMalformed:
		return "invalid"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeRedirect:
		return "redirect"
	case OutcomeStopped:
		return "stop"
	case OutcomeExpired:
		return "expire"
	}
	return "unavailable"
}

// Resolution is the result of resolving one tracking code
type Resolution struct {
	Outcome    Outcome
	TargetURL  string // offer URL, only set for OutcomeRedirect
	CampaignID uint   // owning campaign, zero when no row matched
}

// CampaignFinder looks up a campaign by its tracking code. Implementations
// must match case-sensitively and return gorm.ErrRecordNotFound on a miss.
type CampaignFinder interface {
	FindByTrackingCode(code string) (*models.Campaign, error)
}

// Resolver classifies tracking codes into redirect outcomes. It is a pure
// read-time classifier: every request re-reads the campaign row, so an owner's
// status change takes effect on the very next resolve.
type Resolver struct {
	campaigns CampaignFinder
}

// NewResolver creates a resolver over the given campaign lookup
func NewResolver(campaigns CampaignFinder) *Resolver {
	return &Resolver{campaigns: campaigns}
}

// Resolve maps a tracking code to a redirect outcome. It never returns an
// error: persistence failures degrade to OutcomeUnavailable so the redirect
// path can always answer with a redirect.
func (r *Resolver) Resolve(code string) (Resolution, error) {
	if !ValidTrackingCode(code) {
		return Resolution{Outcome: OutcomeMalformed}, nil
	}

	campaign, err := r.campaigns.FindByTrackingCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Resolution{Outcome: OutcomeNotFound}, nil
		}
		return Resolution{Outcome: OutcomeUnavailable}, err
	}

	switch campaign.Status {
	case models.StatusActive:
		return Resolution{
			Outcome:    OutcomeRedirect,
			TargetURL:  campaign.OfferURL,
			CampaignID: campaign.ID,
		}, nil
	case models.StatusStop:
		return Resolution{Outcome: OutcomeStopped, CampaignID: campaign.ID}, nil
	case models.StatusExpire:
		return Resolution{Outcome: OutcomeExpired, CampaignID: campaign.ID}, nil
	}
	return Resolution{Outcome: OutcomeUnavailable, CampaignID: campaign.ID}, nil
}
