package tracking

import (
	"strings"
)

// stopPagePath is the front-end route that renders the human-readable
// explanation for a non-live campaign link
const stopPagePath = "/campaign-stop"

// RedirectTarget maps a resolution to the Location of the 302 response.
// Active campaigns go to the offer URL verbatim; every other outcome goes to
// the external landing page with a reason query parameter.
func RedirectTarget(res Resolution, landingBaseURL string) string {
	if res.Outcome == OutcomeRedirect {
		return res.TargetURL
	}
	base := strings.TrimRight(landingBaseURL, "/")
	return base + stopPagePath + "?reason=" + res.Outcome.String()
}
