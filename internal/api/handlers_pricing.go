package api

import (
	"errors"
	"net/http"

	"github.com/forgepoint/site-server/internal/pkg/httputil"
	"github.com/forgepoint/site-server/internal/pricing"
)

// handlePricingEstimate computes a quote for the visitor's selection.
// The same tables drive the server-rendered pricing page, so the numbers
// here always match what the page shows.
func (s *Server) handlePricingEstimate(w http.ResponseWriter, r *http.Request) {
	var sel pricing.Selection
	if !httputil.Decode(w, r, &sel) {
		return
	}

	est, err := s.library.Pricing.Estimate(sel)
	if err != nil {
		var verr *pricing.ValidationError
		if errors.As(err, &verr) {
			httputil.BadRequest(w, verr.Error())
			return
		}
		httputil.InternalError(w, err)
		return
	}

	httputil.OK(w, est)
}
