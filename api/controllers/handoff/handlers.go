package handoff

import (
	"net/http"

	"github.com/glow24organics/storefront-backend/api/middleware"
	"github.com/glow24organics/storefront-backend/api/responses"
	handoffsvc "github.com/glow24organics/storefront-backend/internal/handoff"
	pkgerrors "github.com/glow24organics/storefront-backend/pkg/errors"
	"github.com/glow24organics/storefront-backend/pkg/logger"
)

// HandoffCompose renders the WhatsApp order message and deep link for the
// session's submitted checkout.
func HandoffCompose(svc handoffsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "handoff service unavailable"))
			return
		}

		sessionID := middleware.SessionFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout session not resolved"))
			return
		}

		composed, err := svc.Compose(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, composed)
	}
}
