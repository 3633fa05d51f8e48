package cod

import (
	"net/http"

	"github.com/glow24organics/storefront-backend/api/middleware"
	"github.com/glow24organics/storefront-backend/api/responses"
	codsvc "github.com/glow24organics/storefront-backend/internal/cod"
	pkgerrors "github.com/glow24organics/storefront-backend/pkg/errors"
	"github.com/glow24organics/storefront-backend/pkg/logger"
)

// CODPreview returns the cash-on-delivery confirmation screen payload.
func CODPreview(svc codsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cod service unavailable"))
			return
		}

		sessionID, err := sessionIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		overview, err := svc.Preview(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, overview)
	}
}

// CODConfirm places the cash-on-delivery order.
func CODConfirm(svc codsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cod service unavailable"))
			return
		}

		sessionID, err := sessionIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		confirmation, err := svc.Confirm(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, confirmation)
	}
}

func sessionIDFromContext(r *http.Request) (string, error) {
	sessionID := middleware.SessionFromContext(r.Context())
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "checkout session not resolved")
	}
	return sessionID, nil
}
