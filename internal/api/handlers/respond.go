package handlers

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/rohits-web03/sharevault/internal/api/middleware"
	"github.com/rohits-web03/sharevault/internal/apperrors"
	"github.com/rohits-web03/sharevault/internal/models"
	"github.com/rohits-web03/sharevault/internal/utils"
)

// respondError writes err as the error body, mapping its kind to a status.
// The cause is logged but never sent to the client.
func respondError(w http.ResponseWriter, l *log.Entry, err error) {
	kind := apperrors.KindOf(err)
	status := apperrors.HTTPStatus(kind)
	if status >= http.StatusInternalServerError {
		l.WithError(err).Error("request failed")
	} else {
		l.WithError(err).Debug("request rejected")
	}
	utils.JSONResponse(w, status, utils.Payload{
		Success: false,
		Kind:    string(kind),
		Message: apperrors.MessageOf(err),
	})
}

func badRequest(w http.ResponseWriter, message string) {
	utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
		Success: false,
		Kind:    string(apperrors.KindInvalidArgument),
		Message: message,
	})
}

// requireIdentity returns the caller set by the auth middleware and writes a
// 401 when there is none.
func requireIdentity(w http.ResponseWriter, r *http.Request) (models.Identity, bool) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
			Success: false,
			Kind:    "unauthorized",
			Message: "Access denied. No token provided.",
		})
	}
	return id, ok
}
