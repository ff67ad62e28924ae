package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/weinhaus/storefront/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

var statusLabels = map[domain.OrderStatus]string{
	domain.StatusNew:       "neu",
	domain.StatusPicking:   "in Kommissionierung",
	domain.StatusPaid:      "bezahlt",
	domain.StatusCancelled: "storniert",
}

var transitionVerbs = map[domain.OrderStatus]string{
	domain.StatusPicking:   "kommissioniert",
	domain.StatusPaid:      "als bezahlt markiert",
	domain.StatusCancelled: "storniert",
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain errors to status codes and German messages.
//   - Logs backend and unexpected errors without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var te *domain.TransitionError
	if errors.As(err, &te) {
		return http.StatusConflict, transitionMessage(te)
	}

	switch {
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "Nicht angemeldet."
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden, "Keine Berechtigung für diese Aktion."
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound, "Bestellung nicht gefunden."
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "Benutzer nicht gefunden."
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "E-Mail oder Passwort ist falsch."
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "Ein Konto mit dieser E-Mail existiert bereits."
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusUnprocessableEntity, inputDetail(err)
	case errors.Is(err, domain.ErrFlowFailed):
		log.Warn().Err(err).Str("path", c.Path()).Msg("flow invocation failed")
		return http.StatusBadGateway, "Der Sommelier ist gerade nicht erreichbar."
	case errors.Is(err, domain.ErrBackend):
		log.Error().Err(err).Str("method", c.Request().Method).Str("path", c.Path()).Msg("backend unavailable")
		return http.StatusServiceUnavailable, "Der Dienst ist vorübergehend nicht verfügbar."
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Interner Fehler."
}

func transitionMessage(te *domain.TransitionError) string {
	if errors.Is(te.Err, domain.ErrAlreadyDone) {
		switch te.Target {
		case domain.StatusPaid:
			return "Bestellung ist bereits bezahlt."
		case domain.StatusCancelled:
			return "Bestellung ist bereits storniert."
		default:
			return "Bestellung ist bereits in Kommissionierung."
		}
	}

	verb, ok := transitionVerbs[te.Target]
	if !ok {
		verb = "geändert"
	}
	label, ok := statusLabels[te.Current]
	if !ok {
		label = string(te.Current)
	}
	return fmt.Sprintf("Bestellung kann nicht %s werden: aktueller Status ist „%s“.", verb, label)
}

// inputDetail strips the sentinel prefix so only the validation detail is shown.
func inputDetail(err error) string {
	msg := err.Error()
	prefix := domain.ErrInvalidInput.Error() + ": "
	if i := strings.Index(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return "Ungültige Eingabe."
}
