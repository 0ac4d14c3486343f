package availability

import (
	"net/http"
	"strconv"
	"studyhall/infras/otel"
	"studyhall/internal/domains/tracker"
	"studyhall/shared/constant"
	"studyhall/shared/failure"
	"studyhall/shared/validator"
	"studyhall/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	tracker tracker.Tracker
	otel    otel.Otel
}

func New(tracker tracker.Tracker, otel otel.Otel) Handler {
	return Handler{
		tracker: tracker,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	venue := router.With(validVenue)

	venue.Get("/venues/{venueID}/availability", handler.GetAvailability)
	venue.Post("/venues/{venueID}/availability/refresh", handler.RefreshAvailability)
	venue.Delete("/venues/{venueID}/availability", handler.ForgetVenue)
	venue.Get("/venues/{venueID}/mapping", handler.GetMapping)
}

func validVenue(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := validator.ValidateVar(chi.URLParam(r, constant.RequestParamVenueID), "required,uuid"); err != nil {
			response.WithError(w, err)

			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetAvailability returns cabin availability keyed by layout cabin id.
// @Summary Get venue availability
// @Description Starts tracking the venue on first use. Later booking changes refresh it in the background.
// @Tags Availability
// @Produce json
// @Param venueID path string true "Venue ID"
// @Success 200 {object} response.Data[tracker.Snapshot] "Availability snapshot"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues/{venueID}/availability [get]
func (handler *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	venueID := chi.URLParam(r, constant.RequestParamVenueID)

	snapshot, err := handler.tracker.Load(ctx, venueID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("venue_id", venueID).Msg("failed to load availability")

		// a snapshot with earlier entries is still worth showing
		if snapshot.Availability != nil {
			response.WithJSON(w, http.StatusOK, snapshot)

			return
		}

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, snapshot)
}

// RefreshAvailability derives availability again.
// @Summary Refresh venue availability
// @Tags Availability
// @Produce json
// @Param venueID path string true "Venue ID"
// @Param force query bool false "Rebuild the cabin mapping first"
// @Success 200 {object} response.Data[tracker.Snapshot] "Availability snapshot"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues/{venueID}/availability/refresh [post]
func (handler *Handler) RefreshAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshAvailability")
	defer scope.End()

	venueID := chi.URLParam(r, constant.RequestParamVenueID)

	force := false

	if raw := r.URL.Query().Get(constant.RequestParamForce); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			response.WithError(w, failure.BadRequestFromString("force must be a boolean"))

			return
		}

		force = parsed
	}

	snapshot, err := handler.tracker.Refresh(ctx, venueID, force)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("venue_id", venueID).Bool("force", force).Msg("failed to refresh availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, snapshot)
}

// GetMapping shows how layout cabins were matched to cabin rows.
// @Summary Get venue cabin mapping
// @Tags Availability
// @Produce json
// @Param venueID path string true "Venue ID"
// @Success 200 {object} response.Data[tracker.MappingView] "Mapping"
// @Failure 404 {object} response.Error
// @Router /v1/venues/{venueID}/mapping [get]
func (handler *Handler) GetMapping(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMapping")
	defer scope.End()

	venueID := chi.URLParam(r, constant.RequestParamVenueID)

	snapshot, err := handler.tracker.Snapshot(ctx, venueID)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, snapshot.MappingView())
}

// ForgetVenue stops tracking a venue.
// @Summary Stop tracking venue availability
// @Tags Availability
// @Produce json
// @Param venueID path string true "Venue ID"
// @Success 200 {object} response.Message
// @Router /v1/venues/{venueID}/availability [delete]
// @Security ApiKeyAuth
func (handler *Handler) ForgetVenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ForgetVenue")
	defer scope.End()

	venueID := chi.URLParam(r, constant.RequestParamVenueID)

	handler.tracker.Forget(ctx, venueID)

	response.WithMessage(w, http.StatusOK, "Venue is no longer tracked")
}
