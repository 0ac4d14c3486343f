package cabin

import (
	"net/http"
	"studyhall/infras/otel"
	"studyhall/internal/domains/cabin/service"
	"studyhall/shared/constant"
	"studyhall/shared/validator"
	"studyhall/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Cabin
	otel    otel.Otel
}

func New(service service.Cabin, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/venues/{venueID}/cabins", handler.ListCabins)
	router.Get("/cabins/{id}", handler.GetCabin)
}

// ListCabins lists the physical cabins of a venue.
// @Summary List venue cabins
// @Description Cabin directory of a venue ordered by cabin number.
// @Tags Cabin
// @Produce json
// @Param venueID path string true "Venue ID"
// @Success 200 {object} response.Data[dto.ListCabinsResponse] "Cabins of the venue"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues/{venueID}/cabins [get]
func (handler *Handler) ListCabins(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ListCabins")
	defer scope.End()

	venueID := chi.URLParam(r, constant.RequestParamVenueID)
	if err := validator.ValidateVar(venueID, "required,uuid"); err != nil {
		response.WithError(w, err)

		return
	}

	cabins, err := handler.service.ListByVenue(ctx, venueID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("venue_id", venueID).Msg("failed to list cabins")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, cabins)
}

// GetCabin retrieves a cabin by its ID.
// @Summary Get a cabin by ID
// @Tags Cabin
// @Produce json
// @Param id path string true "Cabin ID"
// @Success 200 {object} response.Data[dto.CabinResponse] "Cabin details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cabins/{id} [get]
func (handler *Handler) GetCabin(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCabin")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	cabin, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get cabin by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, cabin)
}
