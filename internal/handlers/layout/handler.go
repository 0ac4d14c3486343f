package layout

import (
	"net/http"
	"studyhall/infras/otel"
	"studyhall/internal/domains/layout/model/dto"
	"studyhall/internal/domains/layout/service"
	"studyhall/shared/constant"
	"studyhall/shared/validator"
	"studyhall/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Layout
	otel    otel.Otel
}

func New(service service.Layout, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/venues/{venueID}/layout", handler.GetLayout)
	router.Put("/venues/{venueID}/layout", handler.SaveLayout)
}

// GetLayout returns the stored layout document of a venue.
// @Summary Get venue layout
// @Tags Layout
// @Produce json
// @Param venueID path string true "Venue ID"
// @Success 200 {object} response.Data[dto.LayoutResponse] "Layout"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues/{venueID}/layout [get]
func (handler *Handler) GetLayout(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLayout")
	defer scope.End()

	venueID := chi.URLParam(r, constant.RequestParamVenueID)

	layout, err := handler.service.Get(ctx, venueID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("venue_id", venueID).Msg("failed to get layout")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, layout)
}

// SaveLayout replaces the layout document of a venue.
// @Summary Replace venue layout
// @Description Stores the layout. A tracked venue rebuilds its cabin mapping.
// @Tags Layout
// @Accept json
// @Produce json
// @Param venueID path string true "Venue ID"
// @Param request body dto.SaveLayoutRequest true "Layout"
// @Success 200 {object} response.Data[dto.LayoutResponse] "Stored layout"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues/{venueID}/layout [put]
// @Security ApiKeyAuth
func (handler *Handler) SaveLayout(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SaveLayout")
	defer scope.End()

	venueID := chi.URLParam(r, constant.RequestParamVenueID)
	if err := validator.ValidateVar(venueID, "required,uuid"); err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.SaveLayoutRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate layout")

		response.WithError(w, err)

		return
	}

	layout, err := handler.service.Save(ctx, venueID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("venue_id", venueID).Msg("failed to save layout")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Layout replaced")

	response.WithJSON(w, http.StatusOK, layout)
}
