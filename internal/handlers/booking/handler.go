package booking

import (
	"net/http"
	"studyhall/infras/otel"
	"studyhall/internal/domains/booking/model"
	"studyhall/internal/domains/booking/model/dto"
	"studyhall/internal/domains/booking/service"
	"studyhall/shared/constant"
	gDto "studyhall/shared/dto"
	"studyhall/shared/validator"
	"studyhall/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// filterParams are the query parameters that narrow a booking listing, by column.
var filterParams = []string{model.FieldCabinID, model.FieldStatus, model.FieldPaymentStatus}

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(bookings chi.Router) {
		bookings.Post("/", handler.CreateBooking)
		bookings.Get("/", handler.GetBookings)

		bookings.Route("/{id}", func(booking chi.Router) {
			booking.Use(validBookingID)

			booking.Get("/", handler.GetBookingByID)
			booking.Patch("/", handler.UpdateBooking)
			booking.Delete("/", handler.DeleteBooking)
		})
	})
}

func validBookingID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := validator.ValidateVar(chi.URLParam(r, constant.RequestParamID), "required,uuid"); err != nil {
			response.WithError(w, err)

			return
		}

		next.ServeHTTP(w, r)
	})
}

func actorOf(r *http.Request) string {
	actor, _ := r.Context().Value(constant.ContextKeyUserID).(string)

	return actor
}

func fail(w http.ResponseWriter, scope otel.Scope, err error, msg string) {
	scope.TraceError(err)
	log.Error().Err(err).Msg(msg)

	response.WithError(w, err)
}

// CreateBooking records a booking for a cabin.
// @Summary Create a booking
// @Description The venue of the cabin is notified of the change.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Booking"
// @Success 201 {object} response.Data[dto.BookingResponse] "Booking created"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security ApiKeyAuth
func (handler *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	var req dto.CreateBookingRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, err, "invalid booking request")

		return
	}

	booking, err := handler.service.Create(ctx, req)
	if err != nil {
		fail(w, scope, err, "failed to create booking")

		return
	}

	scope.SetAttributes(map[string]any{"booking.id": booking.ID, "http.actor": actorOf(r)})

	response.WithJSON(w, http.StatusCreated, booking)
}

// GetBookings lists bookings.
// @Summary List bookings
// @Description Paginated listing, optionally narrowed by cabin, status and payment status.
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param cabin_id query string false "Cabin ID"
// @Param status query string false "active, pending, cancelled or completed"
// @Param payment_status query string false "paid, pending or failed"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "Bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	var params gDto.QueryParams

	params.FromRequest(r, true)
	params.RestrictSort(model.SortableFields()...)

	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	query := r.URL.Query()
	for _, field := range filterParams {
		if value := query.Get(field); value != "" {
			filter.Filters = append(filter.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	bookings, err := handler.service.GetAll(ctx, params, filter)
	if err != nil {
		fail(w, scope, err, "failed to list bookings")

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingByID returns one booking.
// @Summary Get a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	booking, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		fail(w, scope, err, "failed to get booking")

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// UpdateBooking changes dates, status or payment status of a booking.
// @Summary Update a booking
// @Description Only the fields present in the body change. The venue of the cabin is notified.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateBookingRequest true "Changes"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [patch]
// @Security ApiKeyAuth
func (handler *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBooking")
	defer scope.End()

	var req dto.UpdateBookingRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, err, "invalid booking update")

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Update(ctx, req, id); err != nil {
		fail(w, scope, err, "failed to update booking")

		return
	}

	scope.SetAttributes(map[string]any{"booking.id": id, "http.actor": actorOf(r)})

	response.WithMessage(w, http.StatusOK, "Booking updated")
}

// DeleteBooking removes a booking.
// @Summary Delete a booking
// @Description The venue of the cabin is notified of the change.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [delete]
// @Security ApiKeyAuth
func (handler *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		fail(w, scope, err, "failed to delete booking")

		return
	}

	scope.SetAttributes(map[string]any{"booking.id": id, "http.actor": actorOf(r)})

	response.WithMessage(w, http.StatusOK, "Booking deleted")
}
