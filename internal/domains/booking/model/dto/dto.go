package dto

import (
	"studyhall/internal/domains/booking/model"
	"studyhall/shared"
	gDto "studyhall/shared/dto"
	gModel "studyhall/shared/model"
	"studyhall/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	CabinID       string `json:"cabin_id"       validate:"required,uuid"`
	StartDate     string `json:"start_date"     validate:"required,dateonly"`
	EndDate       string `json:"end_date"       validate:"required,dateonly"`
	Status        string `json:"status"         validate:"omitempty,oneof=active pending cancelled completed"`
	PaymentStatus string `json:"payment_status" validate:"omitempty,oneof=paid pending failed"`
}

func (c *CreateBookingRequest) ToModel(user string) (model.Booking, error) {
	startDate, err := timezone.ParseDate(c.StartDate)
	if err != nil {
		return model.Booking{}, err
	}

	endDate, err := timezone.ParseDate(c.EndDate)
	if err != nil {
		return model.Booking{}, err
	}

	status := model.StatusPending
	if c.Status != "" {
		status = c.Status
	}

	paymentStatus := model.PaymentPending
	if c.PaymentStatus != "" {
		paymentStatus = c.PaymentStatus
	}

	return model.Booking{
		ID:            uuid.NewString(),
		CabinID:       c.CabinID,
		StartDate:     startDate,
		EndDate:       endDate,
		Status:        status,
		PaymentStatus: paymentStatus,
		Metadata:      gModel.NewMetadata(user, timezone.Now()),
	}, nil
}

type UpdateBookingRequest struct {
	StartDate     string `db:"start_date"     json:"start_date"     validate:"omitempty,dateonly"`
	EndDate       string `db:"end_date"       json:"end_date"       validate:"omitempty,dateonly"`
	Status        string `db:"status"         json:"status"         validate:"omitempty,oneof=active pending cancelled completed"`
	PaymentStatus string `db:"payment_status" json:"payment_status" validate:"omitempty,oneof=paid pending failed"`
}

type BookingResponse struct {
	ID            string `json:"id"`
	CabinID       string `json:"cabin_id"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.CabinID = model.CabinID
	r.StartDate = timezone.FormatDate(model.StartDate)
	r.EndDate = timezone.FormatDate(model.EndDate)
	r.Status = model.Status
	r.PaymentStatus = model.PaymentStatus
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
