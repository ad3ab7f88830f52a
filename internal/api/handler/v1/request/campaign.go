package request

import (
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/onedrop-app/onedrop-api/internal/domain"
)

var errEndBeforeStart = errors.New("end_date must not be before start_date")

var bloodTypes = []any{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

var isDate = validation.By(func(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(domain.DateLayout, s); err != nil {
		return errors.New("must be a date in YYYY-MM-DD format")
	}
	return nil
})

type schedule struct {
	StartDate string `json:"start_date" example:"2024-06-01"`
	EndDate   string `json:"end_date" example:"2024-06-30"`
}

// Dates returns the parsed window. Call it after Validate.
func (s schedule) Dates() (time.Time, time.Time, error) {
	start, err := time.Parse(domain.DateLayout, s.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date: %w", domain.ErrInvalidInput, err)
	}
	end, err := time.Parse(domain.DateLayout, s.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end_date: %w", domain.ErrInvalidInput, err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %w", domain.ErrInvalidInput, errEndBeforeStart)
	}

	return start, end, nil
}

type RequestCampaignRequest struct {
	HospitalID        uint   `json:"hospital_id" example:"1"`
	RequiredBloodType string `json:"required_blood_type,omitempty" example:"A+"`
	Name              string `json:"name" example:"Blood for Ana"`
	Description       string `json:"description"`
	UnitsNeeded       int    `json:"units_needed" example:"3"`
	schedule
}

func (req *RequestCampaignRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.HospitalID, validation.Required),
		validation.Field(&req.RequiredBloodType, validation.In(bloodTypes...)),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&req.Description, validation.Length(0, 1000)),
		validation.Field(&req.UnitsNeeded, validation.Min(0)),
		validation.Field(&req.StartDate, validation.Required, isDate),
		validation.Field(&req.EndDate, validation.Required, isDate),
	)
	if err != nil {
		return err
	}

	_, _, err = req.Dates()
	return err
}

type CreateDriveRequest struct {
	EmphasisBloodType string `json:"emphasis_blood_type,omitempty" example:"O-"`
	Name              string `json:"name" example:"Summer drive"`
	Description       string `json:"description"`
	UnitsNeeded       int    `json:"units_needed" example:"40"`
	schedule
}

func (req *CreateDriveRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.EmphasisBloodType, validation.In(bloodTypes...)),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&req.Description, validation.Length(0, 1000)),
		validation.Field(&req.UnitsNeeded, validation.Min(0)),
		validation.Field(&req.StartDate, validation.Required, isDate),
		validation.Field(&req.EndDate, validation.Required, isDate),
	)
	if err != nil {
		return err
	}

	_, _, err = req.Dates()
	return err
}
