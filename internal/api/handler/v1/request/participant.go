package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type RegisterHospitalRequest struct {
	Name string `json:"name" example:"Hospital Central"`
}

func (req *RegisterHospitalRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 120)),
	)
}

type RegisterDonorRequest struct {
	Name      string `json:"name" example:"Luis"`
	BloodType string `json:"blood_type" example:"O-"`
}

func (req *RegisterDonorRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&req.BloodType, validation.Required, validation.In(bloodTypes...)),
	)
}

type RegisterBeneficiaryRequest struct {
	Name              string `json:"name" example:"Ana"`
	RequiredBloodType string `json:"required_blood_type" example:"A+"`
	Urgency           string `json:"urgency,omitempty" example:"high"`
}

func (req *RegisterBeneficiaryRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&req.RequiredBloodType, validation.Required, validation.In(bloodTypes...)),
		validation.Field(&req.Urgency, validation.In("low", "medium", "high")),
	)
}
