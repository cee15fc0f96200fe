package dto

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateCreateRequest validates a create payload against its rules
func ValidateCreateRequest(req *CreatePokemonRequest) error {
	return validate.Struct(req)
}

// ValidateUpdateRequest validates a partial update payload
func ValidateUpdateRequest(req *UpdatePokemonRequest) error {
	return validate.Struct(req)
}

// ValidateApplyItemRequest validates an apply-item payload
func ValidateApplyItemRequest(req *ApplyItemRequest) error {
	return validate.Struct(req)
}
