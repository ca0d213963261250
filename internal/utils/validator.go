package utils

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/selection-crew/selection-service/internal/models"
)

// Custom validation functions

func ValidateEducationStatus(fl validator.FieldLevel) bool {
	validStatuses := []models.EducationStatus{
		models.EducationGraduated,
		models.EducationFinalYear,
		models.EducationOther,
	}

	value := fl.Field().String()
	for _, validStatus := range validStatuses {
		if string(validStatus) == value {
			return true
		}
	}
	return false
}

func ValidateSelectionStatus(fl validator.FieldLevel) bool {
	validStatuses := []models.SelectionStatus{
		models.StatusSelected,
		models.StatusNotSelected,
	}

	value := fl.Field().String()
	for _, validStatus := range validStatuses {
		if string(validStatus) == value {
			return true
		}
	}
	return false
}

// RegisterCustomValidators registers all custom validators
func RegisterCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("education_status", ValidateEducationStatus)
	validate.RegisterValidation("selection_status", ValidateSelectionStatus)

	// Register custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// NewValidator returns a validator with the custom rules registered.
func NewValidator() *validator.Validate {
	validate := validator.New()
	RegisterCustomValidators(validate)
	return validate
}
