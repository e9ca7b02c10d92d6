package records

import (
	"leadflow_backend/platform/phone"
	"leadflow_backend/platform/validator"

	playground "github.com/go-playground/validator/v10"
)

// RegisterValidations adds the pipeline's custom tags to val:
//
//	leadstatus  one of New, Interested, Converted, Closed
//	priority    one of Low, Medium, High
//	taskstatus  one of Pending, Done, Rescheduled
//	digits      ASCII digits only
func RegisterValidations(val *validator.Validator) error {
	rules := map[string]playground.Func{
		"leadstatus": func(fl playground.FieldLevel) bool {
			return LeadStatus(fl.Field().String()).Valid()
		},
		"priority": func(fl playground.FieldLevel) bool {
			return Priority(fl.Field().String()).Valid()
		},
		"taskstatus": func(fl playground.FieldLevel) bool {
			return TaskStatus(fl.Field().String()).Valid()
		},
		"digits": func(fl playground.FieldLevel) bool {
			return phone.IsDigits(fl.Field().String())
		},
	}
	for tag, fn := range rules {
		if err := val.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// NewValidator returns a validator with the pipeline tags registered.
func NewValidator() *validator.Validator {
	val := validator.New()
	if err := RegisterValidations(val); err != nil {
		panic("register validations: " + err.Error())
	}
	return val
}
