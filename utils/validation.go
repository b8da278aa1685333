package utils

import (
	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

var Validate = validator.New()

type validationError struct {
	ActualTag string `json:"tag"`
	Namespace string `json:"namespace"`
	Kind      string `json:"kind"`
	Type      string `json:"type"`
	Value     any    `json:"value"`
	Param     string `json:"param"`
}

// HandleValidationErrors maps a ReadJSON/validator failure to a 400 with
// field-level details, or to a generic 400 for malformed JSON.
func HandleValidationErrors(err error, ctx iris.Context) {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := make([]validationError, 0, len(errs))
		for _, fieldErr := range errs {
			details = append(details, validationError{
				ActualTag: fieldErr.ActualTag(),
				Namespace: fieldErr.Namespace(),
				Kind:      fieldErr.Kind().String(),
				Type:      fieldErr.Type().String(),
				Value:     fieldErr.Value(),
				Param:     fieldErr.Param(),
			})
		}
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Validation failed", "errors": details})
		return
	}

	ctx.StatusCode(iris.StatusBadRequest)
	ctx.JSON(iris.Map{"message": "Invalid request body"})
}
