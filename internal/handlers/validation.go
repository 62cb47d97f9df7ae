package handlers

import (
	"fmt"
	"reflect"
	"strings"

	"cookbook/internal/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// parseBody decodes the JSON body into dst and validates it.
func parseBody(c *fiber.Ctx, v *validator.Validate, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return apperrors.Validation(map[string]string{"body": "Invalid request body: " + err.Error()})
	}
	return validateStruct(v, dst)
}

// parseQuery decodes the query string into dst.
func parseQuery(c *fiber.Ctx, dst interface{}) error {
	if err := c.QueryParser(dst); err != nil {
		return apperrors.Validation(map[string]string{"query": "Invalid query parameters: " + err.Error()})
	}
	return nil
}

func validateStruct(v *validator.Validate, s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Validation(map[string]string{"body": err.Error()})
	}
	errorMessages := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		field := fieldPath(e)
		errorMessages[field] = fmt.Sprintf("Field '%s' failed on the '%s' tag", field, e.Tag())
	}
	return apperrors.Validation(errorMessages)
}

// fieldPath drops the struct name from the namespace: "ingredients[0].name".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

// chain puts guards in front of h without sharing the guards' backing array.
func chain(guards []fiber.Handler, h fiber.Handler) []fiber.Handler {
	out := make([]fiber.Handler, 0, len(guards)+1)
	return append(append(out, guards...), h)
}
