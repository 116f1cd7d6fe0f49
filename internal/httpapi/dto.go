package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/TemirB/catalog-orders/internal/application/service"
	"github.com/TemirB/catalog-orders/internal/domain"
)

var (
	validate = newValidator()

	errUnsupportedMedia = errors.New("Content-Type must be application/json")
)

// newValidator reports fields by their json names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type productRequest struct {
	Name  string           `json:"name" validate:"required,max=256"`
	Price *decimal.Decimal `json:"price" validate:"required"`
}

type itemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required"`
}

type createOrderRequest struct {
	Items []itemRequest `json:"items" validate:"required,min=1,dive"`
}

func (r createOrderRequest) inputs() []service.ItemInput {
	out := make([]service.ItemInput, 0, len(r.Items))
	for _, it := range r.Items {
		out = append(out, service.ItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return out
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

// decode reads a JSON body into dst and runs the struct validation tags.
// Every failure matches domain.ErrValidation except a wrong Content-Type.
func decode(r *http.Request, dst any) error {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		return errUnsupportedMedia
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: bad json: %v", domain.ErrValidation, err)
	}

	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrValidation, formatValidationError(err))
	}
	return nil
}

func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, formatFieldError(e))
	}
	return strings.Join(msgs, "; ")
}

func formatFieldError(e validator.FieldError) string {
	field := e.Field()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
