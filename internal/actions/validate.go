package actions

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matthieukhl/parceltrack/internal/apperr"
)

type AddOrderInput struct {
	URL            string `json:"url" validate:"required"`
	TrackingNumber string `json:"tracking_number"`
}

type UpdateOrderInput struct {
	ID             int    `json:"id" validate:"gt=0"`
	ProductTitle   string `json:"product_title"`
	TrackingNumber string `json:"tracking_number"`
	ProductImage   string `json:"product_image"`
}

type ImportInput struct {
	CurlCommand string `json:"curl_command" validate:"required"`
}

type APIKeyInput struct {
	APIKey string `json:"api_key" validate:"required"`
}

type orderRef struct {
	ID int `json:"id" validate:"gt=0"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// check runs the struct rules and reports the first failure with publicMsg.
func (d *Dispatcher) check(in any, publicMsg string) error {
	err := d.validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.ValidationErr(publicMsg, nil)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return apperr.ValidationErr(publicMsg, fields)
}
