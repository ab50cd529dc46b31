package item

import (
	"inventory/domain"
	"inventory/pkg/httperror"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ItemFields is the full set of writable fields. Every field is required;
// update does not preserve omitted values.
type ItemFields struct {
	ItemName  string           `json:"item_name" validate:"required,max=100"`
	Quantity  *int             `json:"quantity" validate:"required"`
	DateAdded string           `json:"date_added" validate:"required,datetime=2006-01-02"`
	Price     *decimal.Decimal `json:"price" validate:"required"`
	Condition string           `json:"condition" validate:"required,max=100"`
}

func validateRequest(req any, op string) error {
	if err := validate.Struct(req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			return httperror.BadRequest(
				"item."+op+".validation_failed",
				"Validation failed for the request",
				ve.Error(),
			)
		}

		return httperror.InternalServerError(
			"item."+op+".validation_error",
			"An unexpected validation error occurred",
			nil,
		)
	}
	return nil
}

// toItem assumes the fields already passed validation.
func (f ItemFields) toItem(id int64) (domain.Item, error) {
	date, err := domain.ParseDate(f.DateAdded)
	if err != nil {
		return domain.Item{}, err
	}

	return domain.Item{
		ID:        id,
		ItemName:  f.ItemName,
		Quantity:  *f.Quantity,
		DateAdded: date,
		Price:     *f.Price,
		Condition: f.Condition,
	}, nil
}
