package hierarchy

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

const (
	maxTitleLength       = 255
	maxDescriptionLength = 2048
)

// MenuInput carries the fields of a new menu.
type MenuInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Validate checks the input before it reaches the store.
func (in MenuInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.Length(1, maxTitleLength)),
		validation.Field(&in.Description, validation.Length(0, maxDescriptionLength)),
	)
}

// MenuPatch changes only the fields that are set.
type MenuPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (p MenuPatch) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.NilOrNotEmpty, validation.Length(1, maxTitleLength)),
		validation.Field(&p.Description, validation.Length(0, maxDescriptionLength)),
	)
}

// IsEmpty reports whether the patch changes nothing.
func (p MenuPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil
}

// SubmenuInput carries the fields of a new submenu.
type SubmenuInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (in SubmenuInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.Length(1, maxTitleLength)),
		validation.Field(&in.Description, validation.Length(0, maxDescriptionLength)),
	)
}

// SubmenuPatch changes only the fields that are set.
type SubmenuPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (p SubmenuPatch) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.NilOrNotEmpty, validation.Length(1, maxTitleLength)),
		validation.Field(&p.Description, validation.Length(0, maxDescriptionLength)),
	)
}

func (p SubmenuPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil
}

// DishInput carries the fields of a new dish. Price accepts a JSON string
// or number and must be present.
type DishInput struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Price       decimal.NullDecimal `json:"price"`
}

func (in DishInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.Length(1, maxTitleLength)),
		validation.Field(&in.Description, validation.Length(0, maxDescriptionLength)),
		validation.Field(&in.Price, validation.Required, validation.By(nonNegativePrice)),
	)
}

// DishPatch changes only the fields that are set.
type DishPatch struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
}

func (p DishPatch) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.NilOrNotEmpty, validation.Length(1, maxTitleLength)),
		validation.Field(&p.Description, validation.Length(0, maxDescriptionLength)),
		validation.Field(&p.Price, validation.By(nonNegativePrice)),
	)
}

func (p DishPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Price == nil
}

func nonNegativePrice(value any) error {
	var d decimal.Decimal
	switch v := value.(type) {
	case decimal.Decimal:
		d = v
	case decimal.NullDecimal:
		if !v.Valid {
			return nil
		}
		d = v.Decimal
	case *decimal.Decimal:
		if v == nil {
			return nil
		}
		d = *v
	default:
		return nil
	}
	if d.IsNegative() {
		return validation.NewError("validation_price_negative", "must not be negative")
	}
	return nil
}

// formatPrice renders a stored price with exactly two decimals.
func formatPrice(d decimal.Decimal) string {
	return d.StringFixed(2)
}
