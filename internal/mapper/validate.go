package mapper

import (
	"strings"
	"time"

	"go-teachain-ws/internal/ledger"
	"go-teachain-ws/pkg/validator"
)

// DefaultCheckInRemark is substituted when a check-in arrives without a
// remark.
const DefaultCheckInRemark = "Product checked in"

// MinRemarkLength is the shortest remark accepted where one is required.
const MinRemarkLength = 5

// RemarkPolicy controls whether a stage transition needs a substantive
// remark. The basic check-in path accepts an empty remark and substitutes
// the default; the stage-update path demands a real one.
type RemarkPolicy int

const (
	RemarkOptional RemarkPolicy = iota
	RemarkRequired
)

// ValidationError reports one client-side rule violation, field by field.
type ValidationError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// NewProductInput is the pre-submission form for addProduct. Format rules
// live in the struct tags; the date rules need the clock and are enforced in
// ValidateNewProduct.
type NewProductInput struct {
	Name             string    `json:"name" validate:"required,min=2"`
	ProductType      string    `json:"product_type" validate:"required"`
	Description      string    `json:"description"`
	BatchNo          uint64    `json:"batch_no" validate:"required,gt=0"`
	ManufacturedDate time.Time `json:"manufactured_date" validate:"required"`
	ExpiryDate       time.Time `json:"expiry_date" validate:"required"`
	Price            uint64    `json:"price" validate:"required,gt=0"`
}

// ValidateNewProduct checks every rule and returns all violations, not just
// the first, so a form can mark every failing field in one pass. A nil slice
// means the input is valid.
func ValidateNewProduct(in NewProductInput, now time.Time) []ValidationError {
	var violations []ValidationError

	for _, e := range validator.ValidateStruct(in) {
		field := e.FailedField
		if i := strings.LastIndex(field, "."); i >= 0 {
			field = field[i+1:]
		}
		violations = append(violations, ValidationError{
			Field:   field,
			Rule:    e.Tag,
			Message: structMessage(e),
		})
	}

	if !in.ManufacturedDate.IsZero() && !in.ManufacturedDate.Before(now) {
		violations = append(violations, ValidationError{
			Field:   "manufactured_date",
			Rule:    "past",
			Message: "manufacture date must be in the past",
		})
	}
	if !in.ExpiryDate.IsZero() && !in.ExpiryDate.After(in.ManufacturedDate) {
		violations = append(violations, ValidationError{
			Field:   "expiry_date",
			Rule:    "after_manufactured",
			Message: "expiry date must be after manufacture date",
		})
	}

	return violations
}

// Submission converts validated input into the wire payload. Call only after
// ValidateNewProduct returned no violations.
func (in NewProductInput) Submission() ledger.ProductSubmission {
	return ledger.ProductSubmission{
		Name:             in.Name,
		ProductType:      in.ProductType,
		Description:      in.Description,
		BatchNo:          in.BatchNo,
		ManufacturedDate: uint64(in.ManufacturedDate.Unix()),
		ExpiryDate:       uint64(in.ExpiryDate.Unix()),
		Price:            in.Price,
	}
}

// ValidateStageRemark trims and checks a transition remark against the
// policy. Under RemarkOptional an empty remark becomes the default; under
// RemarkRequired short or empty remarks are rejected.
func ValidateStageRemark(remark string, policy RemarkPolicy) (string, *ValidationError) {
	trimmed := strings.TrimSpace(remark)

	switch policy {
	case RemarkOptional:
		if trimmed == "" {
			return DefaultCheckInRemark, nil
		}
		return trimmed, nil
	default:
		if len(trimmed) < MinRemarkLength {
			return "", &ValidationError{
				Field:   "remark",
				Rule:    "min",
				Message: "remark is required and must be meaningful",
			}
		}
		return trimmed, nil
	}
}

func structMessage(e *validator.ErrorResponse) string {
	field := strings.ToLower(e.FailedField)
	if i := strings.LastIndex(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch e.Tag {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + e.Value + " characters"
	case "gt":
		return field + " must be greater than " + e.Value
	default:
		return field + " failed rule " + e.Tag
	}
}
