package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput(now time.Time) NewProductInput {
	return NewProductInput{
		Name:             "Longjing Reserve",
		ProductType:      "Green",
		Description:      "first flush",
		BatchNo:          3,
		ManufacturedDate: now.AddDate(0, -1, 0),
		ExpiryDate:       now.AddDate(1, 0, 0),
		Price:            150,
	}
}

func TestValidateNewProductAccepts(t *testing.T) {
	now := time.Now()
	assert.Empty(t, ValidateNewProduct(validInput(now), now))
}

func TestValidateNewProductRules(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name   string
		mutate func(*NewProductInput)
		field  string
		rule   string
	}{
		{"empty name", func(in *NewProductInput) { in.Name = "" }, "Name", "required"},
		{"one-char name", func(in *NewProductInput) { in.Name = "X" }, "Name", "min"},
		{"missing type", func(in *NewProductInput) { in.ProductType = "" }, "ProductType", "required"},
		{"zero batch", func(in *NewProductInput) { in.BatchNo = 0 }, "BatchNo", "required"},
		{"zero price", func(in *NewProductInput) { in.Price = 0 }, "Price", "required"},
		{"manufactured now", func(in *NewProductInput) { in.ManufacturedDate = now }, "manufactured_date", "past"},
		{"manufactured in future", func(in *NewProductInput) { in.ManufacturedDate = now.AddDate(0, 0, 1) }, "manufactured_date", "past"},
		{"expiry equals manufactured", func(in *NewProductInput) { in.ExpiryDate = in.ManufacturedDate }, "expiry_date", "after_manufactured"},
		{"expiry before manufactured", func(in *NewProductInput) { in.ExpiryDate = in.ManufacturedDate.AddDate(0, 0, -1) }, "expiry_date", "after_manufactured"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput(now)
			tt.mutate(&in)

			violations := ValidateNewProduct(in, now)
			require.NotEmpty(t, violations)

			found := false
			for _, v := range violations {
				if v.Field == tt.field && v.Rule == tt.rule {
					found = true
				}
			}
			assert.True(t, found, "expected violation %s/%s in %v", tt.field, tt.rule, violations)
		})
	}
}

func TestValidateNewProductReportsAllViolations(t *testing.T) {
	now := time.Now()
	violations := ValidateNewProduct(NewProductInput{}, now)
	assert.GreaterOrEqual(t, len(violations), 4)
}

func TestValidateStageRemarkOptional(t *testing.T) {
	remark, err := ValidateStageRemark("", RemarkOptional)
	require.Nil(t, err)
	assert.Equal(t, DefaultCheckInRemark, remark)

	remark, err = ValidateStageRemark("  arrived at warehouse  ", RemarkOptional)
	require.Nil(t, err)
	assert.Equal(t, "arrived at warehouse", remark)
}

func TestValidateStageRemarkRequired(t *testing.T) {
	for _, bad := range []string{"", "    ", "ok", "abcd"} {
		_, err := ValidateStageRemark(bad, RemarkRequired)
		require.NotNil(t, err, "remark %q should be rejected", bad)
		assert.Equal(t, "remark", err.Field)
	}

	remark, err := ValidateStageRemark("damaged in transit", RemarkRequired)
	require.Nil(t, err)
	assert.Equal(t, "damaged in transit", remark)
}

func TestSubmissionUsesUnixSeconds(t *testing.T) {
	manufactured := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	expiry := time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)

	in := NewProductInput{
		Name:             "Sencha",
		ProductType:      "Green",
		BatchNo:          9,
		ManufacturedDate: manufactured,
		ExpiryDate:       expiry,
		Price:            80,
	}
	sub := in.Submission()
	assert.Equal(t, uint64(manufactured.Unix()), sub.ManufacturedDate)
	assert.Equal(t, uint64(expiry.Unix()), sub.ExpiryDate)
	assert.Equal(t, uint64(9), sub.BatchNo)
}
