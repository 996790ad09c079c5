package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-teachain-ws/internal/ledger"
	"go-teachain-ws/internal/model"
)

func TestDecodeUser(t *testing.T) {
	raw := ledger.RawUser{
		Wallet: "0x00000000000000000000000000000000000000aa",
		Name:   "Mill",
		Place:  "Hangzhou",
		Role:   uint8(model.RoleManufacturer),
		Status: uint8(model.StatusActive),
	}
	user, err := DecodeUser(raw)
	require.NoError(t, err)
	assert.Equal(t, model.RoleManufacturer, user.Role)
	assert.Equal(t, model.StatusActive, user.Status)
}

func TestDecodeUserRejectsUnknownEnums(t *testing.T) {
	base := ledger.RawUser{Wallet: "0xaa", Role: 0, Status: 0}

	badRole := base
	badRole.Role = 99
	_, err := DecodeUser(badRole)
	var decodeErr *ledger.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "user.role", decodeErr.Field)

	badStatus := base
	badStatus.Status = 99
	_, err = DecodeUser(badStatus)
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "user.status", decodeErr.Field)

	noWallet := base
	noWallet.Wallet = ""
	_, err = DecodeUser(noWallet)
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "user.wallet", decodeErr.Field)
}

func TestDecodeProductRoundTrip(t *testing.T) {
	product := model.Product{
		ProductID:        7,
		Name:             "Longjing",
		ProductType:      "Green",
		Description:      "first flush",
		BatchNo:          3,
		Stage:            model.StageDistributor,
		ManufacturedDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		ExpiryDate:       time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC),
		Price:            150,
	}

	decoded, err := DecodeProduct(EncodeProduct(product))
	require.NoError(t, err)
	assert.Equal(t, product, decoded)
}

func TestDecodeProductRejectsUnknownStage(t *testing.T) {
	raw := ledger.RawProduct{ProductID: 1, Stage: 200}
	_, err := DecodeProduct(raw)
	var decodeErr *ledger.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "product.stage", decodeErr.Field)
}

func TestDecodeProductsSkipsAndReports(t *testing.T) {
	raws := []ledger.RawProduct{
		{ProductID: 1, Name: "Sencha", Stage: uint8(model.StageManufactured)},
		{ProductID: 2, Name: "Broken", Stage: 200},
		{ProductID: 3, Name: "Matcha", Stage: uint8(model.StageSold)},
	}
	products, errs := DecodeProducts(raws)
	require.Len(t, products, 2)
	require.Len(t, errs, 1)
	assert.Equal(t, uint64(1), products[0].ProductID)
	assert.Equal(t, uint64(3), products[1].ProductID)
	assert.Contains(t, errs[0].Error(), "product 2 of 3")
}

func TestDecodeStageHistoryExitSentinel(t *testing.T) {
	operator := ledger.RawUser{Wallet: "0xaa", Role: uint8(model.RoleManufacturer), Status: uint8(model.StatusActive)}
	raws := []ledger.RawStageEntry{
		{User: operator, Stage: uint8(model.StageManufactured), EntryTime: 1700000000, ExitTime: 1700100000, Remark: "packed"},
		{User: operator, Stage: uint8(model.StageDistributor), EntryTime: 1700100000, ExitTime: 0, Remark: "in transit"},
	}

	entries, errs := DecodeStageHistory(raws)
	require.Empty(t, errs)
	require.Len(t, entries, 2)

	require.NotNil(t, entries[0].ExitTime)
	assert.Equal(t, int64(1700100000), entries[0].ExitTime.Unix())
	assert.False(t, entries[0].StillPresent())

	assert.Nil(t, entries[1].ExitTime)
	assert.True(t, entries[1].StillPresent())
	assert.Equal(t, "Still present", entries[1].ExitLabel())
}

func TestDecodeStageHistoryPreservesOrderAroundSkips(t *testing.T) {
	operator := ledger.RawUser{Wallet: "0xaa", Role: uint8(model.RoleManufacturer), Status: uint8(model.StatusActive)}
	raws := []ledger.RawStageEntry{
		{User: operator, Stage: uint8(model.StageManufactured), EntryTime: 1},
		{User: operator, Stage: 200, EntryTime: 2},
		{User: operator, Stage: uint8(model.StageDistributor), EntryTime: 3},
	}

	entries, errs := DecodeStageHistory(raws)
	require.Len(t, entries, 2)
	require.Len(t, errs, 1)
	assert.Equal(t, model.StageManufactured, entries[0].Stage)
	assert.Equal(t, model.StageDistributor, entries[1].Stage)
}

func TestDecodeBatchMissing(t *testing.T) {
	_, err := DecodeBatch(ledger.RawBatch{})
	var decodeErr *ledger.DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}
