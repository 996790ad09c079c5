package lifecycle

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-teachain-ws/internal/ledger"
	"go-teachain-ws/internal/mapper"
	"go-teachain-ws/internal/model"
)

// fakeGateway counts every call so tests can assert that locally rejected
// requests never reach the ledger.
type fakeGateway struct {
	calls   int
	receipt *ledger.Receipt
	err     error

	lastMethod string
	lastRemark string
	lastStage  uint8

	products []ledger.RawProduct
	users    []ledger.RawUser
	details  struct {
		product ledger.RawProduct
		batch   ledger.RawBatch
		stages  []ledger.RawStageEntry
	}
}

func (f *fakeGateway) result() (*ledger.Receipt, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.receipt, nil
}

func (f *fakeGateway) AddProduct(ctx context.Context, in ledger.ProductSubmission) (*ledger.Receipt, error) {
	f.calls++
	f.lastMethod = "addProduct"
	return f.result()
}

func (f *fakeGateway) ProductCheckIn(ctx context.Context, productID uint64, stage uint8, remark string) (*ledger.Receipt, error) {
	f.calls++
	f.lastMethod = "productCheckIn"
	f.lastStage = stage
	f.lastRemark = remark
	return f.result()
}

func (f *fakeGateway) ProductStageUpdate(ctx context.Context, productID uint64, stage uint8, remark string) (*ledger.Receipt, error) {
	f.calls++
	f.lastMethod = "productStageUpdate"
	f.lastStage = stage
	f.lastRemark = remark
	return f.result()
}

func (f *fakeGateway) CreateBatch(ctx context.Context, name, description string) (*ledger.Receipt, error) {
	f.calls++
	f.lastMethod = "createBatch"
	return f.result()
}

func (f *fakeGateway) AddUser(ctx context.Context, wallet, name, place string, role uint8) (*ledger.Receipt, error) {
	f.calls++
	f.lastMethod = "addUser"
	return f.result()
}

func (f *fakeGateway) RegisterUser(ctx context.Context, name, place string, role uint8) (*ledger.Receipt, error) {
	f.calls++
	f.lastMethod = "registerUser"
	return f.result()
}

func (f *fakeGateway) UpdateUserStatus(ctx context.Context, wallet string, status uint8) (*ledger.Receipt, error) {
	f.calls++
	f.lastMethod = "updateUserStatus"
	return f.result()
}

func (f *fakeGateway) ProductsByUser(ctx context.Context) ([]ledger.RawProduct, error) {
	f.calls++
	return f.products, f.err
}

func (f *fakeGateway) AllUsers(ctx context.Context) ([]ledger.RawUser, error) {
	f.calls++
	return f.users, f.err
}

func (f *fakeGateway) ProductDetails(ctx context.Context, productID uint64) (ledger.RawProduct, ledger.RawBatch, []ledger.RawStageEntry, error) {
	f.calls++
	return f.details.product, f.details.batch, f.details.stages, f.err
}

func (f *fakeGateway) BatchDetails(ctx context.Context, batchNo uint64) (ledger.RawBatch, error) {
	f.calls++
	return f.details.batch, f.err
}

func (f *fakeGateway) Caller() string { return "0x00000000000000000000000000000000000000aa" }

type recordedWrite struct {
	txHash, method, status, detail string
}

type fakeRecorder struct {
	rows []recordedWrite
}

func (r *fakeRecorder) Record(txHash, method, wallet string, blockNumber uint64, status, detail string) error {
	r.rows = append(r.rows, recordedWrite{txHash: txHash, method: method, status: status, detail: detail})
	return nil
}

func newTestController(gw ledger.Gateway, rec Recorder) *Controller {
	return NewController(gw, nil, rec, zerolog.Nop())
}

func stageReceipt(productID uint64, stage uint8, remark string) *ledger.Receipt {
	return &ledger.Receipt{
		TxHash:      "0xabc",
		BlockNumber: 7,
		Events:      []ledger.Event{ledger.ProductStageUpdated{ProductID: productID, Stage: stage, Remark: remark}},
	}
}

func TestRequestProductTransitionIllegalMoveSkipsLedger(t *testing.T) {
	tests := []struct {
		name    string
		current model.Stage
		target  model.Stage
	}{
		{"skip distributor", model.StageManufactured, model.StageRetailer},
		{"out of sold", model.StageSold, model.StageLost},
		{"out of lost", model.StageLost, model.StageDistributor},
		{"backwards", model.StageRetailer, model.StageDistributor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeGateway{}
			ctrl := newTestController(gw, nil)

			_, err := ctrl.RequestProductTransition(context.Background(), 1, tt.current, tt.target, "moved", mapper.RemarkRequired)

			var te *TransitionError
			require.ErrorAs(t, err, &te)
			assert.Equal(t, "product", te.Entity)
			assert.Zero(t, gw.calls, "illegal transition must not reach the ledger")
		})
	}
}

func TestRequestProductTransitionCheckInDefaultsRemark(t *testing.T) {
	gw := &fakeGateway{receipt: stageReceipt(42, uint8(model.StageDistributor), mapper.DefaultCheckInRemark)}
	rec := &fakeRecorder{}
	ctrl := newTestController(gw, rec)

	result, err := ctrl.RequestProductTransition(context.Background(), 42, model.StageManufactured, model.StageDistributor, "", mapper.RemarkOptional)
	require.NoError(t, err)

	assert.Equal(t, "productCheckIn", gw.lastMethod)
	assert.Equal(t, mapper.DefaultCheckInRemark, gw.lastRemark)
	assert.Equal(t, uint64(42), result.ProductID)
	assert.Equal(t, model.StageDistributor, result.Stage)
	assert.Equal(t, "0xabc", result.TxHash)

	require.Len(t, rec.rows, 1)
	assert.Equal(t, model.SubmissionConfirmed, rec.rows[0].status)
}

func TestRequestProductTransitionRequiredRemark(t *testing.T) {
	gw := &fakeGateway{}
	ctrl := newTestController(gw, nil)

	_, err := ctrl.RequestProductTransition(context.Background(), 42, model.StageDistributor, model.StageRetailer, "ok", mapper.RemarkRequired)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "remark", verrs[0].Field)
	assert.Zero(t, gw.calls)
}

func TestRequestProductTransitionRoutesStageUpdate(t *testing.T) {
	gw := &fakeGateway{receipt: stageReceipt(9, uint8(model.StageLost), "fell off the truck")}
	ctrl := newTestController(gw, nil)

	result, err := ctrl.RequestProductTransition(context.Background(), 9, model.StageDistributor, model.StageLost, "fell off the truck", mapper.RemarkRequired)
	require.NoError(t, err)
	assert.Equal(t, "productStageUpdate", gw.lastMethod)
	assert.Equal(t, model.StageLost, result.Stage)
}

func TestRequestProductTransitionEventMissing(t *testing.T) {
	gw := &fakeGateway{receipt: &ledger.Receipt{TxHash: "0xdef", BlockNumber: 3}}
	rec := &fakeRecorder{}
	ctrl := newTestController(gw, rec)

	_, err := ctrl.RequestProductTransition(context.Background(), 1, model.StageManufactured, model.StageDistributor, "", mapper.RemarkOptional)

	var enf *ledger.EventNotFoundError
	require.ErrorAs(t, err, &enf)
	assert.Equal(t, "ProductStageUpdated", enf.Event)
	assert.Equal(t, "0xdef", enf.TxHash)

	require.Len(t, rec.rows, 1)
	assert.Equal(t, model.SubmissionFailed, rec.rows[0].status)
}

func TestRequestProductTransitionNoGateway(t *testing.T) {
	ctrl := newTestController(nil, nil)

	_, err := ctrl.RequestProductTransition(context.Background(), 1, model.StageManufactured, model.StageDistributor, "", mapper.RemarkOptional)

	var unavailable *ledger.GatewayUnavailableError
	assert.ErrorAs(t, err, &unavailable)
}

func TestRequestUserStatusChange(t *testing.T) {
	gw := &fakeGateway{receipt: &ledger.Receipt{
		TxHash: "0x1",
		Events: []ledger.Event{ledger.UserStatusUpdated{
			Wallet:    "0x00000000000000000000000000000000000000bb",
			OldStatus: uint8(model.StatusPending),
			NewStatus: uint8(model.StatusActive),
		}},
	}}
	ctrl := newTestController(gw, nil)

	change, err := ctrl.RequestUserStatusChange(context.Background(), "0x00000000000000000000000000000000000000bb", model.StatusPending, model.StatusActive)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, change.OldStatus)
	assert.Equal(t, model.StatusActive, change.NewStatus)
}

func TestRequestUserStatusChangeTerminal(t *testing.T) {
	gw := &fakeGateway{}
	ctrl := newTestController(gw, nil)

	_, err := ctrl.RequestUserStatusChange(context.Background(), "0xbb", model.StatusBlocked, model.StatusActive)

	var te *TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "user", te.Entity)
	assert.Zero(t, gw.calls)
}

func TestCreateProductValidationAggregates(t *testing.T) {
	gw := &fakeGateway{}
	ctrl := newTestController(gw, nil)

	_, err := ctrl.CreateProduct(context.Background(), mapper.NewProductInput{})

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.GreaterOrEqual(t, len(verrs), 4, "every failing field reported together")
	assert.Zero(t, gw.calls)
}

func TestCreateBatchReadsIDFromEvent(t *testing.T) {
	gw := &fakeGateway{receipt: &ledger.Receipt{
		TxHash: "0x2",
		Events: []ledger.Event{ledger.BatchCreated{BatchID: 11, Name: "Spring Harvest"}},
	}}
	ctrl := newTestController(gw, nil)

	result, err := ctrl.CreateBatch(context.Background(), "Spring Harvest", "first flush")
	require.NoError(t, err)
	assert.Equal(t, uint64(11), result.BatchID)
	assert.Equal(t, "Spring Harvest", result.Name)
}

func TestCreateBatchRequiresName(t *testing.T) {
	gw := &fakeGateway{}
	ctrl := newTestController(gw, nil)

	_, err := ctrl.CreateBatch(context.Background(), "   ", "")

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Zero(t, gw.calls)
}

func TestAddUserConfirmsEvent(t *testing.T) {
	gw := &fakeGateway{receipt: &ledger.Receipt{
		TxHash: "0x3",
		Events: []ledger.Event{ledger.UserRegistered{
			Wallet: "0x00000000000000000000000000000000000000cc",
			Name:   "Chen",
			Role:   uint8(model.RoleDistributor),
			Status: uint8(model.StatusPending),
		}},
	}}
	ctrl := newTestController(gw, nil)

	user, err := ctrl.AddUser(context.Background(), "0x00000000000000000000000000000000000000cc", "Chen", "Hangzhou", model.RoleDistributor)
	require.NoError(t, err)
	assert.Equal(t, model.RoleDistributor, user.Role)
	assert.Equal(t, model.StatusPending, user.Status)
}

func TestRegisterUserStartsPending(t *testing.T) {
	gw := &fakeGateway{receipt: &ledger.Receipt{
		TxHash: "0x4",
		Events: []ledger.Event{ledger.UserRegistered{
			Wallet: "0x00000000000000000000000000000000000000aa",
			Name:   "Mill",
			Role:   uint8(model.RoleManufacturer),
			Status: uint8(model.StatusPending),
		}},
	}}
	ctrl := newTestController(gw, nil)

	user, err := ctrl.RegisterUser(context.Background(), "Mill", "Hangzhou", model.RoleManufacturer)
	require.NoError(t, err)
	assert.Equal(t, "registerUser", gw.lastMethod)
	assert.Equal(t, model.StatusPending, user.Status)
}

func TestRegisterUserRejectsInvalidRole(t *testing.T) {
	gw := &fakeGateway{}
	ctrl := newTestController(gw, nil)

	_, err := ctrl.RegisterUser(context.Background(), "Mill", "Hangzhou", model.Role(9))

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Zero(t, gw.calls)
}

func TestFetchProductDetailsNoEndpoint(t *testing.T) {
	ctrl := newTestController(nil, nil)

	_, err := ctrl.FetchProductDetails(context.Background(), 1)

	var unavailable *ledger.GatewayUnavailableError
	assert.ErrorAs(t, err, &unavailable)
}

func TestFetchProductDetailsNotFound(t *testing.T) {
	gw := &fakeGateway{}
	ctrl := newTestController(gw, nil)

	_, err := ctrl.FetchProductDetails(context.Background(), 999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestFetchProductDetails(t *testing.T) {
	gw := &fakeGateway{}
	gw.details.product = ledger.RawProduct{
		ProductID:        5,
		Name:             "Longjing",
		ProductType:      "Green",
		BatchNo:          2,
		Stage:            uint8(model.StageRetailer),
		ManufacturedDate: 1700000000,
		ExpiryDate:       1760000000,
		Price:            120,
	}
	gw.details.batch = ledger.RawBatch{BatchID: 2, Name: "Spring Harvest"}
	gw.details.stages = []ledger.RawStageEntry{
		{
			User:      ledger.RawUser{Wallet: "0xaa", Name: "Mill", Role: uint8(model.RoleManufacturer), Status: uint8(model.StatusActive)},
			Stage:     uint8(model.StageManufactured),
			EntryTime: 1700000000,
			ExitTime:  1700100000,
			Remark:    "packed",
		},
		{
			User:      ledger.RawUser{Wallet: "0xbb", Name: "Haulage", Role: uint8(model.RoleDistributor), Status: uint8(model.StatusActive)},
			Stage:     uint8(model.StageDistributor),
			EntryTime: 1700100000,
			Remark:    "in transit",
		},
	}
	ctrl := newTestController(gw, nil)

	prov, err := ctrl.FetchProductDetails(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Longjing", prov.Product.Name)
	assert.Equal(t, model.StageRetailer, prov.Product.Stage)
	require.Len(t, prov.Stages, 2)
	assert.NotNil(t, prov.Stages[0].ExitTime)
	assert.Nil(t, prov.Stages[1].ExitTime)
}

func TestBatchDetailsNotFound(t *testing.T) {
	gw := &fakeGateway{}
	ctrl := newTestController(gw, nil)

	_, err := ctrl.BatchDetails(context.Background(), 404)
	assert.ErrorIs(t, err, ErrBatchNotFound)
}

func TestProductsByUserSkipsCorruptRecords(t *testing.T) {
	gw := &fakeGateway{products: []ledger.RawProduct{
		{ProductID: 1, Name: "Sencha", ProductType: "Green", BatchNo: 1, Stage: uint8(model.StageManufactured), ManufacturedDate: 1, ExpiryDate: 2, Price: 1},
		{ProductID: 2, Name: "Broken", ProductType: "Green", BatchNo: 1, Stage: 250, ManufacturedDate: 1, ExpiryDate: 2, Price: 1},
	}}
	ctrl := newTestController(gw, nil)

	products, err := ctrl.ProductsByUser(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, uint64(1), products[0].ProductID)
}

func TestGatewayErrorPassesThrough(t *testing.T) {
	wantErr := &ledger.TransactionRevertedError{Reason: "Product not at your stage"}
	gw := &fakeGateway{err: wantErr}
	ctrl := newTestController(gw, nil)

	_, err := ctrl.RequestProductTransition(context.Background(), 1, model.StageManufactured, model.StageDistributor, "", mapper.RemarkOptional)

	var reverted *ledger.TransactionRevertedError
	require.ErrorAs(t, err, &reverted)
	assert.Equal(t, "Product not at your stage", reverted.Reason)
	assert.False(t, errors.Is(err, ErrProductNotFound))
}
