package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"go-teachain-ws/internal/ledger"
	"go-teachain-ws/internal/mapper"
	"go-teachain-ws/internal/model"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrBatchNotFound   = errors.New("batch not found")
)

// TransitionError is a locally rejected state change: the target is not
// reachable from the current state, so no ledger call was made.
type TransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move %s from %s to %s", e.Entity, e.From, e.To)
}

// ValidationErrors aggregates the client-side violations that blocked a
// submission.
type ValidationErrors []mapper.ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Recorder persists an audit row for each resolved ledger write. Optional;
// a nil recorder disables tracking.
type Recorder interface {
	Record(txHash, method, wallet string, blockNumber uint64, status, detail string) error
}

// Controller gates every product-stage and user-status change behind the
// transition tables before touching the ledger, and confirms each write by
// locating its event in the receipt. The gateway is injected so the
// controller can be exercised against fakes; there is no ambient session
// state.
type Controller struct {
	gw  ledger.Gateway
	rd  ledger.Reader
	rec Recorder
	now func() time.Time
	log zerolog.Logger
}

// NewController builds a controller. gw may be nil for a read-only
// deployment; rd may be nil when no read endpoint is configured. Either
// absence surfaces as GatewayUnavailableError at call time, never as a
// crash.
func NewController(gw ledger.Gateway, rd ledger.Reader, rec Recorder, log zerolog.Logger) *Controller {
	if rd == nil && gw != nil {
		rd = gw
	}
	return &Controller{
		gw:  gw,
		rd:  rd,
		rec: rec,
		now: time.Now,
		log: log.With().Str("component", "lifecycle").Logger(),
	}
}

func (c *Controller) writer() (ledger.Writer, error) {
	if c.gw == nil {
		return nil, &ledger.GatewayUnavailableError{Reason: "no write-capable session configured"}
	}
	return c.gw, nil
}

func (c *Controller) reader() (ledger.Reader, error) {
	if c.rd == nil {
		return nil, &ledger.GatewayUnavailableError{Reason: "no read endpoint configured"}
	}
	return c.rd, nil
}

func (c *Controller) record(txHash, method string, blockNumber uint64, status, detail string) {
	if c.rec == nil {
		return
	}
	wallet := ""
	if c.gw != nil {
		wallet = c.gw.Caller()
	}
	if err := c.rec.Record(txHash, method, wallet, blockNumber, status, detail); err != nil {
		c.log.Warn().Err(err).Str("tx_hash", txHash).Msg("failed to record submission")
	}
}

func (c *Controller) logDecodeErrors(op string, errs []error) {
	for _, err := range errs {
		c.log.Warn().Err(err).Str("op", op).Msg("skipping undecodable ledger record")
	}
}

// TransitionResult confirms a product stage change.
type TransitionResult struct {
	ProductID uint64      `json:"product_id"`
	Stage     model.Stage `json:"stage"`
	Remark    string      `json:"remark"`
	TxHash    string      `json:"tx_hash"`
}

// RequestProductTransition moves a product to targetStage. The caller passes
// the product's current stage from its view model; illegal transitions
// (including any move out of Sold or Lost) are rejected here with zero
// ledger calls. The remark policy distinguishes the basic check-in path
// (empty remark allowed, default substituted) from the stage-update path
// (remark required); both produce the same ledger effect.
func (c *Controller) RequestProductTransition(ctx context.Context, productID uint64, current, target model.Stage, remark string, policy mapper.RemarkPolicy) (*TransitionResult, error) {
	if productID == 0 {
		return nil, ValidationErrors{{Field: "product_id", Rule: "gt", Message: "invalid product ID"}}
	}
	if !target.Valid() {
		return nil, ValidationErrors{{Field: "stage", Rule: "oneof", Message: "invalid stage selected"}}
	}
	if !CanTransitStage(current, target) {
		return nil, &TransitionError{Entity: "product", From: current.String(), To: target.String()}
	}

	finalRemark, verr := mapper.ValidateStageRemark(remark, policy)
	if verr != nil {
		return nil, ValidationErrors{*verr}
	}

	gw, err := c.writer()
	if err != nil {
		return nil, err
	}

	var receipt *ledger.Receipt
	if policy == mapper.RemarkOptional {
		receipt, err = gw.ProductCheckIn(ctx, productID, uint8(target), finalRemark)
	} else {
		receipt, err = gw.ProductStageUpdate(ctx, productID, uint8(target), finalRemark)
	}
	if err != nil {
		return nil, err
	}

	ev, ok := ledger.FindOne[ledger.ProductStageUpdated](receipt)
	if !ok {
		c.record(receipt.TxHash, "productStageUpdate", receipt.BlockNumber, model.SubmissionFailed, "confirming event missing")
		return nil, &ledger.EventNotFoundError{Event: "ProductStageUpdated", TxHash: receipt.TxHash}
	}
	c.record(receipt.TxHash, "productStageUpdate", receipt.BlockNumber, model.SubmissionConfirmed,
		fmt.Sprintf("product %d -> %s", ev.ProductID, model.Stage(ev.Stage)))

	c.log.Info().
		Uint64("product_id", ev.ProductID).
		Str("stage", model.Stage(ev.Stage).String()).
		Str("tx_hash", receipt.TxHash).
		Msg("product stage updated")

	return &TransitionResult{
		ProductID: ev.ProductID,
		Stage:     model.Stage(ev.Stage),
		Remark:    ev.Remark,
		TxHash:    receipt.TxHash,
	}, nil
}

// StatusChange confirms a user status change, echoing old and new status
// from the emitted event.
type StatusChange struct {
	Wallet    string           `json:"wallet"`
	OldStatus model.UserStatus `json:"old_status"`
	NewStatus model.UserStatus `json:"new_status"`
	TxHash    string           `json:"tx_hash"`
}

// RequestUserStatusChange moves a user to target status. Blocked and
// Rejected are terminal: requests out of them are rejected locally, and a
// move to Blocked is irreversible, which the caller must confirm with the
// user before calling here.
func (c *Controller) RequestUserStatusChange(ctx context.Context, wallet string, current, target model.UserStatus) (*StatusChange, error) {
	if wallet == "" {
		return nil, ValidationErrors{{Field: "wallet", Rule: "required", Message: "wallet address is required"}}
	}
	if !target.Valid() {
		return nil, ValidationErrors{{Field: "status", Rule: "oneof", Message: "invalid status selected"}}
	}
	if !CanTransitStatus(current, target) {
		return nil, &TransitionError{Entity: "user", From: current.String(), To: target.String()}
	}

	gw, err := c.writer()
	if err != nil {
		return nil, err
	}

	receipt, err := gw.UpdateUserStatus(ctx, wallet, uint8(target))
	if err != nil {
		return nil, err
	}

	ev, ok := ledger.FindOne[ledger.UserStatusUpdated](receipt)
	if !ok {
		c.record(receipt.TxHash, "updateUserStatus", receipt.BlockNumber, model.SubmissionFailed, "confirming event missing")
		return nil, &ledger.EventNotFoundError{Event: "UserStatusUpdated", TxHash: receipt.TxHash}
	}
	c.record(receipt.TxHash, "updateUserStatus", receipt.BlockNumber, model.SubmissionConfirmed,
		fmt.Sprintf("user %s %s -> %s", ev.Wallet, model.UserStatus(ev.OldStatus), model.UserStatus(ev.NewStatus)))

	return &StatusChange{
		Wallet:    ev.Wallet,
		OldStatus: model.UserStatus(ev.OldStatus),
		NewStatus: model.UserStatus(ev.NewStatus),
		TxHash:    receipt.TxHash,
	}, nil
}

// BatchResult confirms a batch creation.
type BatchResult struct {
	BatchID uint64 `json:"batch_id"`
	Name    string `json:"name"`
	TxHash  string `json:"tx_hash"`
}

// CreateBatch registers a new production batch. The ledger assigns the
// batch ID; it is read back from the creation event.
func (c *Controller) CreateBatch(ctx context.Context, name, description string) (*BatchResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ValidationErrors{{Field: "name", Rule: "required", Message: "batch name is required"}}
	}

	gw, err := c.writer()
	if err != nil {
		return nil, err
	}

	receipt, err := gw.CreateBatch(ctx, name, description)
	if err != nil {
		return nil, err
	}

	ev, ok := ledger.FindOne[ledger.BatchCreated](receipt)
	if !ok {
		c.record(receipt.TxHash, "createBatch", receipt.BlockNumber, model.SubmissionFailed, "confirming event missing")
		return nil, &ledger.EventNotFoundError{Event: "BatchCreated", TxHash: receipt.TxHash}
	}
	c.record(receipt.TxHash, "createBatch", receipt.BlockNumber, model.SubmissionConfirmed,
		fmt.Sprintf("batch %d %q", ev.BatchID, ev.Name))

	return &BatchResult{BatchID: ev.BatchID, Name: ev.Name, TxHash: receipt.TxHash}, nil
}

// ProductResult confirms a product creation. The product ID is assigned by
// the ledger, never chosen by the client.
type ProductResult struct {
	ProductID uint64 `json:"product_id"`
	Name      string `json:"name"`
	BatchNo   uint64 `json:"batch_no"`
	TxHash    string `json:"tx_hash"`
}

// CreateProduct validates the input and submits addProduct. All violations
// are returned together so the form can mark every failing field.
func (c *Controller) CreateProduct(ctx context.Context, in mapper.NewProductInput) (*ProductResult, error) {
	if violations := mapper.ValidateNewProduct(in, c.now()); len(violations) > 0 {
		return nil, ValidationErrors(violations)
	}

	gw, err := c.writer()
	if err != nil {
		return nil, err
	}

	receipt, err := gw.AddProduct(ctx, in.Submission())
	if err != nil {
		return nil, err
	}

	ev, ok := ledger.FindOne[ledger.ProductAdded](receipt)
	if !ok {
		c.record(receipt.TxHash, "addProduct", receipt.BlockNumber, model.SubmissionFailed, "confirming event missing")
		return nil, &ledger.EventNotFoundError{Event: "ProductAdded", TxHash: receipt.TxHash}
	}
	c.record(receipt.TxHash, "addProduct", receipt.BlockNumber, model.SubmissionConfirmed,
		fmt.Sprintf("product %d %q batch %d", ev.ProductID, ev.Name, ev.BatchNo))

	return &ProductResult{ProductID: ev.ProductID, Name: ev.Name, BatchNo: ev.BatchNo, TxHash: receipt.TxHash}, nil
}

// RegisterUser self-registers the calling wallet as a supply-chain
// participant; the ledger assigns Pending status.
func (c *Controller) RegisterUser(ctx context.Context, name, place string, role model.Role) (*model.User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ValidationErrors{{Field: "name", Rule: "required", Message: "name is required"}}
	}
	if !role.Valid() {
		return nil, ValidationErrors{{Field: "role", Rule: "oneof", Message: "invalid role selected"}}
	}

	gw, err := c.writer()
	if err != nil {
		return nil, err
	}

	receipt, err := gw.RegisterUser(ctx, name, place, uint8(role))
	if err != nil {
		return nil, err
	}
	return c.confirmUserEvent(receipt, "registerUser")
}

// AddUser registers a participant on behalf of an admin, with an explicit
// wallet and admin-assigned status.
func (c *Controller) AddUser(ctx context.Context, wallet, name, place string, role model.Role) (*model.User, error) {
	if wallet == "" {
		return nil, ValidationErrors{{Field: "wallet", Rule: "required", Message: "wallet address is required"}}
	}
	if strings.TrimSpace(name) == "" {
		return nil, ValidationErrors{{Field: "name", Rule: "required", Message: "name is required"}}
	}
	if !role.Valid() {
		return nil, ValidationErrors{{Field: "role", Rule: "oneof", Message: "invalid role selected"}}
	}

	gw, err := c.writer()
	if err != nil {
		return nil, err
	}

	receipt, err := gw.AddUser(ctx, wallet, name, place, uint8(role))
	if err != nil {
		return nil, err
	}
	return c.confirmUserEvent(receipt, "addUser")
}

func (c *Controller) confirmUserEvent(receipt *ledger.Receipt, method string) (*model.User, error) {
	ev, ok := ledger.FindOne[ledger.UserRegistered](receipt)
	if !ok {
		c.record(receipt.TxHash, method, receipt.BlockNumber, model.SubmissionFailed, "confirming event missing")
		return nil, &ledger.EventNotFoundError{Event: "UserRegistered", TxHash: receipt.TxHash}
	}

	user, err := mapper.DecodeUser(ledger.RawUser{
		Wallet: ev.Wallet,
		Name:   ev.Name,
		Role:   ev.Role,
		Status: ev.Status,
	})
	if err != nil {
		return nil, err
	}
	c.record(receipt.TxHash, method, receipt.BlockNumber, model.SubmissionConfirmed,
		fmt.Sprintf("user %s role %s status %s", user.Wallet, user.Role, user.Status))
	return &user, nil
}

// FetchProductDetails is the public provenance lookup: product, batch, and
// ordered stage history by product ID. Needs only the read endpoint.
func (c *Controller) FetchProductDetails(ctx context.Context, productID uint64) (*model.Provenance, error) {
	if productID == 0 {
		return nil, ValidationErrors{{Field: "product_id", Rule: "gt", Message: "invalid product ID"}}
	}

	rd, err := c.reader()
	if err != nil {
		return nil, err
	}

	rawProduct, rawBatch, rawStages, err := rd.ProductDetails(ctx, productID)
	if err != nil {
		return nil, err
	}
	if rawProduct.ProductID == 0 {
		return nil, ErrProductNotFound
	}

	product, err := mapper.DecodeProduct(rawProduct)
	if err != nil {
		return nil, err
	}
	batch, err := mapper.DecodeBatch(rawBatch)
	if err != nil {
		return nil, err
	}
	stages, errs := mapper.DecodeStageHistory(rawStages)
	c.logDecodeErrors("fetchProductDetails", errs)

	return &model.Provenance{Product: product, Batch: batch, Stages: stages}, nil
}

// BatchDetails looks up a batch so the product form can confirm the batch
// number before submission.
func (c *Controller) BatchDetails(ctx context.Context, batchNo uint64) (*model.Batch, error) {
	if batchNo == 0 {
		return nil, ValidationErrors{{Field: "batch_no", Rule: "gt", Message: "invalid batch number"}}
	}

	rd, err := c.reader()
	if err != nil {
		return nil, err
	}

	raw, err := rd.BatchDetails(ctx, batchNo)
	if err != nil {
		return nil, err
	}
	if raw.BatchID == 0 {
		return nil, ErrBatchNotFound
	}

	batch, err := mapper.DecodeBatch(raw)
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

// ProductsByUser lists the products currently assigned to the session
// wallet. Undecodable items are skipped and logged.
func (c *Controller) ProductsByUser(ctx context.Context) ([]model.Product, error) {
	gw, err := c.writer()
	if err != nil {
		return nil, err
	}

	raws, err := gw.ProductsByUser(ctx)
	if err != nil {
		return nil, err
	}
	products, errs := mapper.DecodeProducts(raws)
	c.logDecodeErrors("productsByUser", errs)
	return products, nil
}

// AllUsers lists every registered participant for the admin dashboard.
func (c *Controller) AllUsers(ctx context.Context) ([]model.User, error) {
	gw, err := c.writer()
	if err != nil {
		return nil, err
	}

	raws, err := gw.AllUsers(ctx)
	if err != nil {
		return nil, err
	}
	users, errs := mapper.DecodeUsers(raws)
	c.logDecodeErrors("allUsers", errs)
	return users, nil
}
