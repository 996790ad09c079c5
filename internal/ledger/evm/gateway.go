package evm

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog"

	"go-teachain-ws/internal/ledger"
)

// Config carries the ledger endpoint settings. PrivateKeyHex may be empty
// for read-only deployments; every write then fails with
// GatewayUnavailableError instead of crashing.
type Config struct {
	RPCURL          string
	ContractAddress string
	ChainID         int64
	PrivateKeyHex   string
	Timeout         time.Duration
}

const defaultTimeout = 90 * time.Second

// ContractGateway implements ledger.Gateway over an EVM JSON-RPC endpoint.
// Writes are signed with the service key, mined under the configured
// timeout, and confirmed by decoding the receipt's event logs. Nothing is
// retried: a failed round-trip surfaces once and the caller decides.
type ContractGateway struct {
	client   *ethclient.Client
	contract *bind.BoundContract
	parsed   abi.ABI
	addr     ethcommon.Address
	chainID  *big.Int
	key      *ecdsa.PrivateKey
	caller   ethcommon.Address
	timeout  time.Duration
	log      zerolog.Logger
}

// Dial connects to the configured endpoint and binds the contract.
func Dial(cfg Config, log zerolog.Logger) (*ContractGateway, error) {
	if cfg.RPCURL == "" {
		return nil, &ledger.GatewayUnavailableError{Reason: "RPC URL not configured"}
	}
	if cfg.ContractAddress == "" {
		return nil, &ledger.GatewayUnavailableError{Reason: "contract address not configured"}
	}

	client, err := ethclient.Dial(cfg.RPCURL)
	if err != nil {
		return nil, &ledger.GatewayUnavailableError{Reason: fmt.Sprintf("dial %s: %v", cfg.RPCURL, err)}
	}

	parsed, err := abi.JSON(strings.NewReader(contractJSON))
	if err != nil {
		return nil, fmt.Errorf("parse contract ABI: %w", err)
	}

	g := &ContractGateway{
		client:  client,
		parsed:  parsed,
		addr:    ethcommon.HexToAddress(cfg.ContractAddress),
		chainID: big.NewInt(cfg.ChainID),
		timeout: cfg.Timeout,
		log:     log.With().Str("component", "evm_gateway").Logger(),
	}
	if g.timeout <= 0 {
		g.timeout = defaultTimeout
	}
	g.contract = bind.NewBoundContract(g.addr, parsed, client, client, client)

	if cfg.PrivateKeyHex != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKeyHex, "0x"))
		if err != nil {
			return nil, fmt.Errorf("parse service key: %w", err)
		}
		g.key = key
		g.caller = crypto.PubkeyToAddress(key.PublicKey)
		g.log.Info().Str("caller", g.caller.Hex()).Str("contract", g.addr.Hex()).Msg("write session configured")
	} else {
		g.log.Info().Str("contract", g.addr.Hex()).Msg("read-only gateway configured")
	}

	return g, nil
}

// Caller returns the wallet address the gateway signs with, or "" when no
// key is configured.
func (g *ContractGateway) Caller() string {
	if g.key == nil {
		return ""
	}
	return g.caller.Hex()
}

func (g *ContractGateway) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, g.timeout)
}

func (g *ContractGateway) opTimeout(ctx context.Context, op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &ledger.TimeoutError{Op: op}
	}
	return err
}

func (g *ContractGateway) call(ctx context.Context, out *[]interface{}, method string, args ...interface{}) error {
	ctx, cancel := g.withDeadline(ctx)
	defer cancel()

	opts := &bind.CallOpts{Context: ctx}
	if g.key != nil {
		// view methods that filter by msg.sender need the caller identity
		opts.From = g.caller
	}
	if err := g.contract.Call(opts, out, method, args...); err != nil {
		return g.opTimeout(ctx, method, fmt.Errorf("call %s: %w", method, err))
	}
	return nil
}

// transact submits a write, waits for it to mine, and returns the receipt
// with this transaction's decoded contract events.
func (g *ContractGateway) transact(ctx context.Context, method string, args ...interface{}) (*ledger.Receipt, error) {
	if g.key == nil {
		return nil, &ledger.GatewayUnavailableError{Reason: "no signing key configured"}
	}

	ctx, cancel := g.withDeadline(ctx)
	defer cancel()

	opts, err := bind.NewKeyedTransactorWithChainID(g.key, g.chainID)
	if err != nil {
		return nil, fmt.Errorf("build transactor: %w", err)
	}
	opts.Context = ctx

	tx, err := g.contract.Transact(opts, method, args...)
	if err != nil {
		// reverts usually surface here, during gas estimation
		return nil, g.opTimeout(ctx, method, g.asReverted(err))
	}

	receipt, err := bind.WaitMined(ctx, g.client, tx)
	if err != nil {
		return nil, g.opTimeout(ctx, method, fmt.Errorf("wait for %s receipt: %w", method, err))
	}
	if receipt.Status == types.ReceiptStatusFailed {
		reason := g.minedRevertReason(ctx, tx, receipt)
		return nil, &ledger.TransactionRevertedError{Reason: reason}
	}

	decoded := g.decodeReceipt(receipt)
	g.log.Debug().
		Str("method", method).
		Str("tx_hash", decoded.TxHash).
		Int("events", len(decoded.Events)).
		Msg("transaction mined")
	return decoded, nil
}

// decodeReceipt keeps only this transaction's logs from the watched contract
// and decodes them into the typed event union.
func (g *ContractGateway) decodeReceipt(receipt *types.Receipt) *ledger.Receipt {
	out := &ledger.Receipt{
		TxHash:      receipt.TxHash.Hex(),
		BlockNumber: receipt.BlockNumber.Uint64(),
	}
	for _, lg := range receipt.Logs {
		if lg.TxHash != receipt.TxHash || lg.Address != g.addr {
			continue
		}
		ev, err := g.decodeLog(lg)
		if err != nil {
			g.log.Warn().Err(err).Str("tx_hash", out.TxHash).Msg("failed to parse event log")
			continue
		}
		if ev != nil {
			out.Events = append(out.Events, ev)
		}
	}
	return out
}

// minedRevertReason replays a failed transaction as a call at its block to
// recover the revert reason. Best effort; falls back to "Unknown error".
func (g *ContractGateway) minedRevertReason(ctx context.Context, tx *types.Transaction, receipt *types.Receipt) string {
	from, err := types.Sender(types.LatestSignerForChainID(g.chainID), tx)
	if err != nil {
		from = g.caller
	}
	msg := ethereum.CallMsg{
		From:  from,
		To:    tx.To(),
		Gas:   tx.Gas(),
		Value: tx.Value(),
		Data:  tx.Data(),
	}
	if _, err := g.client.CallContract(ctx, msg, receipt.BlockNumber); err != nil {
		if reverted, ok := g.asReverted(err).(*ledger.TransactionRevertedError); ok {
			return reverted.Reason
		}
	}
	return "Unknown error"
}

func (g *ContractGateway) ProductDetails(ctx context.Context, productID uint64) (ledger.RawProduct, ledger.RawBatch, []ledger.RawStageEntry, error) {
	var out []interface{}
	if err := g.call(ctx, &out, "getProductDetails", new(big.Int).SetUint64(productID)); err != nil {
		return ledger.RawProduct{}, ledger.RawBatch{}, nil, err
	}
	if len(out) != 3 {
		return ledger.RawProduct{}, ledger.RawBatch{}, nil,
			&ledger.DecodeError{Field: "getProductDetails", Detail: fmt.Sprintf("expected 3 results, got %d", len(out))}
	}

	product := *abi.ConvertType(out[0], new(wireProduct)).(*wireProduct)
	batch := *abi.ConvertType(out[1], new(wireBatch)).(*wireBatch)
	stages := *abi.ConvertType(out[2], new([]wireStageEntry)).(*[]wireStageEntry)

	rawStages := make([]ledger.RawStageEntry, len(stages))
	for i, s := range stages {
		rawStages[i] = s.raw()
	}
	return product.raw(), batch.raw(), rawStages, nil
}

func (g *ContractGateway) BatchDetails(ctx context.Context, batchNo uint64) (ledger.RawBatch, error) {
	var out []interface{}
	if err := g.call(ctx, &out, "getBatchDetails", new(big.Int).SetUint64(batchNo)); err != nil {
		return ledger.RawBatch{}, err
	}
	if len(out) != 1 {
		return ledger.RawBatch{}, &ledger.DecodeError{Field: "getBatchDetails", Detail: fmt.Sprintf("expected 1 result, got %d", len(out))}
	}
	batch := *abi.ConvertType(out[0], new(wireBatch)).(*wireBatch)
	return batch.raw(), nil
}

func (g *ContractGateway) ProductsByUser(ctx context.Context) ([]ledger.RawProduct, error) {
	var out []interface{}
	if err := g.call(ctx, &out, "getProductsByUser"); err != nil {
		return nil, err
	}
	if len(out) != 1 {
		return nil, &ledger.DecodeError{Field: "getProductsByUser", Detail: fmt.Sprintf("expected 1 result, got %d", len(out))}
	}
	products := *abi.ConvertType(out[0], new([]wireProduct)).(*[]wireProduct)
	raws := make([]ledger.RawProduct, len(products))
	for i, p := range products {
		raws[i] = p.raw()
	}
	return raws, nil
}

func (g *ContractGateway) AllUsers(ctx context.Context) ([]ledger.RawUser, error) {
	var out []interface{}
	if err := g.call(ctx, &out, "getAllUsers"); err != nil {
		return nil, err
	}
	if len(out) != 1 {
		return nil, &ledger.DecodeError{Field: "getAllUsers", Detail: fmt.Sprintf("expected 1 result, got %d", len(out))}
	}
	users := *abi.ConvertType(out[0], new([]wireUser)).(*[]wireUser)
	raws := make([]ledger.RawUser, len(users))
	for i, u := range users {
		raws[i] = u.raw()
	}
	return raws, nil
}

func (g *ContractGateway) AddProduct(ctx context.Context, in ledger.ProductSubmission) (*ledger.Receipt, error) {
	return g.transact(ctx, "addProduct",
		in.Name, in.ProductType, in.Description,
		new(big.Int).SetUint64(in.BatchNo),
		new(big.Int).SetUint64(in.ManufacturedDate),
		new(big.Int).SetUint64(in.ExpiryDate),
		new(big.Int).SetUint64(in.Price))
}

func (g *ContractGateway) ProductCheckIn(ctx context.Context, productID uint64, stage uint8, remark string) (*ledger.Receipt, error) {
	return g.transact(ctx, "productCheckIn", new(big.Int).SetUint64(productID), stage, remark)
}

func (g *ContractGateway) ProductStageUpdate(ctx context.Context, productID uint64, stage uint8, remark string) (*ledger.Receipt, error) {
	return g.transact(ctx, "productStageUpdate", new(big.Int).SetUint64(productID), stage, remark)
}

func (g *ContractGateway) CreateBatch(ctx context.Context, name, description string) (*ledger.Receipt, error) {
	return g.transact(ctx, "createBatch", name, description)
}

func (g *ContractGateway) AddUser(ctx context.Context, wallet, name, place string, role uint8) (*ledger.Receipt, error) {
	return g.transact(ctx, "addUser", ethcommon.HexToAddress(wallet), name, place, role)
}

func (g *ContractGateway) RegisterUser(ctx context.Context, name, place string, role uint8) (*ledger.Receipt, error) {
	return g.transact(ctx, "registerUser", name, place, role)
}

func (g *ContractGateway) UpdateUserStatus(ctx context.Context, wallet string, status uint8) (*ledger.Receipt, error) {
	return g.transact(ctx, "updateUserStatus", ethcommon.HexToAddress(wallet), status)
}
