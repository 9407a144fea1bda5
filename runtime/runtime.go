// Copyright (c) 2023 The Lucre developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime drives transaction execution over the ledger.
//
// Transactions are applied strictly sequentially per Runtime instance, each
// against a fresh fork of the last committed snapshot. A successful fork is
// committed atomically; a rejected one is discarded without side effects.
// Independent Runtime instances may execute concurrently.
package runtime

import (
	"sync"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/inconshreveable/log15"
	"github.com/pkg/errors"

	"github.com/lucreledger/lucre/kv"
	"github.com/lucreledger/lucre/lucre"
	"github.com/lucreledger/lucre/metrics"
	"github.com/lucreledger/lucre/muxdb"
	"github.com/lucreledger/lucre/schema"
	"github.com/lucreledger/lucre/trie"
	"github.com/lucreledger/lucre/tx"
)

const (
	receiptsBucketName = "receipts"
	propsBucketName    = "props"
)

var rootsKey = []byte("roots")

// Config carries the service parameters injected at construction.
type Config struct {
	// ServiceID identifies the ledger service in transaction envelopes.
	ServiceID uint16
	// InitialBalance is granted to every newly created account.
	InitialBalance uint64
}

// DefaultConfig returns the standard service parameters.
func DefaultConfig() Config {
	return Config{
		ServiceID:      lucre.ServiceID,
		InitialBalance: lucre.InitialBalance,
	}
}

// Outcome is the recorded result of one applied transaction.
type Outcome struct {
	TxID lucre.Bytes32
	// Err is nil on success, or the typed rejection otherwise.
	Err *Error
}

// Success reports whether the transaction committed.
func (o *Outcome) Success() bool {
	return o.Err == nil
}

// receipt is the stored form of an outcome.
type receipt struct {
	Success bool
	Code    uint8
	Desc    string
}

// Runtime is the execution driver. It owns the fork/commit boundary and the
// committed snapshot roots.
type Runtime struct {
	db       *muxdb.MuxDB
	config   Config
	receipts kv.GetPutter
	props    kv.GetPutter
	logger   log15.Logger
	txMeter  metrics.CountVecMeter

	lock  sync.RWMutex // guards roots; held exclusively across apply
	roots schema.Roots
}

// New creates a runtime over db. Committed roots persisted by an earlier
// instance are picked up, so a ledger survives restarts.
func New(db *muxdb.MuxDB, config Config) (*Runtime, error) {
	rt := &Runtime{
		db:       db,
		config:   config,
		receipts: db.NewBucket(receiptsBucketName),
		props:    db.NewBucket(propsBucketName),
		logger:   log15.New("pkg", "runtime"),
		txMeter:  metrics.CounterVec("tx_applied_count", []string{"status"}),
	}

	data, err := rt.props.Get(rootsKey)
	if err != nil {
		if !rt.props.IsNotFound(err) {
			return nil, errors.Wrap(err, "load committed roots")
		}
		return rt, nil
	}
	if err := rlp.DecodeBytes(data, &rt.roots); err != nil {
		return nil, errors.Wrap(err, "decode committed roots")
	}
	return rt, nil
}

// Apply executes one transaction against a fresh fork of the last committed
// snapshot, commits on success and discards on failure, and records the
// outcome under the transaction identifier.
//
// The returned Outcome carries the typed rejection if the transaction was
// invalid. A non-nil error denotes a storage fault; the transaction's effect
// is then unspecified-but-uncommitted and the outcome is not recorded.
func (rt *Runtime) Apply(trx *tx.Transaction) (*Outcome, error) {
	rt.lock.Lock()
	defer rt.lock.Unlock()

	id := trx.ID()
	out := &Outcome{TxID: id}

	s := schema.New(rt.db, rt.roots)
	var newRoots *schema.Roots
	if err := rt.execute(s, trx); err != nil {
		var terr *Error
		if !errors.As(err, &terr) {
			return nil, err
		}
		// discard the fork, keep the typed rejection
		out.Err = terr
		rt.logger.Debug("transaction rejected",
			"id", id, "code", terr.Code(), "desc", terr.Error())
	} else {
		roots, err := s.Stage().Commit()
		if err != nil {
			return nil, err
		}
		newRoots = &roots
		rt.logger.Debug("transaction committed", "id", id)
	}

	if err := rt.record(id, out, newRoots); err != nil {
		return nil, err
	}
	if newRoots != nil {
		rt.roots = *newRoots
	}
	status := "success"
	if !out.Success() {
		status = "rejected"
	}
	rt.txMeter.AddWithLabel(1, map[string]string{"status": status})
	return out, nil
}

// record persists the receipt, and the new roots when the transaction
// committed, in a single batch.
func (rt *Runtime) record(id lucre.Bytes32, out *Outcome, roots *schema.Roots) error {
	batch := rt.db.NewBatch()

	r := receipt{Success: out.Success()}
	if out.Err != nil {
		r.Code = out.Err.Code()
		r.Desc = out.Err.Error()
	}
	data, err := rlp.EncodeToBytes(&r)
	if err != nil {
		return err
	}
	if err := rt.db.BucketWriter(batch, receiptsBucketName).Put(id.Bytes(), data); err != nil {
		return err
	}

	if roots != nil {
		data, err := rlp.EncodeToBytes(roots)
		if err != nil {
			return err
		}
		if err := rt.db.BucketWriter(batch, propsBucketName).Put(rootsKey, data); err != nil {
			return err
		}
	}
	return batch.Write()
}

// Receipt returns the recorded outcome of the given transaction, or nil if
// the transaction was never applied.
func (rt *Runtime) Receipt(id lucre.Bytes32) (*Outcome, error) {
	data, err := rt.receipts.Get(id.Bytes())
	if err != nil {
		if rt.receipts.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var r receipt
	if err := rlp.DecodeBytes(data, &r); err != nil {
		return nil, err
	}
	out := &Outcome{TxID: id}
	if !r.Success {
		out.Err = &Error{r.Code, r.Desc}
	}
	return out, nil
}

func (rt *Runtime) snapshot() schema.Roots {
	rt.lock.RLock()
	defer rt.lock.RUnlock()
	return rt.roots
}

// StateFingerprint returns the per-index digests of the committed snapshot in
// their fixed order (accounts, transfers).
func (rt *Runtime) StateFingerprint() []lucre.Bytes32 {
	return rt.snapshot().Fingerprint()
}

// GetAccount returns the account under the given public key in the committed
// snapshot, or nil if there is none.
func (rt *Runtime) GetAccount(pubKey lucre.PublicKey) (*schema.Account, error) {
	return schema.New(rt.db, rt.snapshot()).Account(pubKey)
}

// GetAccountProof returns the state fingerprint and a membership-or-absence
// proof for the given public key, verifiable without access to the ledger.
func (rt *Runtime) GetAccountProof(pubKey lucre.PublicKey) ([]lucre.Bytes32, *trie.Proof, error) {
	roots := rt.snapshot()
	proof, err := schema.New(rt.db, roots).ProveAccount(pubKey)
	if err != nil {
		return nil, nil, err
	}
	return roots.Fingerprint(), proof, nil
}
