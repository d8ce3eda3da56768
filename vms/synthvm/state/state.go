// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package state persists the exchange records with a fixed-size binary
// encoding. Writes are buffered in a version database until Commit.
package state

import (
	"errors"
	"fmt"

	"github.com/luxfi/cache"
	"github.com/luxfi/cache/lru"
	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/database/versiondb"
	"github.com/luxfi/ids"

	"github.com/luxfi/synthvm/vms/synthvm/account"
	"github.com/luxfi/synthvm/vms/synthvm/assets"
	"github.com/luxfi/synthvm/vms/synthvm/exchange"
	"github.com/luxfi/synthvm/vms/synthvm/swapline"
	"github.com/luxfi/synthvm/vms/synthvm/vault"
)

const accountCacheSize = 2048

var (
	SingletonPrefix  = []byte("singleton")
	AccountPrefix    = []byte("account")
	VaultPrefix      = []byte("vault")
	EntryPrefix      = []byte("entry")
	SwaplinePrefix   = []byte("swapline")
	SettlementPrefix = []byte("settlement")

	exchangeKey = []byte("exchange")
	assetsKey   = []byte("assets")

	ErrNotInitialized = errors.New("exchange state is not initialized")

	_ State = (*state)(nil)
)

// Reader exposes the persisted records. Missing accounts, vaults, entries,
// swaplines and settlements are reported with database.ErrNotFound.
type Reader interface {
	GetExchange() (*exchange.State, error)
	GetAssets() (*assets.List, error)
	GetAccount(owner ids.ShortID) (*account.Account, error)
	GetVault(key vault.Key) (*vault.Vault, error)
	GetEntry(owner ids.ShortID, key vault.Key) (*vault.Entry, error)
	GetSwapline(key swapline.Key) (*swapline.Swapline, error)
	GetSettlement(syntheticIndex uint8) (*assets.Settlement, error)
}

type State interface {
	Reader

	PutExchange(s *exchange.State) error
	PutAssets(l *assets.List) error
	PutAccount(a *account.Account) error
	PutVault(v *vault.Vault) error
	PutEntry(e *vault.Entry) error
	PutSwapline(l *swapline.Swapline) error
	PutSettlement(st *assets.Settlement) error

	// Initialize writes the genesis records unless the database already
	// holds an exchange.
	Initialize(s *exchange.State, l *assets.List) error

	// Commit writes every buffered change to the underlying database.
	Commit() error
	// Abort discards every buffered change.
	Abort()
	Close() error
}

type state struct {
	baseDB *versiondb.Database

	singletonDB database.Database

	modifiedAccounts map[ids.ShortID]*account.Account            // owner -> account written since the last commit
	accountCache     cache.Cacher[ids.ShortID, *account.Account] // owner -> committed account; if the entry is nil, it is not in the database
	accountDB        database.Database

	vaultDB      database.Database
	entryDB      database.Database
	swaplineDB   database.Database
	settlementDB database.Database
}

func New(db database.Database) State {
	baseDB := versiondb.New(db)
	return &state{
		baseDB:      baseDB,
		singletonDB: prefixdb.New(SingletonPrefix, baseDB),

		modifiedAccounts: make(map[ids.ShortID]*account.Account),
		accountCache:     lru.NewCache[ids.ShortID, *account.Account](accountCacheSize),
		accountDB:        prefixdb.New(AccountPrefix, baseDB),

		vaultDB:      prefixdb.New(VaultPrefix, baseDB),
		entryDB:      prefixdb.New(EntryPrefix, baseDB),
		swaplineDB:   prefixdb.New(SwaplinePrefix, baseDB),
		settlementDB: prefixdb.New(SettlementPrefix, baseDB),
	}
}

func vaultKey(key vault.Key) []byte {
	return []byte{key.Collateral, key.Synthetic}
}

func entryKey(owner ids.ShortID, key vault.Key) []byte {
	b := make([]byte, 0, shortIDLen+2)
	b = append(b, owner[:]...)
	return append(b, key.Collateral, key.Synthetic)
}

func swaplineKey(key swapline.Key) []byte {
	return []byte{key.SyntheticIndex, key.CollateralIndex}
}

func (s *state) Initialize(genesis *exchange.State, l *assets.List) error {
	has, err := s.singletonDB.Has(exchangeKey)
	if err != nil {
		return err
	}
	if has {
		return nil
	}
	if err := s.PutExchange(genesis); err != nil {
		return err
	}
	if err := s.PutAssets(l); err != nil {
		return err
	}
	return s.Commit()
}

func (s *state) GetExchange() (*exchange.State, error) {
	b, err := s.singletonDB.Get(exchangeKey)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotInitialized
	}
	if err != nil {
		return nil, err
	}
	return UnmarshalExchange(b)
}

func (s *state) GetAssets() (*assets.List, error) {
	b, err := s.singletonDB.Get(assetsKey)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotInitialized
	}
	if err != nil {
		return nil, err
	}
	return UnmarshalList(b)
}

// GetAccount returns a copy of the account so that callers never mutate a
// cached record.
func (s *state) GetAccount(owner ids.ShortID) (*account.Account, error) {
	if a, ok := s.modifiedAccounts[owner]; ok {
		return copyAccount(a), nil
	}
	if a, ok := s.accountCache.Get(owner); ok {
		if a == nil {
			return nil, database.ErrNotFound
		}
		return copyAccount(a), nil
	}

	b, err := s.accountDB.Get(owner[:])
	if errors.Is(err, database.ErrNotFound) {
		s.accountCache.Put(owner, nil)
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	a, err := UnmarshalAccount(b)
	if err != nil {
		return nil, err
	}
	s.accountCache.Put(owner, a)
	return copyAccount(a), nil
}

func copyAccount(a *account.Account) *account.Account {
	c := *a
	return &c
}

func (s *state) GetVault(key vault.Key) (*vault.Vault, error) {
	b, err := s.vaultDB.Get(vaultKey(key))
	if err != nil {
		return nil, err
	}
	return UnmarshalVault(b)
}

func (s *state) GetEntry(owner ids.ShortID, key vault.Key) (*vault.Entry, error) {
	b, err := s.entryDB.Get(entryKey(owner, key))
	if err != nil {
		return nil, err
	}
	return UnmarshalEntry(b)
}

func (s *state) GetSwapline(key swapline.Key) (*swapline.Swapline, error) {
	b, err := s.swaplineDB.Get(swaplineKey(key))
	if err != nil {
		return nil, err
	}
	return UnmarshalSwapline(b)
}

func (s *state) GetSettlement(syntheticIndex uint8) (*assets.Settlement, error) {
	b, err := s.settlementDB.Get([]byte{syntheticIndex})
	if err != nil {
		return nil, err
	}
	return UnmarshalSettlement(b)
}

func (s *state) PutExchange(e *exchange.State) error {
	b, err := MarshalExchange(e)
	if err != nil {
		return err
	}
	return s.singletonDB.Put(exchangeKey, b)
}

func (s *state) PutAssets(l *assets.List) error {
	b, err := MarshalList(l)
	if err != nil {
		return err
	}
	return s.singletonDB.Put(assetsKey, b)
}

func (s *state) PutAccount(a *account.Account) error {
	b, err := MarshalAccount(a)
	if err != nil {
		return err
	}
	if err := s.accountDB.Put(a.Owner[:], b); err != nil {
		return err
	}
	s.modifiedAccounts[a.Owner] = copyAccount(a)
	return nil
}

func (s *state) PutVault(v *vault.Vault) error {
	b, err := MarshalVault(v)
	if err != nil {
		return err
	}
	return s.vaultDB.Put(vaultKey(v.Key()), b)
}

func (s *state) PutEntry(e *vault.Entry) error {
	b, err := MarshalEntry(e)
	if err != nil {
		return err
	}
	return s.entryDB.Put(entryKey(e.Owner, e.Key()), b)
}

func (s *state) PutSwapline(l *swapline.Swapline) error {
	b, err := MarshalSwapline(l)
	if err != nil {
		return err
	}
	return s.swaplineDB.Put(swaplineKey(l.Key()), b)
}

func (s *state) PutSettlement(st *assets.Settlement) error {
	b, err := MarshalSettlement(st)
	if err != nil {
		return err
	}
	return s.settlementDB.Put([]byte{st.SyntheticIndex}, b)
}

func (s *state) Commit() error {
	defer s.Abort()
	batch, err := s.baseDB.CommitBatch()
	if err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return err
	}
	for owner, a := range s.modifiedAccounts {
		s.accountCache.Put(owner, a)
	}
	return nil
}

func (s *state) Abort() {
	s.baseDB.Abort()
	clear(s.modifiedAccounts)
}

func (s *state) Close() error {
	errs := []error{
		s.singletonDB.Close(),
		s.accountDB.Close(),
		s.vaultDB.Close(),
		s.entryDB.Close(),
		s.swaplineDB.Close(),
		s.settlementDB.Close(),
		s.baseDB.Close(),
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("closing state: %w", err)
	}
	return nil
}
