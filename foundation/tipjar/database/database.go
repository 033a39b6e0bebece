// Package database handles the tip lists and creator profiles kept in
// key/value storage. It owns the encoding of every value and emits a change
// notification for each key it writes.
package database

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/ardanlabs/tipjar/foundation/tipjar/storage"
)

// Keys for the persisted lists and the prefix for profile keys.
const (
	SenderKey     = "solanaTipJarRecentTips"
	GlobalKey     = "solanaTipJarGlobalLeaderboard"
	profilePrefix = "creatorProfile_"
)

// Caps for the persisted lists.
const (
	SenderCapDirect = 10
	SenderCapLink   = 5
	GlobalCap       = 50
)

// IsProfileKey reports whether the key names a creator profile and returns
// the address it belongs to.
func IsProfileKey(key string) (string, bool) {
	address, found := strings.CutPrefix(key, profilePrefix)
	return address, found && address != ""
}

// =============================================================================

// Config represents the configuration required to start the database.
type Config struct {
	Storage   storage.Storage
	Notify    func(key string)
	EvHandler func(v string, args ...any)
}

// Database manages the tip lists and profiles.
type Database struct {
	mu        sync.Mutex
	storage   storage.Storage
	notify    func(key string)
	evHandler func(v string, args ...any)
}

// New constructs a database over the specified storage.
func New(cfg Config) *Database {
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	notify := func(key string) {
		if cfg.Notify != nil {
			cfg.Notify(key)
		}
	}

	return &Database{
		storage:   cfg.Storage,
		notify:    notify,
		evHandler: ev,
	}
}

// Close releases the underlying storage.
func (db *Database) Close() error {
	return db.storage.Close()
}

// =============================================================================

// ReadTips returns the list stored under the key, newest first. Missing or
// corrupt content is read as an empty list.
func (db *Database) ReadTips(key string) []TipRecord {
	list, err := db.loadTips(key)
	if err != nil {
		db.evHandler("database: ReadTips: key[%s]: treating as empty: %s", key, err)
		return []TipRecord{}
	}

	return list
}

// AppendTip places a confirmed record at the front of the sender list and
// the global list, truncating them to senderCap and GlobalCap, and then
// emits a single notification for the global key. The record is trusted;
// validation happens before the transfer is submitted.
func (db *Database) AppendTip(rec TipRecord, senderCap int) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.evHandler("database: AppendTip: started: sig[%s] to[%s] amount[%s]", rec.Sig, rec.Address, rec.Amount)
	defer db.evHandler("database: AppendTip: completed")

	sender, err := db.loadTips(SenderKey)
	if err != nil {
		return &PersistenceError{Key: SenderKey, Err: err}
	}

	global, err := db.loadTips(GlobalKey)
	if err != nil {
		return &PersistenceError{Key: GlobalKey, Err: err}
	}

	if err := db.storeTips(SenderKey, prepend(sender, rec, senderCap)); err != nil {
		return err
	}

	if err := db.storeTips(GlobalKey, prepend(global, rec, GlobalCap)); err != nil {
		return err
	}

	db.notify(GlobalKey)

	return nil
}

// loadTips decodes the list under the key. A missing key is an empty list.
func (db *Database) loadTips(key string) ([]TipRecord, error) {
	data, err := db.storage.Get(key)
	if errors.Is(err, storage.ErrNotFound) {
		return []TipRecord{}, nil
	}
	if err != nil {
		return nil, err
	}

	var list []TipRecord
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}

	if list == nil {
		list = []TipRecord{}
	}

	return list, nil
}

// storeTips encodes and writes the list under the key.
func (db *Database) storeTips(key string, list []TipRecord) error {
	data, err := json.Marshal(list)
	if err != nil {
		return &PersistenceError{Key: key, Err: err}
	}

	if err := db.storage.Put(key, data); err != nil {
		return &PersistenceError{Key: key, Err: err}
	}

	return nil
}

// =============================================================================

// QueryProfile returns the profile stored for the address. Malformed content
// is treated as absent and the corrupted entry is cleared.
func (db *Database) QueryProfile(address string) (CreatorProfile, bool) {
	key := ProfileKey(address)

	data, err := db.storage.Get(key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			db.evHandler("database: QueryProfile: key[%s]: ERROR: %s", key, err)
		}
		return CreatorProfile{}, false
	}

	var p CreatorProfile
	if err := json.Unmarshal(data, &p); err != nil {
		db.evHandler("database: QueryProfile: key[%s]: clearing corrupt profile: %s", key, err)
		if err := db.storage.Delete(key); err != nil {
			db.evHandler("database: QueryProfile: key[%s]: ERROR: %s", key, err)
		}
		return CreatorProfile{}, false
	}

	return p, true
}

// Lookup provides QueryProfile with the signature the aggregation
// functions accept.
func (db *Database) Lookup(address string) (CreatorProfile, bool) {
	return db.QueryProfile(address)
}

// SaveProfile overwrites the profile for the address. A blank display name
// is rejected and nothing is written.
func (db *Database) SaveProfile(p CreatorProfile) error {
	p, err := p.normalize()
	if err != nil {
		return err
	}

	data, err := json.Marshal(p)
	if err != nil {
		return &PersistenceError{Key: ProfileKey(p.Address), Err: err}
	}

	key := ProfileKey(p.Address)
	if err := db.storage.Put(key, data); err != nil {
		return &PersistenceError{Key: key, Err: err}
	}

	db.evHandler("database: SaveProfile: address[%s] displayName[%s]", p.Address, p.DisplayName)
	db.notify(key)

	return nil
}
