package host

import (
	"encoding/json"

	storetypes "cosmossdk.io/store/types"
)

// Item is a single JSON-encoded record stored under a fixed key.
type Item[T any] struct {
	key []byte
}

func NewItem[T any](key string) Item[T] {
	return Item[T]{key: []byte(key)}
}

func (i Item[T]) Save(store storetypes.KVStore, v T) error {
	bz, err := json.Marshal(v)
	if err != nil {
		return ErrStorage.Wrapf("failed to encode %s: %s", i.key, err)
	}
	store.Set(i.key, bz)
	return nil
}

// Load fails with ErrStorage when the record is missing.
func (i Item[T]) Load(store storetypes.KVStore) (T, error) {
	var v T
	bz := store.Get(i.key)
	if bz == nil {
		return v, ErrStorage.Wrapf("%s not found", i.key)
	}
	if err := json.Unmarshal(bz, &v); err != nil {
		return v, ErrStorage.Wrapf("failed to decode %s: %s", i.key, err)
	}
	return v, nil
}

// MayLoad returns nil without error when the record is missing.
func (i Item[T]) MayLoad(store storetypes.KVStore) (*T, error) {
	if !store.Has(i.key) {
		return nil, nil
	}
	v, err := i.Load(store)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Update loads the record, applies fn and saves the result. The saved
// record is returned so callers never read it back separately.
func (i Item[T]) Update(store storetypes.KVStore, fn func(T) (T, error)) (T, error) {
	v, err := i.Load(store)
	if err != nil {
		return v, err
	}
	v, err = fn(v)
	if err != nil {
		return v, err
	}
	if err := i.Save(store, v); err != nil {
		return v, err
	}
	return v, nil
}

// Map is a family of JSON records sharing a key namespace.
type Map[T any] struct {
	namespace string
}

func NewMap[T any](namespace string) Map[T] {
	return Map[T]{namespace: namespace}
}

func (m Map[T]) item(key string) Item[T] {
	return NewItem[T](m.namespace + "/" + key)
}

func (m Map[T]) Save(store storetypes.KVStore, key string, v T) error {
	return m.item(key).Save(store, v)
}

func (m Map[T]) Load(store storetypes.KVStore, key string) (T, error) {
	return m.item(key).Load(store)
}

func (m Map[T]) MayLoad(store storetypes.KVStore, key string) (*T, error) {
	return m.item(key).MayLoad(store)
}

func (m Map[T]) Remove(store storetypes.KVStore, key string) {
	store.Delete(m.item(key).key)
}
