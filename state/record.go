package state

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// encodeGob serializes a value using gob encoding.
func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGob deserializes gob-encoded data into a value.
func decodeGob(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

// Item is a single typed record stored under a fixed key.
type Item[T any] struct {
	bucket []byte
	key    []byte
}

// NewItem returns an Item stored at bucket/key.
func NewItem[T any](bucket, key string) Item[T] {
	return Item[T]{bucket: []byte(bucket), key: []byte(key)}
}

// Load decodes the record. Returns ErrNotFound if it was never saved.
func (i Item[T]) Load(tx Tx) (T, error) {
	var v T
	data := tx.Get(i.bucket, i.key)
	if data == nil {
		return v, fmt.Errorf("%w: %s/%s", ErrNotFound, i.bucket, i.key)
	}
	if err := decodeGob(data, &v); err != nil {
		return v, fmt.Errorf("%w: %s/%s: %w", ErrDecode, i.bucket, i.key, err)
	}
	return v, nil
}

// Exists reports whether the record has been saved.
func (i Item[T]) Exists(tx Tx) bool {
	return tx.Get(i.bucket, i.key) != nil
}

// Save encodes and stores v.
func (i Item[T]) Save(tx Tx, v T) error {
	data, err := encodeGob(v)
	if err != nil {
		return fmt.Errorf("state: encode %s/%s: %w", i.bucket, i.key, err)
	}
	return tx.Put(i.bucket, i.key, data)
}

// Map is a bucket of typed records keyed by string.
type Map[T any] struct {
	bucket []byte
}

// NewMap returns a Map stored in bucket.
func NewMap[T any](bucket string) Map[T] {
	return Map[T]{bucket: []byte(bucket)}
}

// Load decodes the record stored under key. Returns ErrNotFound if absent.
func (m Map[T]) Load(tx Tx, key string) (T, error) {
	var v T
	data := tx.Get(m.bucket, []byte(key))
	if data == nil {
		return v, fmt.Errorf("%w: %s/%s", ErrNotFound, m.bucket, key)
	}
	if err := decodeGob(data, &v); err != nil {
		return v, fmt.Errorf("%w: %s/%s: %w", ErrDecode, m.bucket, key, err)
	}
	return v, nil
}

// Has reports whether a record exists under key.
func (m Map[T]) Has(tx Tx, key string) bool {
	return tx.Get(m.bucket, []byte(key)) != nil
}

// Save encodes and stores v under key.
func (m Map[T]) Save(tx Tx, key string, v T) error {
	data, err := encodeGob(v)
	if err != nil {
		return fmt.Errorf("state: encode %s/%s: %w", m.bucket, key, err)
	}
	return tx.Put(m.bucket, []byte(key), data)
}

// Remove deletes the record stored under key.
func (m Map[T]) Remove(tx Tx, key string) error {
	return tx.Delete(m.bucket, []byte(key))
}

// Range visits records whose key starts with prefix in ascending key order,
// starting strictly after `after` when it is non-empty. Iteration stops when
// fn returns false or a record fails to decode.
func (m Map[T]) Range(tx Tx, prefix, after string, fn func(key string, v T) bool) error {
	var start []byte
	if after != "" {
		start = []byte(after)
	}

	var decodeErr error
	err := tx.Scan(m.bucket, []byte(prefix), start, func(k, data []byte) bool {
		var v T
		if err := decodeGob(data, &v); err != nil {
			decodeErr = fmt.Errorf("%w: %s/%s: %w", ErrDecode, m.bucket, k, err)
			return false
		}
		return fn(string(k), v)
	})
	if err != nil {
		return err
	}
	return decodeErr
}
