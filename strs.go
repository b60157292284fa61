package farmkv

import (
	"bytes"
	"regexp"
	"sort"
	"time"
)

// Set stores value under key, with the db's default ttl.
func (db *DB) Set(key, value []byte) error {
	return db.SetEX(key, value, db.opts.DefaultTTL)
}

// SetEX stores value under key. A non-positive ttl never expires.
func (db *DB) SetEX(key, value []byte, ttl time.Duration) error {
	s, err := db.shardFor(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.idxTree.Put(cloneBytes(key), db.newIndexNode(key, value, ttl))
	return nil
}

// SetNX sets key only if it does not hold a live value.
func (db *DB) SetNX(key, value []byte) (bool, error) {
	s, err := db.shardFor(key)
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.getIndexNode(key, time.Now().UnixNano()); err == nil {
		return false, nil
	}
	s.idxTree.Put(cloneBytes(key), db.newIndexNode(key, value, db.opts.DefaultTTL))
	return true, nil
}

// Get returns a copy of the value stored under key.
func (db *DB) Get(key []byte) ([]byte, error) {
	s, err := db.shardFor(key)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	node, err := s.getIndexNode(key, time.Now().UnixNano())
	if err != nil {
		return nil, err
	}
	return cloneBytes(node.value), nil
}

// MGet get the values of all specified keys. Missing keys yield nil.
func (db *DB) MGet(keys [][]byte) ([][]byte, error) {
	if len(keys) == 0 {
		return nil, ErrWrongNumberOfArgs
	}
	values := make([][]byte, len(keys))
	for i, key := range keys {
		val, err := db.Get(key)
		if err != nil && err != ErrKeyNotFound {
			return nil, err
		}
		values[i] = val
	}
	return values, nil
}

// GetDel returns the value of key and deletes it. A missing key returns nil
// and no error.
func (db *DB) GetDel(key []byte) ([]byte, error) {
	s, err := db.shardFor(key)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	node, err := s.getIndexNode(key, time.Now().UnixNano())
	if err != nil {
		return nil, nil
	}
	s.idxTree.Delete(key)
	return node.value, nil
}

// Delete removes key. Deleting a missing key is not an error.
func (db *DB) Delete(key []byte) error {
	s, err := db.shardFor(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.idxTree.Delete(key)
	return nil
}

func (db *DB) Exists(key []byte) bool {
	_, err := db.Get(key)
	return err == nil
}

// StrLen returns the length of the value stored under key, or 0 when key is
// missing.
func (db *DB) StrLen(key []byte) int {
	val, err := db.Get(key)
	if err != nil {
		return 0
	}
	return len(val)
}

// Fingerprint returns the farm hash recorded when key was stored.
func (db *DB) Fingerprint(key []byte) (uint64, error) {
	s, err := db.shardFor(key)
	if err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	node, err := s.getIndexNode(key, time.Now().UnixNano())
	if err != nil {
		return 0, err
	}
	return node.fingerprint, nil
}

// Count returns the number of live keys.
func (db *DB) Count() int {
	if db.isClosed() {
		return 0
	}
	now := time.Now().UnixNano()
	var n int
	for _, s := range db.shards {
		s.mu.RLock()
		s.idxTree.ForEach(func(_ []byte, value interface{}) bool {
			if node, _ := value.(*indexNode); node != nil && !node.expired(now) {
				n++
			}
			return true
		})
		s.mu.RUnlock()
	}
	return n
}

// Scan returns up to count live key/value pairs, flattened as
// [k1, v1, k2, v2, ...], whose keys start with prefix and match pattern.
// Keys are returned in byte order across all shards.
func (db *DB) Scan(prefix []byte, pattern string, count int) ([][]byte, error) {
	if db.isClosed() {
		return nil, ErrDBClosed
	}
	if count <= 0 {
		return nil, nil
	}

	var reg *regexp.Regexp
	if pattern != "" {
		var err error
		if reg, err = regexp.Compile(pattern); err != nil {
			return nil, err
		}
	}

	type pair struct{ key, value []byte }
	var pairs []pair
	now := time.Now().UnixNano()
	for _, s := range db.shards {
		s.mu.RLock()
		found := 0
		for _, key := range s.idxTree.PrefixScan(prefix, -1) {
			if reg != nil && !reg.Match(key) {
				continue
			}
			node, err := s.getIndexNode(key, now)
			if err != nil {
				continue
			}
			pairs = append(pairs, pair{key, node.value})
			if found++; found == count {
				break
			}
		}
		s.mu.RUnlock()
	}

	sort.Slice(pairs, func(i, j int) bool {
		return bytes.Compare(pairs[i].key, pairs[j].key) < 0
	})
	if len(pairs) > count {
		pairs = pairs[:count]
	}
	results := make([][]byte, 0, len(pairs)*2)
	for _, p := range pairs {
		results = append(results, cloneBytes(p.key), cloneBytes(p.value))
	}
	return results, nil
}

// Keys returns a copy of every live key in byte order.
func (db *DB) Keys() ([][]byte, error) {
	if db.isClosed() {
		return nil, ErrDBClosed
	}
	var keys [][]byte
	now := time.Now().UnixNano()
	for _, s := range db.shards {
		s.mu.RLock()
		s.idxTree.ForEach(func(key []byte, value interface{}) bool {
			if node, _ := value.(*indexNode); node != nil && !node.expired(now) {
				keys = append(keys, cloneBytes(key))
			}
			return true
		})
		s.mu.RUnlock()
	}
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i], keys[j]) < 0
	})
	return keys, nil
}

// Expire sets a ttl on an existing key. A non-positive ttl is ignored.
func (db *DB) Expire(key []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return db.updateExpiry(key, time.Now().Add(ttl).UnixNano())
}

// Persist removes the expiration time for the given key.
func (db *DB) Persist(key []byte) error {
	return db.updateExpiry(key, 0)
}

func (db *DB) updateExpiry(key []byte, expiredAt int64) error {
	s, err := db.shardFor(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	node, err := s.getIndexNode(key, time.Now().UnixNano())
	if err != nil {
		return err
	}
	node.expiredAt = expiredAt
	return nil
}

// TTL returns the remaining seconds to live, rounded up, or 0 when key never
// expires.
func (db *DB) TTL(key []byte) (int64, error) {
	s, err := db.shardFor(key)
	if err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now().UnixNano()
	node, err := s.getIndexNode(key, now)
	if err != nil {
		return 0, err
	}
	if node.expiredAt == 0 {
		return 0, nil
	}
	// Round up so a live key never reports 0.
	left := time.Duration(node.expiredAt - now)
	return int64((left + time.Second - 1) / time.Second), nil
}

// Cas Compare and Set. if current value of key is the same as oldValue,set newValue
func (db *DB) Cas(key, oldValue, newValue []byte) (bool, error) {
	s, err := db.shardFor(key)
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	node, err := s.getIndexNode(key, time.Now().UnixNano())
	if err != nil {
		return false, nil
	}
	if !bytes.Equal(oldValue, node.value) {
		return false, nil
	}
	updated := db.newIndexNode(key, newValue, 0)
	updated.expiredAt = node.expiredAt
	s.idxTree.Put(cloneBytes(key), updated)
	return true, nil
}

// Cad Compare and Delete. key is deleted only if it holds delValue.
func (db *DB) Cad(key, delValue []byte) (bool, error) {
	s, err := db.shardFor(key)
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	node, err := s.getIndexNode(key, time.Now().UnixNano())
	if err != nil {
		return false, err
	}
	if !bytes.Equal(node.value, delValue) {
		return false, nil
	}
	s.idxTree.Delete(key)
	return true, nil
}
