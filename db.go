package farmkv

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"farmkv/ds/art"
	"farmkv/farm"
	"farmkv/logger"
	"farmkv/util"
)

var (
	// ErrKeyNotFound key not found
	ErrKeyNotFound = errors.New("key not found")
	// ErrEmptyKey the key has no bytes
	ErrEmptyKey = errors.New("key is empty")
	// ErrWrongNumberOfArgs doesn't match key-value pair numbers
	ErrWrongNumberOfArgs = errors.New("wrong number of arguments")
	// ErrInvalidShards shard count must be positive
	ErrInvalidShards = errors.New("shards must be at least 1")
	// ErrDBClosed the db has been closed
	ErrDBClosed = errors.New("db is closed")
)

type (
	// DB is an in-memory string dictionary split into shards by key hash.
	DB struct {
		shards []*shard
		opts   Options
		route  util.HashFunc
		closed uint32
	}

	shard struct {
		mu      *sync.RWMutex
		idxTree *art.AdaptiveRadixTree
	}

	indexNode struct {
		value       []byte
		fingerprint uint64
		expiredAt   int64
	}
)

func newShard() *shard {
	return &shard{idxTree: art.NewArt(), mu: new(sync.RWMutex)}
}

// Open creates an empty db.
func Open(opts Options) (*DB, error) {
	if opts.Shards < 1 {
		return nil, ErrInvalidShards
	}
	route, err := util.LookupHashFunc(opts.HashFunc)
	if err != nil {
		return nil, err
	}

	db := &DB{
		shards: make([]*shard, opts.Shards),
		opts:   opts,
		route:  route,
	}
	for i := range db.shards {
		db.shards[i] = newShard()
	}
	logger.Debugf("open db with %d shards, routing by %s", opts.Shards, opts.HashFunc)
	return db, nil
}

// Close drops every shard. The db can not be used afterwards.
func (db *DB) Close() error {
	if !atomic.CompareAndSwapUint32(&db.closed, 0, 1) {
		return ErrDBClosed
	}
	for _, s := range db.shards {
		s.mu.Lock()
		s.idxTree = art.NewArt()
		s.mu.Unlock()
	}
	return nil
}

func (db *DB) isClosed() bool {
	return atomic.LoadUint32(&db.closed) == 1
}

// ShardOf returns the shard index key is routed to.
func (db *DB) ShardOf(key []byte) int {
	return int(db.route(key) % uint64(len(db.shards)))
}

func (db *DB) shardFor(key []byte) (*shard, error) {
	if db.isClosed() {
		return nil, ErrDBClosed
	}
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	return db.shards[db.ShardOf(key)], nil
}

// getIndexNode returns the live node for key. Callers hold the shard lock.
func (s *shard) getIndexNode(key []byte, now int64) (*indexNode, error) {
	rawValue := s.idxTree.Get(key)
	if rawValue == nil {
		return nil, ErrKeyNotFound
	}
	idxNode, _ := rawValue.(*indexNode)
	if idxNode == nil {
		return nil, ErrKeyNotFound
	}
	if idxNode.expired(now) {
		return nil, ErrKeyNotFound
	}
	return idxNode, nil
}

func (n *indexNode) expired(now int64) bool {
	return n.expiredAt != 0 && n.expiredAt <= now
}

func (db *DB) newIndexNode(key, value []byte, ttl time.Duration) *indexNode {
	node := &indexNode{
		value:       cloneBytes(value),
		fingerprint: farm.Hash64(key),
	}
	if ttl > 0 {
		node.expiredAt = time.Now().Add(ttl).UnixNano()
	}
	return node
}

// cloneBytes copies b; the index must not alias caller or connection buffers.
func cloneBytes(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
