// Package art wraps an adaptive radix tree as an ordered key index.
package art

import (
	goart "github.com/plar/go-adaptive-radix-tree"
)

type AdaptiveRadixTree struct {
	tree goart.Tree
}

func NewArt() *AdaptiveRadixTree {
	return &AdaptiveRadixTree{
		tree: goart.New(),
	}
}

// Put stores value under key and returns the previous value if there was one.
func (art *AdaptiveRadixTree) Put(key []byte, value interface{}) (oldVal interface{}, updated bool) {
	return art.tree.Insert(key, value)
}

// Get returns nil when key is absent.
func (art *AdaptiveRadixTree) Get(key []byte) interface{} {
	value, _ := art.tree.Search(key)
	return value
}

func (art *AdaptiveRadixTree) Delete(key []byte) (val interface{}, deleted bool) {
	return art.tree.Delete(key)
}

func (art *AdaptiveRadixTree) Size() int {
	return art.tree.Size()
}

// ForEach visits leaves in key order until fn returns false.
func (art *AdaptiveRadixTree) ForEach(fn func(key []byte, value interface{}) bool) {
	art.tree.ForEach(func(node goart.Node) bool {
		return fn(node.Key(), node.Value())
	}, goart.TraverseLeaf)
}

// PrefixScan returns up to count keys starting with prefix, in key order.
// A negative count means no limit.
func (art *AdaptiveRadixTree) PrefixScan(prefix []byte, count int) (keys [][]byte) {
	if count == 0 {
		return nil
	}
	cb := func(node goart.Node) bool {
		if node.Kind() != goart.Leaf {
			return true
		}
		keys = append(keys, node.Key())
		count--
		return count != 0
	}

	if len(prefix) == 0 {
		art.tree.ForEach(cb)
	} else {
		art.tree.ForEachPrefix(prefix, cb)
	}
	return
}
