package domain

import "time"

// DefaultTTL applies to every cache entry.
const DefaultTTL = 360 * time.Second

type Kind string

const (
	KindProduct Kind = "product"
	KindOrder   Kind = "order"
)

type Purpose uint8

const (
	PurposeEntity Purpose = iota
	PurposeCollection
)

// Key addresses one cache entry: a single aggregate or a whole collection
// of one kind.
type Key struct {
	Kind    Kind
	Purpose Purpose
	ID      string
}

func EntityKey(kind Kind, id string) Key {
	return Key{Kind: kind, Purpose: PurposeEntity, ID: id}
}

func CollectionKey(kind Kind) Key {
	return Key{Kind: kind, Purpose: PurposeCollection}
}

func ProductKey(id string) Key { return EntityKey(KindProduct, id) }
func OrderKey(id string) Key   { return EntityKey(KindOrder, id) }
func ProductsKey() Key         { return CollectionKey(KindProduct) }
func OrdersKey() Key           { return CollectionKey(KindOrder) }

// String renders "<kind>:<id>" or "<kind>s:all".
func (k Key) String() string {
	if k.Purpose == PurposeCollection {
		return string(k.Kind) + "s:all"
	}
	return string(k.Kind) + ":" + k.ID
}
