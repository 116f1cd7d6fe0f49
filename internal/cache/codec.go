package cache

import (
	"encoding/json"

	"github.com/TemirB/catalog-orders/internal/domain"
)

func encode(op string, key domain.Key, value any) ([]byte, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, &domain.CacheError{Op: op, Key: key.String(), Err: err}
	}
	return raw, nil
}

func decode(op string, key domain.Key, raw []byte, dst any) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return &domain.CacheError{Op: op, Key: key.String(), Err: err}
	}
	return nil
}
