package modellist

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"obsui/pkg/model"
)

// Store is a string key/value store a list can be persisted into.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Save writes the list under key as a JSON array of model objects.
func Save(ctx context.Context, s Store, key string, l *List) error {
	b, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("encode list: %w", err)
	}
	if err := s.Set(ctx, key, string(b)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Load reads the array stored under key and feeds each object through
// AddData, so list defaults and model setup apply. A missing key loads
// nothing. It returns the number of models added.
func Load(ctx context.Context, s Store, key string, l *List, opts ...model.MutateOption) (int, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok || raw == "" {
		return 0, nil
	}
	items, err := Decode(raw)
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", key, err)
	}
	for _, item := range items {
		l.AddData(item, opts...)
	}
	return len(items), nil
}

// Decode parses a persisted JSON array of flat objects. Numbers decode as
// float64.
func Decode(raw string) ([]map[string]any, error) {
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("invalid JSON")
	}
	res := gjson.Parse(raw)
	if !res.IsArray() {
		return nil, fmt.Errorf("expected a JSON array, got %s", res.Type)
	}
	var items []map[string]any
	var bad error
	i := 0
	res.ForEach(func(_, value gjson.Result) bool {
		obj, ok := value.Value().(map[string]any)
		if !ok {
			bad = fmt.Errorf("item %d is not an object", i)
			return false
		}
		items = append(items, obj)
		i++
		return true
	})
	if bad != nil {
		return nil, bad
	}
	return items, nil
}
