package foodsource

import (
	"context"
	"fmt"
	"strings"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/nutrition-recommender/internal/domain/recommender"
	"github.com/yanqian/nutrition-recommender/internal/infra/config"
)

// ValkeyLoader reads a CSV export published under a single Valkey key.
type ValkeyLoader struct {
	option valkey.ClientOption
	addr   string
	key    string
}

// NewValkeyLoader parses the address; addresses containing "://" are treated as URLs.
func NewValkeyLoader(cfg config.ValkeyConfig) (*ValkeyLoader, error) {
	opt, err := buildValkeyOptions(cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("invalid valkey address: %w", err)
	}
	return &ValkeyLoader{option: opt, addr: cfg.Addr, key: cfg.Key}, nil
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	addr = strings.TrimSpace(addr)
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func (l *ValkeyLoader) Name() string {
	return "valkey:" + l.key
}

func (l *ValkeyLoader) Load(ctx context.Context) ([]recommender.FoodRecord, error) {
	client, err := valkey.NewClient(l.option)
	if err != nil {
		return nil, fmt.Errorf("connect valkey: %w", err)
	}
	defer client.Close()

	payload, err := client.Do(ctx, client.B().Get().Key(l.key).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, fmt.Errorf("key %q not found", l.key)
		}
		return nil, fmt.Errorf("get %q: %w", l.key, err)
	}
	return ParseCSV(strings.NewReader(payload))
}

var _ Loader = (*ValkeyLoader)(nil)
