package weathercache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/skyport/backoffice/internal/domain/weather"
)

// ValkeyStore caches reports in a Valkey-compatible database so instances
// share one upstream quota.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new cache backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "weather"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

// Get returns a cached report when present.
func (s *ValkeyStore) Get(ctx context.Context, city string) (weather.Report, bool, error) {
	cmd := s.client.B().Get().Key(s.key(city)).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return weather.Report{}, false, nil
		}
		return weather.Report{}, false, err
	}
	var report weather.Report
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return weather.Report{}, false, err
	}
	return report, true, nil
}

// Save stores a report with the given TTL.
func (s *ValkeyStore) Save(ctx context.Context, city string, report weather.Report, ttl time.Duration) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.key(city)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) key(city string) string {
	return fmt.Sprintf("%s:city:%s", s.prefix, city)
}

var _ weather.Cache = (*ValkeyStore)(nil)
