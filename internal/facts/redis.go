package facts

import (
	"context"
	"fmt"
	"net/url"

	"github.com/redis/go-redis/v9"
)

const (
	redisScheme     = "redis://"
	redissScheme    = "rediss://"
	defaultRedisKey = "historical_facts"
)

// LoadRedis reads facts from a hash mapping country name to description.
// Location form: redis://host:port/db?key=historical_facts
func LoadRedis(ctx context.Context, location string) (*Store, error) {
	opts, key, err := parseRedisLocation(location)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	defer func() { _ = client.Close() }()

	entries, err := client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("read redis hash %s: %w", key, err)
	}

	facts := make(map[string]Fact, len(entries))
	for country, description := range entries {
		facts[country] = Fact{Description: description}
	}
	return &Store{facts: facts}, nil
}

func parseRedisLocation(location string) (*redis.Options, string, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, "", fmt.Errorf("invalid redis location: %w", err)
	}
	q := u.Query()
	key := q.Get("key")
	if key == "" {
		key = defaultRedisKey
	}
	// go-redis rejects options it does not know
	q.Del("key")
	u.RawQuery = q.Encode()

	opts, err := redis.ParseURL(u.String())
	if err != nil {
		return nil, "", fmt.Errorf("invalid redis location: %w", err)
	}
	return opts, key, nil
}
