package config

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/consul/api"

	"github.com/rtrio/fitsindex/data"
)

// LoadConsul fetches a JSON configuration document from a Consul KV
// entry. Observatory deployments use this to share one keyword mapping
// across hosts; address may be empty to use the Consul defaults.
func LoadConsul(address, key string) (*Config, error) {
	client, err := api.NewClient(&api.Config{Address: address})
	if err != nil {
		return nil, fmt.Errorf("%w: consul client: %v", data.ErrConfig, err)
	}

	pair, _, err := client.KV().Get(key, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: consul get '%s': %v", data.ErrConfig, key, err)
	}
	if pair == nil {
		return nil, fmt.Errorf("%w: consul key '%s' not found", data.ErrConfig, key)
	}

	cfg := Default()
	if err := json.Unmarshal(pair.Value, cfg); err != nil {
		return nil, fmt.Errorf("%w: consul key '%s': %v", data.ErrConfig, key, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
