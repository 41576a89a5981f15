package config

import "strings"

// RedisConfig contains Redis configuration for the redis storage backend.
type RedisConfig struct {
	URI          string   `env:"URI"           envDefault:"localhost:6379"`
	Password     string   `env:"PASSWORD"      envDefault:""`
	DB           int      `env:"DB"            envDefault:"0"`
	ClusterNodes []string `env:"CLUSTER_NODES" envDefault:""`
	UseCluster   bool     `env:"USE_CLUSTER"   envDefault:"false"`
}

// Sanitize trims addresses and drops empty cluster nodes.
func (r *RedisConfig) Sanitize() {
	r.URI = strings.TrimSpace(r.URI)
	nodes := r.ClusterNodes[:0]
	for _, n := range r.ClusterNodes {
		if n = strings.TrimSpace(n); n != "" {
			nodes = append(nodes, n)
		}
	}
	r.ClusterNodes = nodes
	if r.DB < 0 {
		r.DB = 0
	}
	if len(r.ClusterNodes) == 0 {
		r.UseCluster = false
	}
}
