package cache

import "fmt"

// Keyer builds cache keys under a common prefix so several deployments
// can share one Redis database.
type Keyer struct {
	prefix string
}

// NewKeyer returns a keyer whose keys all start with prefix.
func NewKeyer(prefix string) Keyer {
	return Keyer{prefix: prefix}
}

// TileKey is the key of one map tile from a provider.
func (k Keyer) TileKey(provider string, z, x, y int) string {
	return fmt.Sprintf("%stile:%s:%d/%d/%d", k.prefix, provider, z, x, y)
}

// RenderKey is the key of a rendered artifact. The network hash and the
// render options are hashed together.
func (k Keyer) RenderKey(networkHash string, opts any) string {
	return k.prefix + hashKey("render", networkHash, opts)
}
