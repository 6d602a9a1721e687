package transfer

import (
	"fmt"
	"os"
	"sort"

	"github.com/aristath/marketgate/internal/utils"
	"gopkg.in/yaml.v3"
)

// allowListFile is the on-disk shape of ASSET_ALLOWLIST_FILE
type allowListFile struct {
	Assets []string `yaml:"assets"`
}

// LoadAllowList reads asset identities from a YAML file of the form
//
//	assets:
//	  - AAPL
//	  - US0378331005
func LoadAllowList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read allow-list %s: %w", path, err)
	}

	var file allowListFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse allow-list %s: %w", path, err)
	}
	return file.Assets, nil
}

// AssetGuard restricts the gate to a set of asset identities.
// An empty guard applies the gate to every asset.
type AssetGuard struct {
	allowed map[string]struct{}
}

// NewAssetGuard builds a guard from one or more identity lists
func NewAssetGuard(lists ...[]string) *AssetGuard {
	g := &AssetGuard{allowed: make(map[string]struct{})}
	for _, list := range lists {
		for _, asset := range list {
			if a := utils.NormalizeAsset(asset); a != "" {
				g.allowed[a] = struct{}{}
			}
		}
	}
	return g
}

// Allows reports whether asset passes the guard
func (g *AssetGuard) Allows(asset string) bool {
	if len(g.allowed) == 0 {
		return true
	}
	_, ok := g.allowed[utils.NormalizeAsset(asset)]
	return ok
}

// Assets returns the allowed identities in sorted order
func (g *AssetGuard) Assets() []string {
	assets := make([]string, 0, len(g.allowed))
	for a := range g.allowed {
		assets = append(assets, a)
	}
	sort.Strings(assets)
	return assets
}
