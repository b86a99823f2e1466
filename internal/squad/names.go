package squad

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"gopkg.in/yaml.v3"
)

//go:embed names.yaml
var namesYAML []byte

// maxCountryDistance is the largest edit distance still treated as the same country.
// Short names only tolerate one edit: "Niger" is not "Nigeria".
func maxCountryDistance(name string) int {
	if utf8.RuneCountInString(name) < 8 {
		return 1
	}
	return 2
}

// NamePool holds the first and last names players of one country are drawn from.
type NamePool struct {
	FirstNames []string `yaml:"first_names"`
	LastNames  []string `yaml:"last_names"`
}

// Pools maps countries to their name pools.
type Pools struct {
	Countries map[string]NamePool `yaml:"countries"`
	Fallback  NamePool            `yaml:"fallback"`

	countries []string
}

var (
	defaultPools     *Pools
	defaultPoolsOnce sync.Once
)

// DefaultPools returns the embedded name pools.
func DefaultPools() *Pools {
	defaultPoolsOnce.Do(func() {
		p, err := LoadPools(namesYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded name pools are invalid: %v", err))
		}
		defaultPools = p
	})
	return defaultPools
}

// LoadPools parses name pools from YAML.
func LoadPools(data []byte) (*Pools, error) {
	var p Pools
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse name pools: %w", err)
	}
	if err := p.Fallback.validate(); err != nil {
		return nil, fmt.Errorf("fallback pool: %w", err)
	}
	for country, pool := range p.Countries {
		if err := pool.validate(); err != nil {
			return nil, fmt.Errorf("pool %q: %w", country, err)
		}
		p.countries = append(p.countries, country)
	}
	sort.Strings(p.countries)
	return &p, nil
}

func (np NamePool) validate() error {
	if len(np.FirstNames) == 0 || len(np.LastNames) == 0 {
		return fmt.Errorf("first_names and last_names must not be empty")
	}
	return nil
}

// Lookup returns the pool for a country. Matching ignores case and tolerates
// single typos ("Nigera"), two in longer names; anything else gets the fallback pool.
func (p *Pools) Lookup(country string) NamePool {
	if pool, ok := p.Countries[country]; ok {
		return pool
	}

	needle := strings.ToLower(strings.TrimSpace(country))
	if needle == "" {
		return p.Fallback
	}

	best, bestDistance := "", maxCountryDistance(needle)+1
	for _, candidate := range p.countries {
		lower := strings.ToLower(candidate)
		if lower == needle {
			return p.Countries[candidate]
		}
		if d := fuzzy.LevenshteinDistance(needle, lower); d < bestDistance {
			best, bestDistance = candidate, d
		}
	}
	if best != "" {
		return p.Countries[best]
	}
	return p.Fallback
}
