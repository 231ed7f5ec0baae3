// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// ReleaseSpec is the rule set of a protocol release relevant to storage handling.
// Values are treated as immutable once built; pass them around by pointer.
type ReleaseSpec struct {
	Name string

	IsEip158Enabled  bool // empty accounts get pruned
	IsEip1283Enabled bool // net gas metering for SSTORE
	IsEip2200Enabled bool // net gas metering with the reentrancy sentry
}

func (rs *ReleaseSpec) String() string {
	var strs []string
	push := func(name string, enabled bool) {
		if enabled {
			strs = append(strs, name)
		}
	}
	push("EIP158", rs.IsEip158Enabled)
	push("EIP1283", rs.IsEip1283Enabled)
	push("EIP2200", rs.IsEip2200Enabled)

	if len(strs) == 0 {
		return rs.Name
	}
	return fmt.Sprintf("%v (%v)", rs.Name, strings.Join(strs, ", "))
}

// well-known releases
var releaseSpecs = map[string]ReleaseSpec{
	"frontier": {
		Name: "frontier",
	},
	"spuriousdragon": {
		Name:            "spuriousdragon",
		IsEip158Enabled: true,
	},
	"constantinople": {
		Name:             "constantinople",
		IsEip158Enabled:  true,
		IsEip1283Enabled: true,
	},
	// EIP-1283 was pulled in Petersburg
	"petersburg": {
		Name:            "petersburg",
		IsEip158Enabled: true,
	},
	"istanbul": {
		Name:             "istanbul",
		IsEip158Enabled:  true,
		IsEip2200Enabled: true,
	},
}

// LatestReleaseSpec is the name of the newest known release.
const LatestReleaseSpec = "istanbul"

// GetReleaseSpec returns a copy of the named release spec.
func GetReleaseSpec(name string) (*ReleaseSpec, error) {
	rs, ok := releaseSpecs[strings.ToLower(name)]
	if !ok {
		return nil, errors.Errorf("unknown release spec %q (known: %v)", name, strings.Join(ReleaseSpecNames(), ", "))
	}
	return &rs, nil
}

// MustGetReleaseSpec is like GetReleaseSpec but panics on unknown name.
func MustGetReleaseSpec(name string) *ReleaseSpec {
	rs, err := GetReleaseSpec(name)
	if err != nil {
		panic(err)
	}
	return rs
}

// ReleaseSpecNames returns sorted names of known releases.
func ReleaseSpecNames() []string {
	names := make([]string, 0, len(releaseSpecs))
	for name := range releaseSpecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
