// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"
	"strings"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/vechain/slotdb/thor"
	"gopkg.in/yaml.v3"
)

// Scenario is a sequence of blocks of storage operations.
type Scenario struct {
	Spec      string   `yaml:"spec"`
	Contracts []string `yaml:"contracts"`
	Blocks    []Block  `yaml:"blocks"`
}

type Block struct {
	Txs []Tx `yaml:"txs"`
}

// Tx is committed as one round. A reverted tx keeps only the reads it made.
// Account ops (kill, create) are not reverted.
type Tx struct {
	Gas    uint64 `yaml:"gas"`
	Revert bool   `yaml:"revert"`
	Ops    []Op   `yaml:"ops"`
}

// Op is a single operation. Slots and values are decimal or 0x-prefixed hex words.
//
//	get      contract slot [expect]
//	set      contract slot value
//	snapshot label
//	restore  label
//	destroy  contract
//	kill     contract          deletes the account
//	create   contract [value]  creates the account, an empty one if value is "empty"
type Op struct {
	Op       string `yaml:"op"`
	Contract string `yaml:"contract"`
	Slot     string `yaml:"slot"`
	Value    string `yaml:"value"`
	Expect   string `yaml:"expect"`
	Label    string `yaml:"label"`
}

const defaultTxGas = 1_000_000

func loadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read scenario")
	}
	return parseScenario(data)
}

func parseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, errors.Wrap(err, "decode scenario")
	}
	for bi, b := range sc.Blocks {
		for ti, tx := range b.Txs {
			for oi, op := range tx.Ops {
				if err := op.validate(); err != nil {
					return nil, errors.Wrapf(err, "block %d tx %d op %d", bi, ti, oi)
				}
			}
		}
	}
	return &sc, nil
}

func (op *Op) validate() error {
	need := func(fields ...string) error {
		values := map[string]string{"contract": op.Contract, "slot": op.Slot, "value": op.Value, "label": op.Label}
		for _, f := range fields {
			if values[f] == "" {
				return errors.Errorf("%v: missing %v", op.Op, f)
			}
		}
		return nil
	}
	switch op.Op {
	case "get":
		return need("contract", "slot")
	case "set":
		return need("contract", "slot", "value")
	case "snapshot", "restore":
		return need("label")
	case "destroy", "kill", "create":
		return need("contract")
	default:
		return errors.Errorf("unknown op %q", op.Op)
	}
}

// parseWord parses a decimal or 0x-prefixed hex 256-bit word.
func parseWord(s string) (thor.Bytes32, error) {
	var (
		v   *uint256.Int
		err error
	)
	if hex, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
		hex = strings.TrimLeft(hex, "0")
		if hex == "" {
			hex = "0"
		}
		v, err = uint256.FromHex("0x" + hex)
	} else {
		v, err = uint256.FromDecimal(s)
	}
	if err != nil {
		return thor.Bytes32{}, errors.Wrapf(err, "parse word %q", s)
	}
	return v.Bytes32(), nil
}

// parseContract accepts a hex address or a contract name.
func parseContract(s string) (thor.Address, error) {
	if strings.HasPrefix(s, "0x") {
		return thor.ParseAddress(s)
	}
	return contractAddress(s), nil
}

func contractAddress(name string) thor.Address {
	return thor.BytesToAddress(thor.Blake2b([]byte(name)).Bytes())
}
