// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/elastic/gosigar"
	"github.com/pkg/errors"
	"github.com/vechain/slotdb/log"
	"github.com/vechain/slotdb/metrics"
	"github.com/vechain/slotdb/muxdb"
	"github.com/vechain/slotdb/state"
	"github.com/vechain/slotdb/thor"
	"github.com/vechain/slotdb/trie"
	cli "gopkg.in/urfave/cli.v1"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "slotdb")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "slotdb",
		Usage:     "contract storage engine",
		Copyright: "2024 VeChain Foundation <https://vechain.org/>",
		Commands: []cli.Command{
			{
				Name:      "run",
				Usage:     "execute a storage scenario and print the resulting storage roots",
				ArgsUsage: "<scenario.yaml>",
				Flags: []cli.Flag{
					dataDirFlag,
					specFlag,
					cacheFlag,
					verbosityFlag,
					jsonLogsFlag,
					metricsAddrFlag,
				},
				Action: runAction,
			},
			{
				Name:      "root",
				Usage:     "print the committed storage root of a contract",
				ArgsUsage: "<contract name or address>",
				Flags: []cli.Flag{
					dataDirFlag,
					verbosityFlag,
					jsonLogsFlag,
				},
				Action: rootAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initLogger(ctx *cli.Context) {
	log.Init(os.Stderr, ctx.Int(verbosityFlag.Name), ctx.Bool(jsonLogsFlag.Name))
}

func openDB(ctx *cli.Context) (*muxdb.MuxDB, error) {
	dir := ctx.String(dataDirFlag.Name)
	if dir == "" {
		logger.Debug("using in-memory database")
		return muxdb.NewMem(), nil
	}
	db, err := muxdb.Open(dir, &muxdb.Options{
		CacheSizeMB:            normalizeCacheSize(ctx.Int(cacheFlag.Name)),
		OpenFilesCacheCapacity: 64,
		ReadCacheMB:            16,
		WriteBufferMB:          16,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("database opened", "dir", dir)
	return db, nil
}

// normalizeCacheSize limits the cache to half of the physical memory.
func normalizeCacheSize(sizeMB int) int {
	var mem gosigar.Mem
	if err := mem.Get(); err != nil {
		logger.Warn("failed to get total mem", "err", err)
		return sizeMB
	}
	if limitMB := int(mem.Total / 1024 / 1024 / 2); sizeMB > limitMB {
		logger.Warn("cache size(MB) limited", "limit", limitMB)
		return limitMB
	}
	return sizeMB
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

func runAction(ctx *cli.Context) error {
	initLogger(ctx)

	path := ctx.Args().First()
	if path == "" {
		return errors.New("scenario file required")
	}
	sc, err := loadScenario(path)
	if err != nil {
		return err
	}

	specName := ctx.String(specFlag.Name)
	if specName == "" {
		specName = sc.Spec
	}
	if specName == "" {
		specName = thor.LatestReleaseSpec
	}
	spec, err := thor.GetReleaseSpec(specName)
	if err != nil {
		return err
	}

	if addr := ctx.String(metricsAddrFlag.Name); addr != "" {
		metrics.InitializePrometheusMetrics()
		metrics.RegisterProcessCollector()
		url, stop, err := startMetricsServer(addr)
		if err != nil {
			return err
		}
		defer stop()
		logger.Info("metrics server started", "url", url)
	}

	db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	r := newRunner(db, spec, os.Stdout)
	return r.Run(handleExitSignal(), sc)
}

func rootAction(ctx *cli.Context) error {
	initLogger(ctx)

	if ctx.String(dataDirFlag.Name) == "" {
		return errors.New("--data-dir required")
	}
	if ctx.Args().First() == "" {
		return errors.New("contract required")
	}
	addr, err := parseContract(ctx.Args().First())
	if err != nil {
		return err
	}

	db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	root, err := state.NewAccounts(db).GetStorageRoot(addr)
	if err != nil {
		return err
	}
	latest, err := trie.New(db).LatestRoot(addr)
	if err != nil {
		return err
	}
	fmt.Printf("%v account=%v trie=%v\n", addr, root, latest)
	return nil
}
