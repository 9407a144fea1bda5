// Copyright (c) 2023 The Lucre developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/inconshreveable/log15"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/lucreledger/lucre/api"
	"github.com/lucreledger/lucre/lucre"
	"github.com/lucreledger/lucre/metrics"
	"github.com/lucreledger/lucre/runtime"
)

var (
	version   string
	gitCommit string
	gitTag    string
	log       = log15.New()
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
		Name:      "Lucre",
		Usage:     "Authenticated ledger service",
		Copyright: "2023 The Lucre developers",
		Flags: []cli.Flag{
			dataDirFlag,
			memFlag,
			apiAddrFlag,
			apiCorsFlag,
			verbosityFlag,
			cacheFlag,
			enableMetricsFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	defer func() { log.Info("exited") }()

	initLogger(ctx)

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	db := openDB(ctx)
	defer func() { log.Info("closing ledger database..."); db.Close() }()

	rt, err := runtime.New(db, runtime.DefaultConfig())
	if err != nil {
		return err
	}

	apiSrv, apiURL := startAPIServer(ctx, api.New(rt, api.Options{
		AllowedOrigins: ctx.String(apiCorsFlag.Name),
		EnableMetrics:  ctx.Bool(enableMetricsFlag.Name),
	}))
	defer func() { log.Info("stopping API server..."); apiSrv.Shutdown(context.Background()) }()

	printStartupMessage(rt, apiURL)

	<-handleExitSignal()
	return nil
}

func printStartupMessage(rt *runtime.Runtime, apiURL string) {
	fingerprint := rt.StateFingerprint()
	fmt.Printf(`Starting Lucre
    Service     [ %v #%v ]
    Fingerprint [ %v %v ]
    API portal  [ %v ]
`,
		lucre.ServiceName, lucre.ServiceID,
		fingerprint[0], fingerprint[1],
		apiURL)
}
