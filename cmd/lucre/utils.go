// Copyright (c) 2023 The Lucre developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/inconshreveable/log15"
	"github.com/mattn/go-isatty"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/lucreledger/lucre/muxdb"
)

func fatal(args ...interface{}) {
	fmt.Fprint(os.Stderr, "Fatal: ")
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(1)
}

func fatalf(format string, args ...interface{}) {
	fatal(fmt.Sprintf(format, args...))
}

func initLogger(ctx *cli.Context) {
	logLevel := ctx.Int(verbosityFlag.Name)
	format := log15.LogfmtFormat()
	if isatty.IsTerminal(os.Stderr.Fd()) {
		format = log15.TerminalFormat()
	}
	log15.Root().SetHandler(log15.LvlFilterHandler(
		log15.Lvl(logLevel),
		log15.StreamHandler(os.Stderr, format)))
}

func openDB(ctx *cli.Context) *muxdb.MuxDB {
	if ctx.Bool(memFlag.Name) {
		db, err := muxdb.OpenMem()
		if err != nil {
			fatalf("open in-memory database: %v", err)
		}
		return db
	}

	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		fatalf("unable to infer default data dir, use -%s to specify one", dataDirFlag.Name)
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		fatalf("create data dir at '%v': %v", dataDir, err)
	}

	dir := filepath.Join(dataDir, "ledger.db")
	db, err := muxdb.Open(dir, &muxdb.Options{
		CacheSize: ctx.Int(cacheFlag.Name),
	})
	if err != nil {
		fatalf("open ledger database at '%v': %v", dir, err)
	}
	return db
}

func startAPIServer(ctx *cli.Context, handler http.HandlerFunc) (*http.Server, string) {
	addr := ctx.String(apiAddrFlag.Name)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		fatalf("listen API addr '%v': %v", addr, err)
	}
	srv := &http.Server{Handler: handler}
	go func() {
		srv.Serve(listener)
	}()
	return srv, "http://" + listener.Addr().String() + "/"
}

func handleExitSignal() <-chan os.Signal {
	exitSignalCh := make(chan os.Signal, 1)
	signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)
	return exitSignalCh
}

// copy from go-ethereum
func defaultDataDir() string {
	// Try to place the data folder in the user's home dir
	if home := homeDir(); home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, "Library", "Application Support", "org.lucreledger.lucre")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "org.lucreledger.lucre")
		} else {
			return filepath.Join(home, ".org.lucreledger.lucre")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}
