package main

import (
	"log"
	"os"

	"github.com/unitrack/portal/core"
	"github.com/unitrack/portal/core/session"
	"github.com/unitrack/portal/gateway"
	logsvc "github.com/unitrack/portal/services/logger"
	"github.com/unitrack/portal/storage/sessionstore"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	// set up DB
	db, err := sessionstore.Open(core.Conf)
	errAndDie(err)
	defer db.Close()

	gw, err := gateway.NewClient(&gateway.Options{
		BaseURL:    core.Conf.Upstream.BaseURL,
		Timeout:    core.Conf.Upstream.Timeout,
		CSRFCookie: core.Conf.Upstream.CSRFCookie,
		CSRFHeader: core.Conf.Upstream.CSRFHeader,
		Logger:     logsvc.NewConsoleLogger(logger),
	})
	errAndDie(err)

	// start CLI
	cli := commandLine{
		db:       db,
		sessions: session.NewService(sessionstore.NewPG(db), core.Conf.Server.SessionTTL),
		gw:       gw,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
