package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	echoapi "github.com/unitrack/portal/apps/portal/echo"
	"github.com/unitrack/portal/core"
	"github.com/unitrack/portal/core/dashboard"
	"github.com/unitrack/portal/core/session"
	"github.com/unitrack/portal/gateway"
	logsvc "github.com/unitrack/portal/services/logger"
	"github.com/unitrack/portal/storage/sessionstore"
)

func main() {
	conf := core.Conf

	// =========================================================================
	// Set up Dependencies

	std := log.New(os.Stdout, "PORTAL : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	var logger core.Logger
	if conf.Debug {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		rollbar := logsvc.NewRollbarLogger(std, conf)
		rollbar.Enable(true)
		logger = rollbar
	}

	logger.Info(fmt.Sprintf("Portal initializing : version %q", conf.Build))
	defer logger.Info("Portal stopped")

	// session store: in-memory in DEV, Postgres otherwise
	var store session.Store
	if conf.Debug {
		store = sessionstore.NewInMem()
	} else {
		db, err := sessionstore.Open(conf)
		if err != nil {
			logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
		}
		defer db.Close()
		if err := sessionstore.Migrate(db); err != nil {
			logger.Fatal(fmt.Sprintf("migrating database: %v", err), err)
		}
		store = sessionstore.NewPG(db)
	}
	sessions := session.NewService(store, conf.Server.SessionTTL)

	gw, err := gateway.NewClient(&gateway.Options{
		BaseURL:    conf.Upstream.BaseURL,
		Timeout:    conf.Upstream.Timeout,
		CSRFCookie: conf.Upstream.CSRFCookie,
		CSRFHeader: conf.Upstream.CSRFHeader,
		Logger:     logger,
	})
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up gateway: %v", err), err)
	}

	dashboards := dashboard.NewService(gw, conf.Grading, logger)

	// =========================================================================
	// Start Portal Service

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	server := echoapi.NewServer(&echoapi.Options{
		Address:    conf.Server.Addr(),
		Gateway:    gw,
		Sessions:   sessions,
		Dashboards: dashboards,
		Logger:     logger,
		Shutdown:   shutdown,
	})

	go server.Start()
	logger.Info(fmt.Sprintf("Portal listening on %s", conf.Server.Addr()))

	// sweep expired sessions in the background
	purgeCtx, stopPurge := context.WithCancel(context.Background())
	defer stopPurge()
	go purgeLoop(purgeCtx, sessions, logger)

	// =========================================================================
	// Shutdown

	sig := <-shutdown
	logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

	// give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)
	}
}

func purgeLoop(ctx context.Context, sessions session.ServiceInterface, logger core.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := sessions.Purge(ctx)
			if err != nil {
				logger.Error("purging expired sessions", err)
				continue
			}
			if n > 0 {
				logger.Info(fmt.Sprintf("purged %d expired session(s)", n))
			}
		}
	}
}
