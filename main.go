package main

import (
	"log"
	"os"

	echoapi "github.com/shulehub/shule/api/echo"
	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/auth"
	"github.com/shulehub/shule/core/guard"
	"github.com/shulehub/shule/core/nav"
	"github.com/shulehub/shule/core/session"
	logsvc "github.com/shulehub/shule/services/logger"
	pgreg "github.com/shulehub/shule/storage/registry/pg"
	staticreg "github.com/shulehub/shule/storage/registry/static"
)

func main() {
	std := log.New(os.Stderr, "SHULE : ", log.LstdFlags|log.Lshortfile)

	conf, err := core.NewConfig()
	errAndDie(std, err)

	var logger core.Logger
	if conf.Debug {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}
	logger.Enable(!conf.TestMode)

	// set up validation
	validate, translator := core.NewValidator()
	auth.RegisterValidators(validate, translator)

	// set up the principal registry; postgres when configured, the built-in
	// demo registry otherwise
	registry := staticreg.NewRegistry()
	if conf.DatabaseURL != "" {
		db, err := pgreg.Open(conf.DatabaseURL)
		errAndDie(std, err)
		defer db.Close()
		registry = pgreg.NewRegistry(db)
	}

	// set up the session core
	sessions := session.NewStore()
	views := nav.NewRegistry()
	checker := auth.NewCredentialValidator(registry, validate, translator)
	loginFlow := session.NewController(sessions, checker, views, validate, translator)

	// start API server
	app := echoapi.NewServer(&echoapi.Options{
		Addr:       conf.Server.Addr,
		Conf:       conf,
		Logger:     logger,
		Sessions:   sessions,
		LoginFlow:  loginFlow,
		Views:      views,
		Guard:      guard.NewGuard(views),
		Translator: translator,
	})
	logger.Info("server starting on " + conf.Server.Addr)
	app.Start()
}

func errAndDie(std *log.Logger, err error) {
	if err != nil {
		std.Fatal(err)
	}
}
