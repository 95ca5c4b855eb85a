package main

import (
	"os"
	"time"

	"seo_checker/internal/application/cli"

	log "github.com/sirupsen/logrus"
)

func main() {
	logInstance := log.New()
	logInstance.SetOutput(os.Stderr)
	logInstance.SetFormatter(&log.JSONFormatter{
		TimestampFormat:   time.RFC3339,
		DisableHTMLEscape: true,
		DisableTimestamp:  false,
	})

	app := cli.NewApp(logInstance, os.Stdout)
	if err := app.Run(os.Args); err != nil {
		logInstance.WithError(err).Error(`seo-checker failed`)
		os.Exit(1)
	}
}
