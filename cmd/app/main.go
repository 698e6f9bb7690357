package main

import (
	"eduspace/config"
	"eduspace/di"
	"eduspace/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	app := di.InitializeService()
	app.Serve()
}
