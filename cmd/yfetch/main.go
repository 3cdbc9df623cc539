package main

import (
	"os"

	"yfetch/cmd/handlers"
	"yfetch/internal/logger"
)

func main() {
	logger.Init()
	if err := handlers.Execute(); err != nil {
		os.Exit(1)
	}
}
