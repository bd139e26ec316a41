package main

import (
	"log"
	"os"

	"stockpulse/cmd"
)

func main() {
	apiHandler, cfg, err := cmd.InitializeDependencies(os.Getenv("PULSE_CONFIG"))
	if err != nil {
		log.Fatal(err)
	}
	defer cmd.CloseDependencies(apiHandler)

	err = apiHandler.StartApi(cfg.Server.Port)
	if err != nil {
		log.Fatal(err)
	}
}
