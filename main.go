package main

import (
	"flag"
	"fmt"
	"os"

	"huerto/cmd"
	"huerto/config"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	app := cmd.NewBuilder(cfg).Build()
	if err := app.Run(); err != nil {
		fmt.Printf("server error: %v\n", err)
		os.Exit(1)
	}
}
