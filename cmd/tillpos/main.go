package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tillworks/tillpos/config"
	"github.com/tillworks/tillpos/internal/app"
	"github.com/tillworks/tillpos/internal/cli"
)

var (
	configFile = flag.String("c", "tillpos.yml", "config file path")
	initDb     = flag.Bool("initdb", false, "wipe stored data and reseed defaults")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}

	application := app.NewApplication(cfg)
	if err := application.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "startup error:", err)
		os.Exit(1)
	}
	defer application.Release()

	if *initDb {
		if err := application.InitDb(); err != nil {
			fmt.Fprintln(os.Stderr, "initdb error:", err)
			os.Exit(1)
		}
		fmt.Println("data reset complete")
		return
	}

	ui := cli.NewUI(application, os.Stdin, os.Stdout)
	ui.Run()
}
