package main

import (
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatalf("events-dashboard: %v", err)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "events-dashboard",
		Usage:     "Events dashboard proxy and terminal client.",
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "url",
				Usage:   "dashboard proxy base URL for client commands",
				EnvVars: []string{"DASHBOARD_URL"},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			listCommand(),
			showCommand(),
			createCommand(),
			updateCommand(),
			deleteCommand(),
			refreshCommand(),
		},
	}
}
