package main

import (
	"context"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/maxbolgarin/contem"
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/whoami/internal/app"
	"github.com/maxbolgarin/whoami/internal/config"
	"github.com/maxbolgarin/whoami/internal/server"
	"github.com/maxbolgarin/whoami/internal/term"
	"github.com/olekukonko/tablewriter"
)

var (
	Version, Branch, Commit, BuildDate string
)

var (
	configPath = kingpin.Flag("config", "path to config file").Short('c').String()

	serveCmd = kingpin.Command("serve", "serve the panel over HTTP").Default()
	termCmd  = kingpin.Command("term", "draw the panel in the terminal")

	commitsCmd   = kingpin.Command("commits", "print latest commits and exit")
	commitsLimit = commitsCmd.Flag("limit", "max commits to print, 0 for all").Short('n').Default("20").Int()
)

func main() {
	kingpin.Version(Version)
	command := kingpin.Parse()

	var err error
	ctx := contem.New(contem.WithLogger(logze.DefaultPtr()), contem.Exit(&err))
	defer ctx.Shutdown()

	err = run(ctx, command)
	if err != nil {
		logze.DefaultPtr().Error("cannot run", "error", err)
	}
}

func run(ctx contem.Context, command string) error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return erro.Wrap(err, "load config")
	}
	if command == termCmd.FullCommand() {
		return runTerm(ctx, cfg)
	}

	initLogger(cfg.Log.Level)
	logze.Info("starting whoami", "version", Version, "commit", Commit, "command", command)

	switch command {
	case commitsCmd.FullCommand():
		return printCommits(ctx, cfg, *commitsLimit)
	default:
		return serve(ctx, cfg)
	}
}

func serve(ctx contem.Context, cfg config.Config) error {
	whoami, err := app.New(cfg, server.NewTextureLoader())
	if err != nil {
		return erro.Wrap(err, "new app")
	}
	ctx.Add(func(context.Context) error {
		whoami.Close()
		return nil
	})

	srv, err := server.New(cfg.Server, whoami)
	if err != nil {
		return erro.Wrap(err, "new server")
	}
	ctx.Add(srv.Stop)

	if err := whoami.Start(ctx); err != nil {
		return erro.Wrap(err, "start fetch tasks")
	}
	if err := srv.Start(ctx); err != nil {
		return erro.Wrap(err, "start server")
	}

	<-ctx.Done()
	return nil
}

func runTerm(ctx contem.Context, cfg config.Config) error {
	logCfg, logFile, err := cfg.Term.Logger(logLevel(cfg.Log.Level))
	if err != nil {
		return erro.Wrap(err, "init term logger")
	}
	if logFile != nil {
		defer logFile.Close()
	}
	logze.Init(logCfg)
	defer initLogger(cfg.Log.Level)

	logze.Info("starting whoami", "version", Version, "commit", Commit, "command", termCmd.FullCommand())

	whoami, err := app.New(cfg, term.NewTextureLoader(cfg.Term.AvatarColumns))
	if err != nil {
		return erro.Wrap(err, "new app")
	}
	defer whoami.Close()

	if err := whoami.Start(ctx); err != nil {
		return erro.Wrap(err, "start fetch tasks")
	}

	return term.Run(ctx, cfg.Term, whoami)
}

func printCommits(ctx context.Context, cfg config.Config, limit int) error {
	whoami, err := app.New(cfg, nil)
	if err != nil {
		return erro.Wrap(err, "new app")
	}
	defer whoami.Close()

	feed, err := whoami.FetchCommits(ctx)
	if err != nil {
		return erro.Wrap(err, "fetch commits")
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Repository", "Message"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	for _, c := range feed.Take(limit) {
		table.Append([]string{c.RepoName, c.MessageShort})
	}
	table.Render()

	return nil
}

func initLogger(level string) {
	logze.Init(logze.C().WithConsole().WithLevel(logLevel(level)))
}

func logLevel(level string) string {
	switch level {
	case logze.LevelDebug, logze.LevelWarn, logze.LevelError:
		return level
	default:
		return logze.LevelInfo
	}
}
