package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/rs/zerolog"

	"github.com/mptools/wechat-publisher/article"
	"github.com/mptools/wechat-publisher/wechat"
)

type args struct {
	Dir     string `arg:"-d,--dir" help:"directory scanned for candidate images"`
	Limit   int    `arg:"--limit" help:"number of images to publish drafts for (negative means all)"`
	Author  string `arg:"--author" help:"author shown on created drafts"`
	Digest  string `arg:"--digest" help:"digest line for created drafts"`
	DryRun  bool   `arg:"--dry-run" help:"enumerate images without calling the API"`
	Verbose bool   `arg:"-v,--verbose" help:"enable debug logging"`
}

func main() {
	ctx := context.Background()

	var args args
	args.Dir = "img"
	args.Limit = 3
	args.Author = article.DefaultAuthor
	args.Digest = article.DefaultDigest
	arg.MustParse(&args)

	log := newLogger(args.Verbose)

	creds, err := loadCredentials(log)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	client := wechat.New(creds.AppID, creds.AppSecret)
	client.Log = log

	if err := publishDrafts(ctx, &args, client, log); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// newLogger builds the console logger that narrates the workflow
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}
