// a utility for testing one-off calls against the wechat content API

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexflint/go-arg"
	"github.com/joho/godotenv"
	"github.com/kr/pretty"
	"github.com/rs/zerolog"

	"github.com/mptools/wechat-publisher/article"
	"github.com/mptools/wechat-publisher/wechat"
)

type tokenArgs struct{}

type materialArgs struct {
	Path string `arg:"positional,required"`
}

type imageArgs struct {
	Path string `arg:"positional,required"`
}

type draftArgs struct {
	Path string `arg:"positional,required"`
}

func main() {
	ctx := context.Background()

	var args struct {
		Token    *tokenArgs    `arg:"subcommand" help:"fetch an access token"`
		Material *materialArgs `arg:"subcommand" help:"upload an image as permanent material"`
		Image    *imageArgs    `arg:"subcommand" help:"upload an image for use in article bodies"`
		Draft    *draftArgs    `arg:"subcommand" help:"run the full chain for one image"`
	}
	p := arg.MustParse(&args)

	godotenv.Load()
	appID := os.Getenv("WECHAT_APP_ID")
	appSecret := os.Getenv("WECHAT_APP_SECRET")
	if appID == "" || appSecret == "" {
		fmt.Println("WECHAT_APP_ID and WECHAT_APP_SECRET must be set")
		os.Exit(1)
	}

	client := wechat.New(appID, appSecret)
	client.Log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	var err error
	switch {
	case args.Token != nil:
		err = showToken(ctx, client)
	case args.Material != nil:
		err = uploadMaterial(ctx, client, args.Material.Path)
	case args.Image != nil:
		err = uploadImage(ctx, client, args.Image.Path)
	case args.Draft != nil:
		err = createDraft(ctx, client, args.Draft.Path)
	default:
		p.Fail("you must specify a subcommand")
	}

	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func showToken(ctx context.Context, client *wechat.Client) error {
	tok, err := client.TokenSource(ctx).Token()
	if err != nil {
		return err
	}
	fmt.Println(tok.AccessToken)
	fmt.Println("expires:", tok.Expiry)
	return nil
}

func uploadMaterial(ctx context.Context, client *wechat.Client, path string) error {
	tok, err := client.AccessToken(ctx)
	if err != nil {
		return err
	}

	mediaID, err := client.UploadMaterial(ctx, tok.AccessToken, path)
	if err != nil {
		return err
	}

	fmt.Println(mediaID)
	return nil
}

func uploadImage(ctx context.Context, client *wechat.Client, path string) error {
	tok, err := client.AccessToken(ctx)
	if err != nil {
		return err
	}

	url, err := client.UploadContentImage(ctx, tok.AccessToken, path)
	if err != nil {
		return err
	}

	fmt.Println(url)
	return nil
}

func createDraft(ctx context.Context, client *wechat.Client, path string) error {
	tok, err := client.AccessToken(ctx)
	if err != nil {
		return err
	}

	mediaID, err := client.UploadMaterial(ctx, tok.AccessToken, path)
	if err != nil {
		return err
	}

	imageURL, err := client.UploadContentImage(ctx, tok.AccessToken, path)
	if err != nil {
		return err
	}

	name := filepath.Base(path)
	content := article.Body(name, imageURL)
	res, err := client.CreateDraft(ctx, tok.AccessToken, []wechat.Article{{
		Title:        article.Title(name),
		Author:       article.DefaultAuthor,
		Digest:       article.DefaultDigest,
		Content:      content,
		ThumbMediaID: mediaID,
		ShowCoverPic: 1,
	}})
	if err != nil {
		return err
	}

	pretty.Println(res)

	if !res.Accepted() {
		return fmt.Errorf("draft was rejected: %s", res.Errmsg)
	}
	if src, _, ok := article.FirstImage(content); ok {
		fmt.Println("draft body embeds:", src)
	}
	return nil
}
