package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/kr/pretty"
	"github.com/rs/zerolog"

	"github.com/mptools/wechat-publisher/article"
	"github.com/mptools/wechat-publisher/wechat"
)

// extensions that qualify a file as a publishable image
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
}

// listImages returns the qualifying image files in dir, in directory
// enumeration order
func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return paths, nil
}

// publishDrafts runs the whole workflow: enumerate images, fetch one
// access token, then take each image through material upload, content
// image upload, and draft creation. A missing directory, a token
// failure, and per-image failures are reported in the log and do not
// produce an error; the run completes either way.
func publishDrafts(ctx context.Context, args *args, client *wechat.Client, log zerolog.Logger) error {
	log.Info().Str("dir", args.Dir).Msg("starting the draft-publishing workflow")

	images, err := listImages(args.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Error().Str("dir", args.Dir).Msg("image directory does not exist")
			return nil
		}
		log.Error().Err(err).Str("dir", args.Dir).Msg("cannot list image directory")
		return nil
	}
	if len(images) == 0 {
		log.Error().Str("dir", args.Dir).Msg("no image files found")
		return nil
	}

	log.Info().Int("count", len(images)).Msg("found image files")

	if args.Limit >= 0 && len(images) > args.Limit {
		log.Info().Int("limit", args.Limit).Msg("more images than the limit, taking the first ones")
		images = images[:args.Limit]
	}
	if len(images) == 0 {
		log.Info().Msg("the limit leaves no images to publish")
		return nil
	}

	if args.DryRun {
		for _, path := range images {
			log.Info().Str("image", path).Msg("dry run: would publish a draft")
		}
		return nil
	}

	// one token is fetched per run and shared across images; fetching
	// another one mid-run would invalidate the first
	tok, err := client.AccessToken(ctx)
	if err != nil {
		log.Error().Err(err).Msg("cannot fetch an access token, nothing will be published")
		return nil
	}
	log.Info().Time("expires", tok.Expiry).Msg("got an access token")

	var succeeded int
	for i, path := range images {
		log.Info().Str("image", path).Msgf("processing image %d of %d", i+1, len(images))
		ok := publishOne(ctx, client, log, args, tok.AccessToken, path)
		if ok {
			succeeded++
		}
		log.Info().Bool("ok", ok).Str("image", filepath.Base(path)).Msg("image processed")
	}

	log.Info().
		Int("processed", len(images)).
		Int("succeeded", succeeded).
		Int("failed", len(images)-succeeded).
		Msg("draft-publishing workflow finished")

	return nil
}

// publishOne takes a single image through the three-call chain and
// reports whether a draft was created for it
func publishOne(ctx context.Context, client *wechat.Client, log zerolog.Logger, args *args, token, path string) bool {
	name := filepath.Base(path)

	mediaID, err := client.UploadMaterial(ctx, token, path)
	if err != nil {
		log.Error().Err(err).Str("image", name).Msg("cover material upload failed, skipping this image")
		return false
	}
	log.Info().Str("media_id", mediaID).Msg("uploaded permanent cover material")

	imageURL, err := client.UploadContentImage(ctx, token, path)
	if err != nil {
		log.Error().Err(err).Str("image", name).Msg("content image upload failed, skipping this image")
		return false
	}
	log.Info().Str("url", imageURL).Msg("uploaded content image")

	draft := wechat.Article{
		Title:        article.Title(name),
		Author:       args.Author,
		Digest:       args.Digest,
		Content:      article.Body(name, imageURL),
		ThumbMediaID: mediaID,
		ShowCoverPic: 1,
	}

	// the platform strips img tags that point outside its own hosts, so
	// the body must reference the image by the URL the upload returned
	if src, _, ok := article.FirstImage(draft.Content); !ok || src != imageURL {
		log.Error().Str("image", name).Msg("draft body does not embed the uploaded content image, skipping this image")
		return false
	}

	res, err := client.CreateDraft(ctx, token, []wechat.Article{draft})
	if err != nil {
		log.Error().Err(err).Str("image", name).Msg("draft creation failed, skipping this image")
		return false
	}

	if !res.Accepted() {
		log.Error().Str("image", name).Msgf("draft rejected: %s", pretty.Sprint(res))
		if res.TokenExpired() {
			log.Error().Msg("the access token is no longer valid; it may have expired or been superseded by a newer one")
		}
		return false
	}

	if res.MediaID != "" {
		log.Info().Str("draft_media_id", res.MediaID).Str("image", name).Msg("draft created")
		if len(res.Item) > 0 {
			log.Debug().RawJSON("item", res.Item).Msg("draft item details")
		}
	} else {
		log.Info().Str("image", name).Msg("draft accepted without a media_id")
	}

	return true
}
