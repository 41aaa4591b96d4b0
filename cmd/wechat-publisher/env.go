package main

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// credentials identify the official account that drafts are created under
type credentials struct {
	AppID     string
	AppSecret string
}

// loadCredentials reads the app credentials from the environment. A
// .env file in the working directory is loaded first if present, so
// credentials do not have to live in the shell environment.
func loadCredentials(log zerolog.Logger) (*credentials, error) {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded environment from .env")
	}

	creds := credentials{
		AppID:     os.Getenv("WECHAT_APP_ID"),
		AppSecret: os.Getenv("WECHAT_APP_SECRET"),
	}
	if creds.AppID == "" || creds.AppSecret == "" {
		return nil, errors.New("WECHAT_APP_ID and WECHAT_APP_SECRET must be set, directly or via .env")
	}

	return &creds, nil
}
