package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	internalconfig "github.com/foxseedlab/quizwadidaw/internal/config"
)

type envConfig struct {
	Env                        string        `env:"ENV" envDefault:"production"`
	DiscordToken               string        `env:"DISCORD_TOKEN,required"`
	DiscordGuildID             string        `env:"DISCORD_GUILD_ID,required"`
	QuestionTimeout            time.Duration `env:"QUESTION_TIMEOUT" envDefault:"15s"`
	QuestionLimits             []int         `env:"QUESTION_LIMITS" envDefault:"5,10,15,20" envSeparator:","`
	QuestionSheetID            string        `env:"QUESTION_SHEET_ID"`
	QuestionSheetRange         string        `env:"QUESTION_SHEET_RANGE" envDefault:"Sheet1!A1:F"`
	QuestionCSVURL             string        `env:"QUESTION_CSV_URL"`
	GoogleCloudCredentialsJSON string        `env:"GOOGLE_CLOUD_CREDENTIALS_JSON"`
	GoogleAPIKey               string        `env:"GOOGLE_API_KEY"`
	ScoreBackend               string        `env:"SCORE_BACKEND" envDefault:"file"`
	ScoreFilePath              string        `env:"SCORE_FILE_PATH" envDefault:"scores_db.json"`
	DatabaseURL                string        `env:"DATABASE_URL"`
	RedisURL                   string        `env:"REDIS_URL"`
	ResultWebhookURL           string        `env:"RESULT_WEBHOOK_URL"`
}

func Load() (*internalconfig.Config, error) {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("environment variables are invalid or missing: %w", err)
	}

	cfg := &internalconfig.Config{
		Env:                        raw.Env,
		DiscordToken:               raw.DiscordToken,
		DiscordGuildID:             raw.DiscordGuildID,
		QuestionTimeout:            raw.QuestionTimeout,
		QuestionLimits:             raw.QuestionLimits,
		QuestionSheetID:            raw.QuestionSheetID,
		QuestionSheetRange:         raw.QuestionSheetRange,
		QuestionCSVURL:             raw.QuestionCSVURL,
		GoogleCloudCredentialsJSON: raw.GoogleCloudCredentialsJSON,
		GoogleAPIKey:               raw.GoogleAPIKey,
		ScoreBackend:               raw.ScoreBackend,
		ScoreFilePath:              raw.ScoreFilePath,
		DatabaseURL:                raw.DatabaseURL,
		RedisURL:                   raw.RedisURL,
		ResultWebhookURL:           raw.ResultWebhookURL,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
