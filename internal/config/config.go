package config

import (
	"fmt"
	"time"
)

const (
	ScoreBackendFile     = "file"
	ScoreBackendPostgres = "postgres"
	ScoreBackendRedis    = "redis"
)

type Config struct {
	Env                        string
	DiscordToken               string
	DiscordGuildID             string
	QuestionTimeout            time.Duration
	QuestionLimits             []int
	QuestionSheetID            string
	QuestionSheetRange         string
	QuestionCSVURL             string
	GoogleCloudCredentialsJSON string
	GoogleAPIKey               string
	ScoreBackend               string
	ScoreFilePath              string
	DatabaseURL                string
	RedisURL                   string
	ResultWebhookURL           string
}

func (c *Config) Validate() error {
	for _, req := range c.requiredFieldChecks() {
		if req.value == "" {
			return fmt.Errorf("%s is required", req.name)
		}
	}
	if c.QuestionTimeout <= 0 {
		return fmt.Errorf("QUESTION_TIMEOUT must be positive, got %s", c.QuestionTimeout)
	}
	if len(c.QuestionLimits) == 0 {
		return fmt.Errorf("QUESTION_LIMITS must list at least one limit")
	}
	for _, n := range c.QuestionLimits {
		if n <= 0 {
			return fmt.Errorf("QUESTION_LIMITS must be positive, got %d", n)
		}
	}
	if err := c.validateQuestionSource(); err != nil {
		return err
	}
	return c.validateScoreBackend()
}

func (c *Config) validateQuestionSource() error {
	switch {
	case c.QuestionSheetID != "":
		if c.GoogleCloudCredentialsJSON == "" && c.GoogleAPIKey == "" {
			return fmt.Errorf("GOOGLE_CLOUD_CREDENTIALS_JSON or GOOGLE_API_KEY is required when QUESTION_SHEET_ID is set")
		}
		if c.QuestionSheetRange == "" {
			return fmt.Errorf("QUESTION_SHEET_RANGE is required when QUESTION_SHEET_ID is set")
		}
		return nil
	case c.QuestionCSVURL != "":
		return nil
	default:
		return fmt.Errorf("QUESTION_SHEET_ID or QUESTION_CSV_URL is required")
	}
}

func (c *Config) validateScoreBackend() error {
	switch c.ScoreBackend {
	case ScoreBackendFile:
		if c.ScoreFilePath == "" {
			return fmt.Errorf("SCORE_FILE_PATH is required when SCORE_BACKEND=file")
		}
	case ScoreBackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when SCORE_BACKEND=postgres")
		}
	case ScoreBackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when SCORE_BACKEND=redis")
		}
	default:
		return fmt.Errorf("SCORE_BACKEND must be one of file, postgres, redis; got %q", c.ScoreBackend)
	}
	return nil
}

type requiredEnvField struct {
	name  string
	value string
}

func (c *Config) requiredFieldChecks() []requiredEnvField {
	return []requiredEnvField{
		{name: "DISCORD_TOKEN", value: c.DiscordToken},
		{name: "DISCORD_GUILD_ID", value: c.DiscordGuildID},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
