package config

import (
	"testing"
	"time"
)

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DISCORD_GUILD_ID", "guild")
	t.Setenv("QUESTION_CSV_URL", "https://example.com/questions.csv")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.QuestionTimeout != 15*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.QuestionTimeout)
	}
	if len(cfg.QuestionLimits) != 4 || cfg.QuestionLimits[0] != 5 || cfg.QuestionLimits[3] != 20 {
		t.Fatalf("unexpected limits: %v", cfg.QuestionLimits)
	}
	if cfg.ScoreBackend != "file" || cfg.ScoreFilePath != "scores_db.json" {
		t.Fatalf("unexpected score backend: %q %q", cfg.ScoreBackend, cfg.ScoreFilePath)
	}
	if cfg.Env != "production" {
		t.Fatalf("unexpected env: %q", cfg.Env)
	}
}

func TestLoad_ParsesOverrides(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DISCORD_GUILD_ID", "guild")
	t.Setenv("QUESTION_CSV_URL", "https://example.com/questions.csv")
	t.Setenv("QUESTION_TIMEOUT", "20s")
	t.Setenv("QUESTION_LIMITS", "3,6")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.QuestionTimeout != 20*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.QuestionTimeout)
	}
	if len(cfg.QuestionLimits) != 2 || cfg.QuestionLimits[1] != 6 {
		t.Fatalf("unexpected limits: %v", cfg.QuestionLimits)
	}
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("DISCORD_GUILD_ID", "guild")
	t.Setenv("QUESTION_CSV_URL", "https://example.com/questions.csv")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for empty DISCORD_TOKEN")
	}
}
