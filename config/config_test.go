package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.OutputDir != "./output" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.DefaultWaitSeconds != 3 {
		t.Errorf("DefaultWaitSeconds = %d", cfg.DefaultWaitSeconds)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d", cfg.MaxRetries)
	}
	if cfg.PrimaryLanguage != "English" {
		t.Errorf("PrimaryLanguage = %q", cfg.PrimaryLanguage)
	}
	if cfg.MatchThreshold != 0.6 {
		t.Errorf("MatchThreshold = %v", cfg.MatchThreshold)
	}
	want := []string{"English", "German", "Spanish", "French", "Italian"}
	if len(cfg.Languages) != len(want) {
		t.Fatalf("Languages = %v", cfg.Languages)
	}
	for i, lang := range want {
		if cfg.Languages[i] != lang {
			t.Errorf("Languages[%d] = %q; want %q", i, cfg.Languages[i], lang)
		}
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OUTPUT_DIR", "/tmp/scrapes")
	t.Setenv("DEFAULT_WAIT_SECONDS", "7")
	t.Setenv("LANGUAGES", "English, Japanese")
	t.Setenv("MATCH_THRESHOLD", "0.75")

	cfg := Load()

	if cfg.OutputDir != "/tmp/scrapes" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.DefaultWaitSeconds != 7 {
		t.Errorf("DefaultWaitSeconds = %d", cfg.DefaultWaitSeconds)
	}
	if len(cfg.Languages) != 2 || cfg.Languages[1] != "Japanese" {
		t.Errorf("Languages = %v", cfg.Languages)
	}
	if cfg.MatchThreshold != 0.75 {
		t.Errorf("MatchThreshold = %v", cfg.MatchThreshold)
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("MAX_RETRIES", "many")
	t.Setenv("MATCH_THRESHOLD", "high")

	cfg := Load()

	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d; want default 3", cfg.MaxRetries)
	}
	if cfg.MatchThreshold != 0.6 {
		t.Errorf("MatchThreshold = %v; want default 0.6", cfg.MatchThreshold)
	}
}
