package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 9090\nauth:\n  jwt_secret: file-secret-0123456789\nschedule:\n  timezone: UTC\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}

	t.Setenv("TRAINING_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("期望 port=9090，实际=%d", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("环境变量应覆盖默认值，实际 level=%s", cfg.Log.Level)
	}
	if cfg.Auth.AccessTokenTTL != 8*time.Hour {
		t.Errorf("期望默认 TTL=8h，实际=%v", cfg.Auth.AccessTokenTTL)
	}
	if cfg.Schedule.Location() != time.UTC {
		t.Errorf("期望 UTC 时区，实际=%v", cfg.Schedule.Location())
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		Server:   ServerConfig{Port: 8080},
		Auth:     AuthConfig{JWTSecret: "0123456789abcdef", AccessTokenTTL: time.Hour},
		Schedule: ScheduleConfig{Timezone: "UTC"},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("合法配置应通过: %v", err)
	}

	short := valid
	short.Auth.JWTSecret = "short"
	if err := short.Validate(); err == nil {
		t.Error("过短的 jwt_secret 应校验失败")
	}

	badTZ := valid
	badTZ.Schedule.Timezone = "Mars/Olympus"
	if err := badTZ.Validate(); err == nil {
		t.Error("无效时区应校验失败")
	}
}
