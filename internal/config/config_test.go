package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.App.Name != "bus-booking" {
		t.Errorf("App.Name = %q, want bus-booking", cfg.App.Name)
	}
	if cfg.Store.Backend != BackendFile {
		t.Errorf("Store.Backend = %q, want file", cfg.Store.Backend)
	}
	if cfg.Store.FilePath != "data_store.json" {
		t.Errorf("Store.FilePath = %q, want data_store.json", cfg.Store.FilePath)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Kafka.Enabled {
		t.Error("Kafka.Enabled = true, want false by default")
	}
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORE_BACKEND", "REDIS")
	t.Setenv("REDIS_HOST", "redis.internal")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Store.Backend != BackendRedis {
		t.Errorf("Store.Backend = %q, want redis", cfg.Store.Backend)
	}
	if cfg.Redis.Host != "redis.internal" {
		t.Errorf("Redis.Host = %q, want redis.internal", cfg.Redis.Host)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			App:    AppConfig{Name: "bus-booking"},
			Server: ServerConfig{Port: 8080},
			Store:  StoreConfig{Backend: BackendFile, FilePath: "data_store.json"},
		}
	}

	if err := base().Validate(); err != nil {
		t.Errorf("Validate() error = %v for valid config", err)
	}

	cfg := base()
	cfg.Store.Backend = "mongodb"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted unknown backend")
	}

	cfg = base()
	cfg.Store.FilePath = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted file backend without a path")
	}

	cfg = base()
	cfg.Server.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted port 0")
	}
}
