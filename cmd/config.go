package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"stopwatchdog/adapters/myredis"
	"stopwatchdog/adapters/panel"
	"stopwatchdog/service"

	"gopkg.in/yaml.v3"
)

// Env variable names.
const (
	envPanelURL         = "PANEL_URL"
	envAPIKey           = "API_KEY"
	envClientAPIKey     = "CLIENT_API_KEY"
	envClientKeys       = "CLIENT_KEYS"
	envServers          = "SERVERS"
	envConfigPath       = "CONFIG_PATH"
	envKillAfterSeconds = "KILL_AFTER_SECONDS"
	envCheckInterval    = "CHECK_INTERVAL"
	envWebhookURL       = "DISCORD_WEBHOOK_URL"
	envNotifyOnDetect   = "NOTIFY_ON_DETECT"
	envHealthPort       = "HEALTHCHECK_PORT"
	envHTTPTimeout      = "HTTP_TIMEOUT_SECONDS"
	envRedisAddr        = "REDIS_ADDR"
	envNameCacheTTL     = "NAME_CACHE_TTL_SECONDS"
)

// Defaults applied when the variable is unset or empty.
const (
	defaultKillAfterSeconds = 60
	defaultCheckInterval    = 5
	defaultHealthPort       = 3000
	defaultHTTPTimeout      = 10
	defaultNameCacheTTL     = 24 * 60 * 60
)

// Upper bounds for numeric keys. Seconds above maxDurationSeconds do not fit a time.Duration.
const (
	maxDurationSeconds = math.MaxInt64 / int64(time.Second)
	maxCheckInterval   = 24 * 60 * 60
	maxHealthPort      = 65535
)

// StopWatchdogConfig holds the full process configuration.
type StopWatchdogConfig struct {
	PanelURL       string
	Credentials    panel.Credentials
	Servers        []string
	KillAfter      time.Duration
	CheckInterval  time.Duration
	WebhookURL     string
	NotifyOnDetect bool
	HealthPort     int
	HTTPTimeout    time.Duration
	Redis          myredis.RedisConfig
	NameCacheTTL   time.Duration
}

// StaleAfter is the age of the liveness mark at which /health reports STALE.
func (c *StopWatchdogConfig) StaleAfter() time.Duration {
	return 3 * c.CheckInterval
}

// yamlConfig is the optional CONFIG_PATH file: a list of servers with their client keys.
type yamlConfig struct {
	Servers []yamlServer `yaml:"servers"`
}

type yamlServer struct {
	ID        string `yaml:"id"`
	ClientKey string `yaml:"client_key"`
}

// LoadConfig loads configuration from environment variables and the optional CONFIG_PATH file.
// PANEL_URL, at least one credential and a non-empty server list are required; every server
// needs a client key (its own or CLIENT_API_KEY). All failures are config_error.
func LoadConfig() (*StopWatchdogConfig, error) {
	panelURL := strings.TrimRight(strings.TrimSpace(os.Getenv(envPanelURL)), "/")
	if panelURL == "" {
		return nil, service.NewConfigError(envPanelURL+" is required", nil)
	}

	clientKeys, err := parseClientKeys(os.Getenv(envClientKeys))
	if err != nil {
		return nil, err
	}
	servers := splitList(os.Getenv(envServers))

	if path := strings.TrimSpace(os.Getenv(envConfigPath)); path != "" {
		fileCfg, err := loadYAMLConfig(path)
		if err != nil {
			return nil, err
		}
		for _, s := range fileCfg.Servers {
			if s.ID == "" {
				return nil, service.NewConfigError("server without id in "+path, nil)
			}
			servers = append(servers, s.ID)
			if _, ok := clientKeys[s.ID]; !ok && s.ClientKey != "" {
				clientKeys[s.ID] = s.ClientKey
			}
		}
	}
	servers = dedupe(servers)
	if len(servers) == 0 {
		return nil, service.NewConfigError(envServers+" is required", nil)
	}

	creds := panel.Credentials{
		ApplicationKey:  strings.TrimSpace(os.Getenv(envAPIKey)),
		SharedClientKey: strings.TrimSpace(os.Getenv(envClientAPIKey)),
		ClientKeys:      clientKeys,
	}
	if creds.ApplicationKey == "" && creds.SharedClientKey == "" && len(creds.ClientKeys) == 0 {
		return nil, service.NewConfigError(fmt.Sprintf("one of %s, %s or %s is required", envAPIKey, envClientAPIKey, envClientKeys), nil)
	}
	var missing []string
	for _, id := range servers {
		if creds.ClientKey(id) == "" {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, service.NewConfigError("missing "+envClientKeys+" for servers: "+strings.Join(missing, ", "), nil)
	}

	killAfter, err := positiveIntEnv(envKillAfterSeconds, defaultKillAfterSeconds, maxDurationSeconds)
	if err != nil {
		return nil, err
	}
	checkInterval, err := positiveIntEnv(envCheckInterval, defaultCheckInterval, maxCheckInterval)
	if err != nil {
		return nil, err
	}
	healthPort, err := positiveIntEnv(envHealthPort, defaultHealthPort, maxHealthPort)
	if err != nil {
		return nil, err
	}
	httpTimeout, err := positiveIntEnv(envHTTPTimeout, defaultHTTPTimeout, maxDurationSeconds)
	if err != nil {
		return nil, err
	}
	nameCacheTTL, err := positiveIntEnv(envNameCacheTTL, defaultNameCacheTTL, maxDurationSeconds)
	if err != nil {
		return nil, err
	}
	notifyOnDetect, err := boolEnv(envNotifyOnDetect, true)
	if err != nil {
		return nil, err
	}

	return &StopWatchdogConfig{
		PanelURL:       panelURL,
		Credentials:    creds,
		Servers:        servers,
		KillAfter:      time.Duration(killAfter) * time.Second,
		CheckInterval:  time.Duration(checkInterval) * time.Second,
		WebhookURL:     strings.TrimSpace(os.Getenv(envWebhookURL)),
		NotifyOnDetect: notifyOnDetect,
		HealthPort:     int(healthPort),
		HTTPTimeout:    time.Duration(httpTimeout) * time.Second,
		Redis: myredis.RedisConfig{
			Addr: strings.TrimSpace(os.Getenv(envRedisAddr)),
		},
		NameCacheTTL: time.Duration(nameCacheTTL) * time.Second,
	}, nil
}

// loadYAMLConfig reads and unmarshals the server file at path.
func loadYAMLConfig(path string) (*yamlConfig, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, service.NewConfigError("invalid "+envConfigPath, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, service.NewConfigError("can't read "+envConfigPath, err)
	}
	var cfg yamlConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, service.NewConfigError("can't parse "+envConfigPath, err)
	}
	return &cfg, nil
}

// parseClientKeys parses "serverId:key,serverId2:key2". Only the first colon separates id and key.
func parseClientKeys(raw string) (map[string]string, error) {
	keys := make(map[string]string)
	for _, entry := range splitList(raw) {
		id, key, ok := strings.Cut(entry, ":")
		id, key = strings.TrimSpace(id), strings.TrimSpace(key)
		if !ok || id == "" || key == "" {
			return nil, service.NewConfigError(fmt.Sprintf("invalid %s entry %q, want serverId:key", envClientKeys, entry), nil)
		}
		keys[id] = key
	}
	return keys, nil
}

// splitList splits a comma-separated list, dropping empty items.
func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// positiveIntEnv reads key as an integer in [1, limit], returning def when unset.
func positiveIntEnv(key string, def, limit int64) (int64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, service.NewConfigError("invalid "+key, err)
	}
	if v <= 0 {
		return 0, service.NewConfigError(fmt.Sprintf("invalid %s: must be positive, got %d", key, v), nil)
	}
	if v > limit {
		return 0, service.NewConfigError(fmt.Sprintf("invalid %s: %d out of range, max %d", key, v, limit), nil)
	}
	return v, nil
}

func boolEnv(key string, def bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, service.NewConfigError("invalid "+key, err)
	}
	return v, nil
}
