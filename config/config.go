package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "1MB"

	defaultStorageMode          = "hybrid"
	defaultLocalBucketURL       = "file:///tmp/currypoint?create_dir=true"
	defaultLocalKey             = "curryPoint"
	defaultRemoteDatabase       = "currypointNew"
	defaultRemoteProbeTimeout   = 5 * time.Second
	defaultRemoteRequestTimeout = 10 * time.Second
	defaultRemotePollInterval   = 10 * time.Second

	defaultAdminPhone = "+91 9999999999"
	defaultTokenTTL   = 24 * time.Hour

	defaultQRCodeSize = 256

	defaultDocStorePort    = 5000
	defaultDocStoreBackend = "mongo"
	defaultRedisChannel    = "currypoint:changes"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	SecretKey struct {
		Access string `json:"access" yaml:"access"`
	} `json:"secretKey" yaml:"secretKey"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	// QRCode configuration for UPI payment QR codes
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`

	// Storage configuration for the local and remote ledger tiers
	Storage *StorageConfig `json:"storage" yaml:"storage"`

	// Notifier configuration for ledger change fan-out
	Notifier *NotifierConfig `json:"notifier" yaml:"notifier"`

	// DocStore configuration for the remote document store server
	DocStore *DocStoreConfig `json:"docstore" yaml:"docstore"`

	// Postgres is only read by the docstore postgres backend.
	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost int           `json:"bcryptCost" yaml:"bcryptCost"`
	TokenTTL   time.Duration `json:"tokenTTL" yaml:"tokenTTL"`
	// AdminPhone identifies the customer record that acts as administrator.
	AdminPhone string `json:"adminPhone" yaml:"adminPhone"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

// StorageConfig defines where the ledger lives and how the tiers are synchronized
type StorageConfig struct {
	// Mode is one of "local", "remote" or "hybrid"
	Mode string `json:"mode" yaml:"mode"`

	Local  LocalStorageConfig  `json:"local" yaml:"local"`
	Remote RemoteStorageConfig `json:"remote" yaml:"remote"`
}

// LocalStorageConfig defines the local snapshot bucket
type LocalStorageConfig struct {
	// BucketURL is a gocloud.dev blob URL (file://, mem://, s3://, gs://)
	BucketURL string `json:"bucketURL" yaml:"bucketURL"`
	Key       string `json:"key" yaml:"key"`
}

// RemoteStorageConfig defines the remote document store client
type RemoteStorageConfig struct {
	Enabled        bool          `json:"enabled" yaml:"enabled"`
	BaseURL        string        `json:"baseURL" yaml:"baseURL"`
	Database       string        `json:"database" yaml:"database"`
	ProbeTimeout   time.Duration `json:"probeTimeout" yaml:"probeTimeout"`
	RequestTimeout time.Duration `json:"requestTimeout" yaml:"requestTimeout"`
	PollInterval   time.Duration `json:"pollInterval" yaml:"pollInterval"`
}

// NotifierConfig defines ledger change notification fan-out
type NotifierConfig struct {
	// Provider type: "" or "memory" for in-process, "redis" for Redis pub/sub
	Provider string      `json:"provider" yaml:"provider"`
	Redis    RedisConfig `json:"redis" yaml:"redis"`
}

type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
	Channel  string `json:"channel" yaml:"channel"`
}

// DocStoreConfig defines the remote document store server
type DocStoreConfig struct {
	Port     int    `json:"port" yaml:"port"`
	Database string `json:"database" yaml:"database"`
	// Backend is "mongo", "postgres" or "memory"
	Backend string      `json:"backend" yaml:"backend"`
	Mongo   MongoConfig `json:"mongo" yaml:"mongo"`
}

type MongoConfig struct {
	URI            string        `json:"uri" yaml:"uri"`
	ConnectTimeout time.Duration `json:"connectTimeout" yaml:"connectTimeout"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile == "" {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// STORAGE_REMOTE_BASEURL -> storage.remote.baseURL
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	return cfg, nil
}

// applyDefaults fills every optional section so consumers never nil-check.
func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{}
	}
	if cfg.Auth.TokenTTL <= 0 {
		cfg.Auth.TokenTTL = defaultTokenTTL
	}
	if cfg.Auth.AdminPhone == "" {
		cfg.Auth.AdminPhone = defaultAdminPhone
	}

	if cfg.QRCode == nil {
		cfg.QRCode = &QRCodeConfig{}
	}
	if cfg.QRCode.Size <= 0 {
		cfg.QRCode.Size = defaultQRCodeSize
	}

	if cfg.Storage == nil {
		cfg.Storage = &StorageConfig{}
	}
	if cfg.Storage.Mode == "" {
		cfg.Storage.Mode = defaultStorageMode
	}
	if cfg.Storage.Local.BucketURL == "" {
		cfg.Storage.Local.BucketURL = defaultLocalBucketURL
	}
	if cfg.Storage.Local.Key == "" {
		cfg.Storage.Local.Key = defaultLocalKey
	}
	remote := &cfg.Storage.Remote
	if remote.Database == "" {
		remote.Database = defaultRemoteDatabase
	}
	if remote.ProbeTimeout <= 0 {
		remote.ProbeTimeout = defaultRemoteProbeTimeout
	}
	if remote.RequestTimeout <= 0 {
		remote.RequestTimeout = defaultRemoteRequestTimeout
	}
	if remote.PollInterval <= 0 {
		remote.PollInterval = defaultRemotePollInterval
	}

	if cfg.Notifier == nil {
		cfg.Notifier = &NotifierConfig{}
	}
	if cfg.Notifier.Redis.Channel == "" {
		cfg.Notifier.Redis.Channel = defaultRedisChannel
	}

	if cfg.DocStore == nil {
		cfg.DocStore = &DocStoreConfig{}
	}
	if cfg.DocStore.Port == 0 {
		cfg.DocStore.Port = defaultDocStorePort
	}
	if cfg.DocStore.Database == "" {
		cfg.DocStore.Database = defaultRemoteDatabase
	}
	if cfg.DocStore.Backend == "" {
		cfg.DocStore.Backend = defaultDocStoreBackend
	}
	if cfg.DocStore.Mongo.ConnectTimeout <= 0 {
		cfg.DocStore.Mongo.ConnectTimeout = defaultRemoteProbeTimeout
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from POSTGRES_REPLICAS_{index}_{field} variables.
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
