package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// GatewayConfig is the full runtime configuration of the realtime
// gateway node. Values come from gateway.yaml with GATEWAY_* env
// overrides; everything has a usable default for local runs.
type GatewayConfig struct {
	NodeID     int64  `mapstructure:"node_id"`
	ListenAddr string `mapstructure:"listen_addr"`
	LogLevel   string `mapstructure:"log_level"`

	JWTSecret string        `mapstructure:"jwt_secret"`
	JWTAlg    string        `mapstructure:"jwt_alg"`
	JWTTTL    time.Duration `mapstructure:"jwt_ttl"`

	// AllowClaimedIdentity keeps the legacy handshake path where a
	// client supplies user_id/role directly without a token. Trusted
	// network deployments only.
	AllowClaimedIdentity bool `mapstructure:"allow_claimed_identity"`

	// InternalAPIKey guards the server-to-server emit endpoints.
	InternalAPIKey string `mapstructure:"internal_api_key"`

	SendQueueSize  int `mapstructure:"send_queue_size"`
	FanoutShards   int `mapstructure:"fanout_shards"`
	FanoutQueue    int `mapstructure:"fanout_queue"`
	ReadLimitBytes int `mapstructure:"read_limit_bytes"`

	WriteWait time.Duration `mapstructure:"write_wait"`
	PongWait  time.Duration `mapstructure:"pong_wait"`
}

func defaults(v *viper.Viper) {
	v.SetDefault("node_id", 1)
	v.SetDefault("listen_addr", ":8090")
	v.SetDefault("log_level", "debug")
	v.SetDefault("jwt_secret", "dev-only-secret")
	v.SetDefault("jwt_alg", "HS256")
	v.SetDefault("jwt_ttl", "2h")
	v.SetDefault("allow_claimed_identity", true)
	v.SetDefault("internal_api_key", "")
	v.SetDefault("send_queue_size", 256)
	v.SetDefault("fanout_shards", 4)
	v.SetDefault("fanout_queue", 1024)
	v.SetDefault("read_limit_bytes", 65536)
	v.SetDefault("write_wait", "10s")
	v.SetDefault("pong_wait", "75s")
}

// Load reads gateway.yaml from path (or the working directory when
// path is empty). A missing file is not an error, defaults and env
// take over.
func Load(path string) (*GatewayConfig, error) {
	v := viper.New()
	defaults(v)

	v.SetConfigName("gateway")
	v.SetConfigType("yaml")
	if path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("GATEWAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg GatewayConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
