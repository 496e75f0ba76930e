package infra

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/pot-code/regform/internal/infrastructure/validate"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix env prefix for viper
const EnvPrefix = "REGFORM"

// runtime environments
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// AppConfig App option object
type AppConfig struct {
	AppID          string        `mapstructure:"app_id" json:"app_id" yaml:"app_id" validate:"required"`            // Application ID
	Host           string        `mapstructure:"host" json:"host" yaml:"host"`                                      // bind host address
	Port           int           `mapstructure:"port" json:"port" yaml:"port" validate:"min=0,max=65535"`           // bind listen port
	Env            string        `mapstructure:"env" json:"env" yaml:"env" validate:"oneof=development production"` // runtime environment
	RequestTimeout time.Duration `mapstructure:"request_timeout" json:"request_timeout" yaml:"request_timeout"`
	Logging        struct {
		FilePath string `mapstructure:"file_path" json:"file_path" yaml:"file_path"`                            // log file path
		Level    string `mapstructure:"level" json:"level" yaml:"level" validate:"oneof=debug info warn error"` // global logging level
	} `mapstructure:"logging" json:"logging" yaml:"logging"`
	Security struct {
		IDLength int `mapstructure:"id_length" json:"id_length" yaml:"id_length" validate:"min=8"` // length of generated request ID
	} `mapstructure:"security" json:"security" yaml:"security"`
	Live struct {
		PongWait  time.Duration `mapstructure:"pong_wait" json:"pong_wait" yaml:"pong_wait"`                       // drop silent peers after this long
		WriteWait time.Duration `mapstructure:"write_wait" json:"write_wait" yaml:"write_wait"`                    // deadline of a single write
		ReadLimit int64         `mapstructure:"read_limit" json:"read_limit" yaml:"read_limit" validate:"min=512"` // maximum frame size in bytes
	} `mapstructure:"live" json:"live" yaml:"live"`
	DevOP struct {
		APM bool `mapstructure:"apm" json:"apm" yaml:"apm"`
	} `mapstructure:"devop" json:"devop" yaml:"devop"`
}

// RegisterFlags declare config flags on fs
func RegisterFlags(fs *pflag.FlagSet) {
	// app
	fs.String("host", "", "binding address")
	fs.String("app_id", "", "application identifier (required)")
	fs.String("env", EnvDevelopment, "runtime environment, can be 'development' or 'production'")
	fs.Int("port", 8081, "listening port")
	fs.Duration("request_timeout", 30*time.Second, "request handling timeout(m, s and h units are supported), eg.30s")

	// logging
	fs.String("logging.level", "info", "logging level")
	fs.String("logging.file_path", "", "log to file")

	// security
	fs.Int("security.id_length", 21, "set length of generated request ID")

	// live validation
	fs.Duration("live.pong_wait", 30*time.Second, "close live connections that have not answered a ping for this long")
	fs.Duration("live.write_wait", 10*time.Second, "write deadline for live frames")
	fs.Int64("live.read_limit", 4096, "maximum size of a live frame in bytes")

	// DevOp
	fs.Bool("devop.apm", false, "enable apm metrics")
}

// InitConfig init app config using viper, fs must have been set up by RegisterFlags and parsed
func InitConfig(fs *pflag.FlagSet) (*AppConfig, error) {
	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config = new(AppConfig)
	if err := v.Unmarshal(config); err != nil {
		return nil, err
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	if config.Logging.Level == "debug" {
		if configJSON, err := json.MarshalIndent(config, "", "  "); err == nil {
			log.Printf("App config: %s\n", string(configJSON))
		}
	}
	return config, nil
}

func validateConfig(config *AppConfig) error {
	errs := validate.NewValidator().Struct(config)
	if len(errs) == 0 {
		return nil
	}

	msg := make([]string, 0, len(errs))
	for _, e := range errs {
		msg = append(msg, e.Reason)
	}
	return fmt.Errorf("failed to validate config: \n%s", strings.Join(msg, "\n"))
}
