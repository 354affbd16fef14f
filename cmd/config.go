package main

import (
	"os"
	"strings"

	"burn_tokens_back/pkg/notify"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Port         string
	Debug        bool
	DatabaseURL  string
	AllowOrigins []string
	Notify       notify.Config
}

// InitConfig layers configs/config.yml, the environment and flags onto v, later sources
// winning. A missing config file is not an error.
func InitConfig(v *viper.Viper, configDir string, flags *pflag.FlagSet) error {
	v.SetDefault("port", "5000")
	v.SetDefault("debug", false)
	v.SetDefault("database_url", "sqlite:///burn_tokens.db")
	v.SetDefault("cors.allow_origins", []string{"*"})
	v.SetDefault("notify.provider", notify.ProviderNone)
	v.SetDefault("notify.from_name", "Burn Tokens")
	v.SetDefault("smtp.port", 587)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, flag := range map[string]string{
			"port":         "port",
			"debug":        "debug",
			"database_url": "database-url",
		} {
			if f := flags.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return errors.Wrapf(err, "bind flag %s", flag)
				}
			}
		}
	}

	v.AddConfigPath(configDir)
	v.SetConfigName("config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return errors.Wrap(err, "read config")
		}
	}
	return nil
}

func LoadConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:         v.GetString("port"),
		Debug:        v.GetBool("debug"),
		DatabaseURL:  v.GetString("database_url"),
		AllowOrigins: splitList(v.GetStringSlice("cors.allow_origins")),
		Notify: notify.Config{
			Provider: strings.ToLower(v.GetString("notify.provider")),
			Mail: notify.Mail{
				From:     v.GetString("notify.from"),
				FromName: v.GetString("notify.from_name"),
				To:       v.GetString("notify.to"),
			},
			SMTP: notify.SMTPConfig{
				Host:     v.GetString("smtp.host"),
				Port:     v.GetInt("smtp.port"),
				Username: v.GetString("smtp.username"),
				Password: os.Getenv("SMTP_PASSWORD"),
			},
			MailjetAPIKey:    os.Getenv("MAILJET_API_KEY"),
			MailjetSecretKey: os.Getenv("MAILJET_SECRET_KEY"),
		},
	}
	if cfg.Port == "" {
		return cfg, errors.New("port must be set")
	}
	if cfg.DatabaseURL == "" {
		return cfg, errors.New("database_url must be set")
	}
	return cfg, nil
}

// splitList accepts both yaml lists and comma separated env values.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
