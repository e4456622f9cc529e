package cmd

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/hr-partner/hrp/internal/hrpartner"
	"github.com/hr-partner/hrp/internal/logger"
	"github.com/hr-partner/hrp/internal/secrets"
	"github.com/hr-partner/hrp/internal/session"
)

const (
	app = "hrp"
)

type Config struct {
	APIURL      string        `mapstructure:"api-url"`
	UserAgent   string        `mapstructure:"user-agent"`
	Timeout     time.Duration `mapstructure:"timeout"`
	SessionFile string        `mapstructure:"session-file"`
	// Token and TokenFile supply a static bearer token, bypassing the login
	// session. Meant for CI and scripted use.
	Token     string `mapstructure:"token"`
	TokenFile string `mapstructure:"token-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "hrp is a cli for the HR Partner recruiting service: vacancies, candidates and AI resume matching",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("api-url", "HRP_API_URL"); err != nil {
		log.Fatalf("binding HRP_API_URL environment variable: %v", err)
	}
	if err := viper.BindEnv("session-file", "HRP_SESSION_FILE"); err != nil {
		log.Fatalf("binding HRP_SESSION_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("token-file", "HRP_TOKEN_FILE"); err != nil {
		log.Fatalf("binding HRP_TOKEN_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is hrp.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// The config file is optional: every setting has a default or an
	// environment binding. A present but unparseable file is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config == nil {
		config = &Config{}
	}

	return config, nil
}

// toolkit bundles the collaborators every command needs.
type toolkit struct {
	logger  *zap.Logger
	config  *Config
	session *session.Store
	client  *hrpartner.Client
}

func newToolkit() (*toolkit, error) {
	zl, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}

	config, err := getConfig()
	if err != nil {
		return nil, fmt.Errorf("getting a config: %w", err)
	}

	sessionPath := config.SessionFile
	if sessionPath == "" {
		sessionPath, err = session.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	store := session.New(sessionPath, zl)

	token := tokenFunc(config, store)

	client := hrpartner.New(zl, config.APIURL, token)
	if config.UserAgent != "" {
		client.UserAgent = config.UserAgent
	}
	if config.Timeout > 0 {
		client.HTTPClient.Timeout = config.Timeout
	}

	return &toolkit{
		logger:  zl,
		config:  config,
		session: store,
		client:  client,
	}, nil
}

// tokenFunc resolves the bearer token for each request. A static token from
// config, env or file wins over the interactive login session; no token at
// all means the Authorization header is omitted.
func tokenFunc(config *Config, store *session.Store) hrpartner.TokenFunc {
	static, err := secrets.Load(secrets.Source{
		Name:  "api token",
		Value: config.Token,
		Env:   "HRP_TOKEN",
		File:  config.TokenFile,
	})
	if err == nil {
		return func() string { return static }
	}

	return store.Token
}
