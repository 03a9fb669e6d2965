// cmd/client/cmd/root.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slog"

	"notekeeper/cmd/client/cmd/types"
	"notekeeper/internal/app/client"
	"notekeeper/internal/app/client/config"
	"notekeeper/internal/utils/logger"
)

var (
	cfgFile   string
	serverURL string
	debug     bool
)

var rootCmd = &cobra.Command{
	Use:   "notekeeper",
	Short: "notekeeper - клиент сервиса заметок",
	Long: `notekeeper - клиент сервиса личных заметок.

Заметки приватны по умолчанию. Публичную заметку можно открыть без входа
по стабильной ссылке вида <origin>/shared/<id>.`,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: shutdownApp,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

func Execute() {
	ctx, cancel := client.NotifyContext(context.Background())
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		cancel()
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	log := logger.NewLevel(cfg.Env, cfg.LogLevel)
	log.Debug("Конфигурация загружена",
		slog.String("env", cfg.Env),
		slog.String("api", cfg.APIBaseURL),
		slog.String("store", cfg.CredentialStore),
	)

	app, err := client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	app.Initialize(cmd.Context())

	cmd.SetContext(context.WithValue(cmd.Context(), types.ClientAppKey, app))
	return nil
}

func shutdownApp(cmd *cobra.Command, _ []string) error {
	app, err := types.AppFromContext(cmd.Context())
	if err != nil {
		return nil
	}
	return app.Shutdown()
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Ищем конфиг в стандартных местах
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}

		viper.AddConfigPath(filepath.Join(home, ".notekeeper"))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		// Конфиг не найден, используем значения по умолчанию
	}

	// Флаги командной строки важнее файла и окружения
	if serverURL != "" {
		viper.Set("API_BASE_URL", serverURL)
	}
	if debug {
		viper.Set("LOG_LEVEL", "debug")
	}

	return config.LoadDefault()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл (yaml)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "базовый URL API заметок")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "подробные логи")

	// Подкоманды добавляются в init.go
}
