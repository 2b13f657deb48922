// tsctl is the management CLI: user and group administration, search index
// maintenance, template import/export and running the API server.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"timesketch/internal/datastore"
	"timesketch/internal/logger"
	"timesketch/internal/repository"
	"timesketch/internal/repository/db"
	"timesketch/internal/service"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "1.0.0"

func main() {
	root := &cobra.Command{
		Use:           "tsctl",
		Short:         "Manage the timeline analysis server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var configPath string
	root.PersistentFlags().StringVar(&configPath, "config", "configs", "directory holding config.yml")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		viper.AddConfigPath(configPath)
		viper.SetConfigName("config")
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		return nil
	}

	root.AddCommand(
		versionCommand(),
		addUserCommand(),
		makeAdminCommand(),
		enableUserCommand(),
		disableUserCommand(),
		listUsersCommand(),
		grantUserCommand(),
		addGroupCommand(),
		listGroupsCommand(),
		manageGroupCommand(),
		addIndexCommand(),
		purgeCommand(),
		searchTemplateCommand(),
		listSketchesCommand(),
		dropDBCommand(),
		importCommand(),
		runServerCommand(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}
}

// openDB opens the relational store at the configured path.
func openDB() (*sql.DB, error) {
	path := viper.GetString("db.path")
	if path == "" {
		path = "timesketch.db"
	}
	return db.InitDB(path)
}

// authConfig reads the token signing parameters from config.
func authConfig() service.AuthConfig {
	return service.AuthConfig{
		SigningKey: viper.GetString("auth.signing_key"),
		TokenTTL:   viper.GetDuration("auth.token_ttl"),
	}
}

// newDatastore builds the OpenSearch wrapper from config. The client does
// not dial until the first request.
func newDatastore() (*datastore.OpenSearch, error) {
	host := viper.GetString("opensearch.host")
	if host == "" {
		host = "127.0.0.1"
	}
	port := viper.GetInt("opensearch.port")
	if port == 0 {
		port = 9200
	}
	return datastore.New(host, port)
}

// newServices wires the full service layer for one command invocation.
// Callers must Close the returned DB handle.
func newServices() (*service.Service, *sql.DB, error) {
	sqlDB, err := openDB()
	if err != nil {
		return nil, nil, err
	}
	ds, err := newDatastore()
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}
	repos := repository.NewRepository(sqlDB)
	return service.NewService(repos, ds, authConfig()), sqlDB, nil
}

func appLogger() *logger.Logger {
	level := viper.GetString("log.level")
	if level == "" {
		level = logger.InfoLevel
	}
	return logger.Get(level)
}

// promptBool asks a yes/no question on stdin, defaulting to no.
func promptBool(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// promptPassword reads a password from stdin when it was not passed as a
// flag.
func promptPassword() (string, error) {
	fmt.Print("Password: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(line), nil
}

const commandTimeout = 30 * time.Second

// cmdContext bounds one CLI command invocation.
func cmdContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), commandTimeout)
}
