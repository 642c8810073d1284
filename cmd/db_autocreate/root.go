package main

import (
	"errors"
	"fmt"
	"io/fs"

	"db_autocreate/internal/config"
	"db_autocreate/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "db_autocreate",
	Short: "Create a writer table from the structure of a reader table",
	Long: `db_autocreate reads a sync job (reader and writer parameters) and, when the writer
has autoCreateTable enabled, creates the single writer table from the reader's
SHOW CREATE TABLE output. Only MySQL/MariaDB readers are supported.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringP("job", "j", "job.yaml", "Path to the job config")
	pf.String("env-file", ".env", "dotenv file loaded before the job config (ignored if absent)")
	pf.String("log-level", "info", "Log level: debug, info, warn, error")
	pf.String("log-target", "stdout", "Log target: stdout, stderr, file")
	pf.String("log-file", "", "Log file for the file target")
}

// setup загружает .env, задание и создает логгер
func setup(cmd *cobra.Command) (*config.Job, *logger.Log, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	jobFile, _ := cmd.Flags().GetString("job")
	job, err := config.LoadJob(jobFile, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}

	l, err := logger.NewLogger(job.Logger.Target, job.Logger.Level, job.Logger.Filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return job, l, nil
}
