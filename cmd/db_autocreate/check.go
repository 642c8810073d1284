package main

import (
	"context"
	"fmt"

	"db_autocreate/internal/config"
	"db_autocreate/internal/connectors"
	"db_autocreate/internal/domain"
	"db_autocreate/internal/logger"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Ping every reader and writer endpoint of the job",
	Long: `Open and ping every jdbcUrl configured in the job, MySQL/MariaDB or Oracle.

Examples:
  db_autocreate check --job job.yaml`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		job, l, err := setup(cmd)
		if err != nil {
			return err
		}
		defer l.Close()

		opener := connectors.NewSQLOpener()
		total, failed := 0, 0
		for _, side := range []struct {
			name  string
			param *config.Tree
		}{
			{name: "reader", param: job.Reader},
			{name: "writer", param: job.Writer},
		} {
			n, f := pingAll(cmd.Context(), l, opener, side.name, side.param)
			total += n
			failed += f
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d connections failed", failed, total)
		}
		l.Infof("all %d connections successful", total)
		return nil
	},
}

func pingAll(ctx context.Context, l *logger.Log, opener connectors.Opener, side string, param *config.Tree) (total, failed int) {
	for i, block := range param.List(config.KeyConnection) {
		username, _ := block.Lookup(config.KeyUsername)
		if username == "" {
			username, _ = param.Lookup(config.KeyUsername)
		}
		password, _ := block.Lookup(config.KeyPassword)
		if password == "" {
			password, _ = param.Lookup(config.KeyPassword)
		}

		urls := block.Strings(config.KeyJdbcURL)
		if len(urls) == 0 {
			l.Warnf("%s connection[%d] has no jdbcUrl, skipped", side, i)
			continue
		}
		for _, jdbcURL := range urls {
			total++
			info := domain.ConnectionInfo{JdbcURL: jdbcURL, Username: username, Password: password}
			if err := connectors.Ping(ctx, opener, info); err != nil {
				failed++
				l.Errorf("%s connection[%d] %s failed: %v", side, i, info, err)
				continue
			}
			l.Infof("%s connection[%d] %s successful", side, i, info)
		}
	}
	return total, failed
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
