package main

import (
	"fmt"
	"io"
	"time"

	"db_autocreate/internal/autocreate"
	"db_autocreate/internal/connectors"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var createTableCmd = &cobra.Command{
	Use:   "create-table",
	Short: "Create the writer table if it does not exist",
	Long: `Create the writer table from the reader table structure.

The writer must set autoCreateTable: true and resolve to exactly one table.
The reader table comes from connection[0].table[0] or, when absent, from the
first FROM clause of connection[0].querySql[0].

Examples:
  db_autocreate create-table --job job.yaml
  db_autocreate create-table --job job.yaml --dry-run      # print the DDL, do not execute
  db_autocreate create-table -j job.yaml --log-level debug`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		job, l, err := setup(cmd)
		if err != nil {
			return err
		}
		defer l.Close()

		start := time.Now()
		ctx := cmd.Context()
		creator := autocreate.New(connectors.NewSQLOpener(), autocreate.WithLogger(l))

		plan, err := creator.Plan(ctx, job.Reader, job.Writer)
		if err != nil {
			return err
		}
		if plan == nil {
			l.Info("autoCreateTable is not enabled, nothing to do")
			return nil
		}

		if dryRun {
			return printPlan(cmd.OutOrStdout(), plan)
		}

		if err := creator.Execute(ctx, plan); err != nil {
			return err
		}
		l.Infof("auto create table finished in %s", time.Since(start).Round(time.Millisecond))
		return nil
	},
}

type planView struct {
	Reader    string `yaml:"reader"`
	Writer    string `yaml:"writer"`
	ReaderDDL string `yaml:"reader_ddl"`
	WriterDDL string `yaml:"writer_ddl"`
}

func printPlan(w io.Writer, plan *autocreate.Plan) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(planView{
		Reader:    plan.Source.String(),
		Writer:    plan.Destination.String(),
		ReaderDDL: plan.SourceDDL,
		WriterDDL: plan.DestinationDDL,
	}); err != nil {
		return fmt.Errorf("failed to print plan: %w", err)
	}
	return enc.Close()
}

func init() {
	rootCmd.AddCommand(createTableCmd)

	createTableCmd.Flags().Bool("dry-run", false, "Print the reader and writer DDL without creating the table")
}
