package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zjrosen/rounds/internal/config"
	"github.com/zjrosen/rounds/internal/hospital"
	"github.com/zjrosen/rounds/internal/log"
)

var departmentsJSON bool

var departmentsCmd = &cobra.Command{
	Use:   "departments",
	Short: "List the departments of the configured hospital",
	Long: `List the departments a doctor can join, as returned by the backend for
the configured hospital code.

Examples:
  rounds departments
  rounds departments --hospital-code H42
  rounds departments --json | jq '.[].name'`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cleanup, err := initLogging("rounds-departments")
		if err != nil {
			return err
		}
		defer cleanup()

		if err := config.ValidateAPI(cfg.API); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		rt, err := openRuntime(cfg)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		defer func() { _ = rt.Close(ctx) }()

		return listDepartments(ctx, os.Stdout, rt.Directory, departmentsJSON)
	},
}

func init() {
	departmentsCmd.Flags().BoolVar(&departmentsJSON, "json", false, "print JSON instead of a table")
	rootCmd.AddCommand(departmentsCmd)
}

func listDepartments(ctx context.Context, w io.Writer, api hospital.API, asJSON bool) error {
	deps, err := api.Departments(ctx)
	if err != nil {
		log.ErrorErr(log.CatAPI, "list departments failed", err)
		return fmt.Errorf("listing departments: %s", hospital.UserMessage(err))
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(deps)
	}

	if len(deps) == 0 {
		_, err := fmt.Fprintln(w, "No departments.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME")
	for _, d := range deps {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", d.ID, d.Name)
	}
	return tw.Flush()
}
