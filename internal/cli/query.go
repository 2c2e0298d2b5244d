package cli

import (
	"strings"

	"github.com/pteich/kubeq/internal/query"
	"github.com/spf13/cobra"
)

func newQueryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "query QUERY",
		Short: "run a query such as \"SELECT * FROM Pod,apps/v1:Deployment\"",
		Example: `  kubeq query "SELECT * FROM Pod"
  kubeq query "SELECT metadata.name, spec.replicas FROM Deployment" -n all
  kubeq query "SELECT * FROM *" -o yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runQuery(cmd, query.Parse(strings.Join(args, " ")))
		},
	}
}

func newExportCommand(a *app) *cobra.Command {
	typesOnly := false

	export := &cobra.Command{
		Use:   "export",
		Short: "dump every object of every discovered resource type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !typesOnly {
				return a.runQuery(cmd, query.Parse("SELECT * FROM "+query.Wildcard))
			}

			backend, err := a.connect()
			if err != nil {
				return err
			}
			resources, err := a.executor(backend).DiscoverResourceTypes(cmd.Context())
			if err != nil {
				return err
			}
			p, err := a.printer(cmd)
			if err != nil {
				return err
			}
			return p.PrintAPIResources(resources)
		},
	}

	export.Flags().BoolVar(&typesOnly, "types", false, "only print the discovered resource types")

	return export
}

func newParseCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse QUERY",
		Short: "print the clauses of a query without contacting the cluster",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.printer(cmd)
			if err != nil {
				return err
			}
			return p.PrintValue(query.Parse(strings.Join(args, " ")))
		},
	}
}

func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list KIND",
		Short: "list objects of a Kind or \"group/version:Kind\"",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runQuery(cmd, query.Query{
				Select: []string{query.Wildcard},
				From:   []string{args[0]},
			})
		},
	}
}

func (a *app) runQuery(cmd *cobra.Command, q query.Query) error {
	p, err := a.printer(cmd)
	if err != nil {
		return err
	}

	backend, err := a.connect()
	if err != nil {
		return err
	}

	a.log.Debugw("Running query", "query", q.String())
	items, err := a.executor(backend).Run(cmd.Context(), q)
	if err != nil {
		return err
	}

	var columns []string
	if !q.SelectsAll() {
		columns = q.Select
	}
	return p.PrintObjects(items, columns)
}
