package cli

import (
	"strings"

	"github.com/pteich/kubeq/examples"
	"github.com/spf13/cobra"
)

func newSampleCommand(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:       "sample NAME",
		Short:     "print a sample manifest, one of " + strings.Join(examples.Names(), ", "),
		Example:   `  kubeq sample pod | kubeq create -f -`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: examples.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := examples.Sample(args[0])
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
