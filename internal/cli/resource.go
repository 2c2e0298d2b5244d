package cli

import (
	"context"
	"fmt"

	"github.com/pteich/kubeq/internal/config"
	"github.com/pteich/kubeq/internal/manifest"
	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

func newGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get KIND NAME",
		Short: "print one object",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			coords, err := a.resolver.ResolveRef(args[0])
			if err != nil {
				return err
			}
			p, err := a.printer(cmd)
			if err != nil {
				return err
			}
			backend, err := a.connect()
			if err != nil {
				return err
			}

			coords = coords.WithName(args[1]).InNamespace(a.namespaceFor(coords, backend))
			obj, err := backend.Resources.Get(cmd.Context(), coords)
			if err != nil {
				return err
			}
			return p.PrintObject(obj)
		},
	}
}

func newPatchCommand(a *app) *cobra.Command {
	patch := ""

	cmd := &cobra.Command{
		Use:     "patch KIND NAME --patch JSON",
		Short:   "apply a JSON Patch to one object",
		Example: `  kubeq patch Pod nginx --patch '[{"op":"replace","path":"/spec/containers/0/image","value":"nginx:1.16.1"}]'`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			coords, err := a.resolver.ResolveRef(args[0])
			if err != nil {
				return err
			}
			p, err := a.printer(cmd)
			if err != nil {
				return err
			}
			backend, err := a.connect()
			if err != nil {
				return err
			}

			coords = coords.WithName(args[1]).InNamespace(a.namespaceFor(coords, backend))
			obj, err := backend.Resources.Patch(cmd.Context(), coords, []byte(patch))
			if err != nil {
				return err
			}
			return p.PrintObject(obj)
		},
	}

	cmd.Flags().StringVar(&patch, "patch", "", "JSON Patch document")
	_ = cmd.MarkFlagRequired("patch")

	return cmd
}

func newCreateCommand(a *app) *cobra.Command {
	return newManifestCommand(a, "create", "created", func(b *Backend) manifestBatch {
		return b.Resources.CreateManifests
	})
}

func newDeleteCommand(a *app) *cobra.Command {
	return newManifestCommand(a, "delete", "deleted", func(b *Backend) manifestBatch {
		return b.Resources.DeleteManifests
	})
}

func newReplaceCommand(a *app) *cobra.Command {
	return newManifestCommand(a, "replace", "replaced", func(b *Backend) manifestBatch {
		return b.Resources.ReplaceManifests
	})
}

type manifestBatch func(ctx context.Context, objs []*unstructured.Unstructured) ([]*unstructured.Unstructured, error)

// newManifestCommand builds a command applying op to every manifest of -f.
// Objects handled before a failure are still reported.
func newManifestCommand(a *app, verb, done string, op func(*Backend) manifestBatch) *cobra.Command {
	file := ""

	cmd := &cobra.Command{
		Use:   verb + " -f FILE",
		Short: verb + " the objects in a JSON or YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			objs, err := manifest.ReadFile(file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			p, err := a.printer(cmd)
			if err != nil {
				return err
			}
			backend, err := a.connect()
			if err != nil {
				return err
			}

			responses, batchErr := op(backend)(cmd.Context(), objs)

			if a.cfg.Output != config.OutputTable {
				items := make([]unstructured.Unstructured, 0, len(responses))
				for _, r := range responses {
					items = append(items, *r)
				}
				if err := p.PrintObjects(items, nil); err != nil {
					return err
				}
				return batchErr
			}

			for i := range responses {
				fmt.Fprintf(cmd.OutOrStdout(), "%s/%s %s\n", objs[i].GetKind(), objs[i].GetName(), done)
			}
			return batchErr
		},
	}

	cmd.Flags().StringVarP(&file, "filename", "f", "", "file with the manifests, - reads stdin")
	_ = cmd.MarkFlagRequired("filename")

	return cmd
}
