package cli

import (
	"context"
	"fmt"

	"github.com/pteich/kubeq/internal/config"
	"github.com/pteich/kubeq/internal/k8s"
	"github.com/pteich/kubeq/internal/log"
	"github.com/pteich/kubeq/internal/output"
	"github.com/pteich/kubeq/internal/query"
	"github.com/pteich/kubeq/internal/resource"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"k8s.io/apimachinery/pkg/util/sets"
)

// Backend bundles the cluster services the commands use
type Backend struct {
	Resources  *k8s.ResourceService
	Discovery  *k8s.DiscoveryService
	Namespaces *k8s.NamespaceResolver
	Events     *k8s.EventService
	Logs       *k8s.LogService
	// DefaultNamespace is used by single object commands when no -n is given
	DefaultNamespace string
}

// BackendFactory connects to the cluster described by cfg
type BackendFactory func(cfg *config.Config, log *zap.SugaredLogger, resolver *resource.Resolver) (*Backend, error)

// NewKubeBackend is the BackendFactory used outside of tests
func NewKubeBackend(cfg *config.Config, log *zap.SugaredLogger, resolver *resource.Resolver) (*Backend, error) {
	client, err := k8s.NewClient(cfg, log)
	if err != nil {
		return nil, err
	}

	return &Backend{
		Resources:        client.Resources(resolver),
		Discovery:        client.Discovery(),
		Namespaces:       client.Namespaces(),
		Events:           client.Events(),
		Logs:             client.Logs(),
		DefaultNamespace: client.Namespace,
	}, nil
}

type app struct {
	cfg        *config.Config
	newBackend BackendFactory
	resolver   *resource.Resolver
	log        *zap.SugaredLogger
	backend    *Backend
}

// NewRootCommand builds the kubeq command tree. cfg holds the file values,
// flags override them.
func NewRootCommand(cfg *config.Config, newBackend BackendFactory) *cobra.Command {
	a := &app{
		cfg:        cfg,
		newBackend: newBackend,
		resolver:   resource.NewResolver(resource.DefaultRegistry()),
		log:        zap.NewNop().Sugar(),
	}

	root := &cobra.Command{
		Use:           "kubeq",
		Short:         "query and manage Kubernetes resources with a SQL-like language",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			a.log = log.NewFromOptions(&a.cfg.Log).Sugar()
			return nil
		},
	}
	cfg.AddPFlags(root.PersistentFlags())

	root.AddCommand(
		newQueryCommand(a),
		newExportCommand(a),
		newParseCommand(a),
		newListCommand(a),
		newGetCommand(a),
		newCreateCommand(a),
		newDeleteCommand(a),
		newReplaceCommand(a),
		newPatchCommand(a),
		newAPIResourcesCommand(a),
		newNamespacesCommand(a),
		newEventsCommand(a),
		newLogsCommand(a),
		newSampleCommand(a),
	)

	return root
}

// connect creates the backend on first use
func (a *app) connect() (*Backend, error) {
	if a.backend != nil {
		return a.backend, nil
	}

	backend, err := a.newBackend(a.cfg, a.log, a.resolver)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to cluster: %w", err)
	}
	a.backend = backend
	return backend, nil
}

func (a *app) printer(cmd *cobra.Command) (*output.Printer, error) {
	return output.NewPrinter(a.cfg.Output, cmd.OutOrStdout())
}

func (a *app) executor(backend *Backend) *query.Executor {
	return query.NewExecutor(a.resolver, backend.Resources, backend.Discovery, backend.Namespaces, a.log, query.Options{
		Concurrency: a.cfg.Concurrency,
		Namespaces:  a.cfg.Namespaces,
	})
}

// namespaceFor picks the namespace of a single object request. Types the
// registry knows as cluster-scoped get none.
func (a *app) namespaceFor(coords resource.Coordinates, backend *Backend) string {
	if entry, ok := a.resolver.Registry().Lookup(coords.Kind); ok && !entry.Namespaced {
		return ""
	}
	if len(a.cfg.Namespaces) > 0 && a.cfg.Namespaces[0] != k8s.AllNamespaces {
		return a.cfg.Namespaces[0]
	}
	return backend.DefaultNamespace
}

// namespaces resolves -n into a sorted list, nil means every namespace
func (a *app) namespaces(ctx context.Context, backend *Backend) []string {
	if len(a.cfg.Namespaces) == 0 {
		return nil
	}
	resolved := backend.Namespaces.Resolve(ctx, sets.New(a.cfg.Namespaces...))
	return sets.List(resolved)
}
