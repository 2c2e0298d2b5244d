package cli

import (
	"context"
	"errors"
	"sort"

	"github.com/pteich/kubeq/internal/search"
	"github.com/pteich/kubeq/internal/types"
	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

func newAPIResourcesCommand(a *app) *cobra.Command {
	filter := ""

	cmd := &cobra.Command{
		Use:   "api-resources",
		Short: "list the resource types served by the cluster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.printer(cmd)
			if err != nil {
				return err
			}
			backend, err := a.connect()
			if err != nil {
				return err
			}

			resources, err := backend.Discovery.ServerAPIResources(cmd.Context())
			if err != nil {
				return err
			}
			resources = search.MatchAPIResources(filter, resources)
			sort.SliceStable(resources, func(i, j int) bool {
				if resources[i].GroupVersion != resources[j].GroupVersion {
					return resources[i].GroupVersion < resources[j].GroupVersion
				}
				return resources[i].Plural < resources[j].Plural
			})
			return p.PrintAPIResources(resources)
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "fuzzy filter on kind, name or group/version")

	return cmd
}

func newNamespacesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "namespaces",
		Aliases: []string{"ns"},
		Short:   "list namespaces",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.printer(cmd)
			if err != nil {
				return err
			}
			backend, err := a.connect()
			if err != nil {
				return err
			}

			names, err := backend.Namespaces.List(cmd.Context())
			if err != nil {
				return err
			}
			sort.Strings(names)
			return p.PrintNamespaces(names)
		},
	}
}

func newEventsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "list events, of every namespace unless -n is given",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.printer(cmd)
			if err != nil {
				return err
			}
			backend, err := a.connect()
			if err != nil {
				return err
			}

			events, err := backend.Events.List(cmd.Context(), a.namespaces(cmd.Context(), backend))
			if err != nil {
				return err
			}
			return p.PrintEvents(events)
		},
	}
}

func newLogsCommand(a *app) *cobra.Command {
	container := ""
	all := false

	cmd := &cobra.Command{
		Use:   "logs [POD]",
		Short: "print the log of a pod container, or of every container with --all",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return errors.New("either a pod name or --all is required")
			}
			p, err := a.printer(cmd)
			if err != nil {
				return err
			}
			backend, err := a.connect()
			if err != nil {
				return err
			}

			if all {
				logs, err := a.allLogs(cmd.Context(), backend)
				if err != nil {
					return err
				}
				return p.PrintLogs(logs)
			}

			coords, err := a.resolver.ResolveRef("Pod")
			if err != nil {
				return err
			}
			podLog, err := backend.Logs.Logs(cmd.Context(), a.namespaceFor(coords, backend), args[0], container)
			if err != nil {
				return err
			}
			return p.PrintLog(podLog)
		},
	}

	cmd.Flags().StringVarP(&container, "container", "c", "", "container name, may be omitted for single container pods")
	cmd.Flags().BoolVar(&all, "all", false, "print the logs of every container of every pod in the selected namespaces")

	return cmd
}

// allLogs fetches the log of every container of every pod in the namespaces
// given by -n, or in the default namespace. Containers whose log cannot be
// read are skipped.
func (a *app) allLogs(ctx context.Context, backend *Backend) ([]types.PodLog, error) {
	coords, err := a.resolver.ResolveRef("Pod")
	if err != nil {
		return nil, err
	}

	namespaces := a.namespaces(ctx, backend)
	if namespaces == nil {
		namespaces = []string{backend.DefaultNamespace}
	}

	var logs []types.PodLog
	for _, ns := range namespaces {
		pods, err := backend.Resources.List(ctx, coords.InNamespace(ns))
		if err != nil {
			return nil, err
		}
		for _, pod := range pods.Items {
			for _, c := range containerNames(pod) {
				podLog, err := backend.Logs.Logs(ctx, ns, pod.GetName(), c)
				if err != nil {
					a.log.Warnw("Skipping container log", "namespace", ns, "pod", pod.GetName(), "container", c, "error", err)
					continue
				}
				logs = append(logs, podLog)
			}
		}
	}
	return logs, nil
}

func containerNames(pod unstructured.Unstructured) []string {
	containers, _, _ := unstructured.NestedSlice(pod.Object, "spec", "containers")

	var names []string
	for _, c := range containers {
		if m, ok := c.(map[string]interface{}); ok {
			if name, ok := m["name"].(string); ok && name != "" {
				names = append(names, name)
			}
		}
	}
	if len(names) == 0 {
		return []string{""}
	}
	return names
}
