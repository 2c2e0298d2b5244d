package query

import (
	"context"

	"github.com/pteich/kubeq/internal/resource"
	"github.com/pteich/kubeq/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/util/sets"
)

const crdKind = "CustomResourceDefinition"

// Lister lists the objects addressed by coords
type Lister interface {
	List(ctx context.Context, coords resource.Coordinates) (*unstructured.UnstructuredList, error)
}

// Discoverer enumerates the resource types of one group/version
type Discoverer interface {
	ResourceTypesFor(ctx context.Context, gv types.APIGroupVersion) ([]types.APIResource, error)
}

// NamespaceExpander expands the "all" namespace sentinel
type NamespaceExpander interface {
	Resolve(ctx context.Context, requested sets.Set[string]) sets.Set[string]
}

// Options tunes query execution
type Options struct {
	// Concurrency bounds parallel backend calls. Values below 2 run
	// everything sequentially.
	Concurrency int
	// Namespaces restricts namespaced types. Empty lists cluster-wide.
	Namespaces []string
}

// Executor runs parsed queries against the cluster
type Executor struct {
	resolver   *resource.Resolver
	lister     Lister
	discoverer Discoverer
	namespaces NamespaceExpander
	log        *zap.SugaredLogger
	opts       Options
}

// NewExecutor creates a new Executor. namespaces may be nil when
// opts.Namespaces never holds "all".
func NewExecutor(resolver *resource.Resolver, lister Lister, discoverer Discoverer, namespaces NamespaceExpander, log *zap.SugaredLogger, opts Options) *Executor {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Executor{
		resolver:   resolver,
		lister:     lister,
		discoverer: discoverer,
		namespaces: namespaces,
		log:        log,
		opts:       opts,
	}
}

type listTask struct {
	coords resource.Coordinates
}

// Run lists every type named in q.From and returns the items in FROM order,
// each stamped with the apiVersion and kind it was listed as.
//
// Failing list or discovery calls are logged and skipped. Run only fails
// when a FROM entry cannot be resolved or ctx is done.
func (e *Executor) Run(ctx context.Context, q Query) ([]unstructured.Unstructured, error) {
	namespaces := e.targetNamespaces(ctx)

	var tasks []listTask
	for _, from := range q.From {
		if from == Wildcard {
			discovered, err := e.DiscoverResourceTypes(ctx)
			if err != nil {
				return nil, err
			}
			for _, res := range discovered {
				tasks = append(tasks, expand(coordinatesOf(res), res.Namespaced, namespaces)...)
			}
			continue
		}

		coords, err := e.resolver.ResolveRef(from)
		if err != nil {
			return nil, err
		}
		namespaced := true
		if namespaces != nil {
			namespaced = e.isNamespaced(ctx, coords)
		}
		tasks = append(tasks, expand(coords, namespaced, namespaces)...)
	}

	results := make([][]unstructured.Unstructured, len(tasks))
	err := e.forEach(ctx, len(tasks), func(ctx context.Context, i int) error {
		items, err := e.list(ctx, tasks[i].coords)
		if err != nil {
			return err
		}
		results[i] = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	var items []unstructured.Unstructured
	for _, r := range results {
		items = append(items, r...)
	}
	return items, nil
}

// DiscoverResourceTypes returns every listable resource type: the built-in
// API table first, then group/versions contributed by CRDs, each in the order
// discovery reports them.
func (e *Executor) DiscoverResourceTypes(ctx context.Context) ([]types.APIResource, error) {
	apis := e.resolver.Registry().APIs()

	crdAPIs, err := e.crdAPIs(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		e.log.Warnw("Failed to list CustomResourceDefinitions, continuing with built-in APIs", "error", err)
	}
	apis = mergeAPIs(apis, crdAPIs)

	discovered := make([][]types.APIResource, len(apis))
	err = e.forEach(ctx, len(apis), func(ctx context.Context, i int) error {
		resources, err := e.discoverer.ResourceTypesFor(ctx, apis[i])
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			e.log.Warnw("Skipping group version", "groupVersion", apis[i].GroupVersion, "error", err)
			return nil
		}
		discovered[i] = resources
		return nil
	})
	if err != nil {
		return nil, err
	}

	var resources []types.APIResource
	for _, d := range discovered {
		resources = append(resources, d...)
	}
	return resources, nil
}

// isNamespaced looks the scope of coords up in the registry, then in
// discovery. Types neither of them knows are assumed to be namespaced.
func (e *Executor) isNamespaced(ctx context.Context, coords resource.Coordinates) bool {
	if entry, ok := e.resolver.Registry().Lookup(coords.Kind); ok {
		return entry.Namespaced
	}

	gv := types.NewAPIGroupVersion(coords.APIGroup, coords.APIVersion)
	resources, err := e.discoverer.ResourceTypesFor(ctx, gv)
	if err != nil {
		e.log.Debugw("Scope discovery failed, assuming namespaced", "resource", coords.String(), "error", err)
		return true
	}
	for _, res := range resources {
		if res.Kind == coords.Kind {
			return res.Namespaced
		}
	}

	e.log.Debugw("Kind not served, assuming namespaced", "resource", coords.String())
	return true
}

// crdAPIs lists CRDs and returns one triple per CRD version
func (e *Executor) crdAPIs(ctx context.Context) ([]types.APIGroupVersion, error) {
	coords, err := e.resolver.ResolveRef(crdKind)
	if err != nil {
		return nil, err
	}

	list, err := e.lister.List(ctx, coords)
	if err != nil {
		return nil, err
	}

	var apis []types.APIGroupVersion
	for _, item := range list.Items {
		var crd apiextensionsv1.CustomResourceDefinition
		if err := runtime.DefaultUnstructuredConverter.FromUnstructured(item.Object, &crd); err != nil {
			e.log.Warnw("Skipping malformed CustomResourceDefinition", "name", item.GetName(), "error", err)
			continue
		}
		for _, v := range crd.Spec.Versions {
			apis = append(apis, types.NewAPIGroupVersion(crd.Spec.Group, v.Name))
		}
	}
	return apis, nil
}

// list returns the stamped items of one list call. Backend failures yield no
// items.
func (e *Executor) list(ctx context.Context, coords resource.Coordinates) ([]unstructured.Unstructured, error) {
	list, err := e.lister.List(ctx, coords)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		e.log.Warnw("Failed to list resources", "resource", coords.String(), "error", err)
		return nil, nil
	}

	items := list.Items
	for i := range items {
		items[i].SetAPIVersion(coords.APIGroupVersion)
		items[i].SetKind(coords.Kind)
	}
	return items, nil
}

// forEach calls fn for 0..n-1 with at most Concurrency calls in flight. With
// a concurrency of one the calls happen strictly in order.
func (e *Executor) forEach(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Concurrency)

	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			return fn(gctx, i)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// targetNamespaces returns the sorted namespaces to list namespaced types in,
// nil for cluster-wide listing
func (e *Executor) targetNamespaces(ctx context.Context) []string {
	if len(e.opts.Namespaces) == 0 {
		return nil
	}

	requested := sets.New(e.opts.Namespaces...)
	if e.namespaces != nil {
		requested = e.namespaces.Resolve(ctx, requested)
	}

	namespaces := sets.List(requested)
	if namespaces == nil {
		namespaces = []string{}
	}
	return namespaces
}

func expand(coords resource.Coordinates, namespaced bool, namespaces []string) []listTask {
	if !namespaced || namespaces == nil {
		return []listTask{{coords: coords}}
	}

	tasks := make([]listTask, 0, len(namespaces))
	for _, ns := range namespaces {
		tasks = append(tasks, listTask{coords: coords.InNamespace(ns)})
	}
	return tasks
}

func coordinatesOf(res types.APIResource) resource.Coordinates {
	gvr := res.GVR()
	return resource.Coordinates{
		APIGroup:        gvr.Group,
		APIVersion:      gvr.Version,
		APIGroupVersion: res.GroupVersion,
		Kind:            res.Kind,
		Plural:          res.Plural,
	}
}

// mergeAPIs appends the triples of extra not yet present, keeping order
func mergeAPIs(apis, extra []types.APIGroupVersion) []types.APIGroupVersion {
	seen := sets.New(apis...)
	for _, gv := range extra {
		if seen.Has(gv) {
			continue
		}
		seen.Insert(gv)
		apis = append(apis, gv)
	}
	return apis
}
