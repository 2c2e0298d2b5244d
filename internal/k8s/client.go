package k8s

import (
	"fmt"

	"github.com/pteich/kubeq/internal/config"
	"github.com/pteich/kubeq/internal/resource"
	"go.uber.org/zap"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// Client encapsulates all Kubernetes clients
type Client struct {
	KubeClient      kubernetes.Interface
	DynamicClient   dynamic.Interface
	DiscoveryClient discovery.DiscoveryInterface
	Config          *rest.Config
	Context         string
	// Namespace is the default namespace of the selected kubeconfig context
	Namespace string

	log *zap.SugaredLogger
}

// NewClient initializes Kubernetes clients based on the provided configuration
func NewClient(cfg *config.Config, log *zap.SugaredLogger) (*Client, error) {
	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	if cfg.Kubeconfig != "" {
		loadingRules.ExplicitPath = cfg.Kubeconfig
	}

	configOverrides := &clientcmd.ConfigOverrides{}
	if cfg.Context != "" {
		configOverrides.CurrentContext = cfg.Context
	}

	clientConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, configOverrides)

	restConfig, err := clientConfig.ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	rawConfig, err := clientConfig.RawConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to get raw config: %w", err)
	}

	currentContext := rawConfig.CurrentContext
	if cfg.Context != "" {
		currentContext = cfg.Context
	}

	namespace, _, err := clientConfig.Namespace()
	if err != nil || namespace == "" {
		namespace = "default"
	}

	kubeClient, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	dynamicClient, err := dynamic.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic client: %w", err)
	}

	discoveryClient, err := discovery.NewDiscoveryClientForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create discovery client: %w", err)
	}

	log.Debugw("Loaded kubeconfig", "context", currentContext, "host", restConfig.Host, "namespace", namespace)

	return &Client{
		KubeClient:      kubeClient,
		DynamicClient:   dynamicClient,
		DiscoveryClient: discoveryClient,
		Config:          restConfig,
		Context:         currentContext,
		Namespace:       namespace,
		log:             log,
	}, nil
}

// Resources returns a new ResourceService
func (c *Client) Resources(resolver *resource.Resolver) *ResourceService {
	return NewResourceService(c.DynamicClient, resolver, c.log)
}

// Discovery returns a new DiscoveryService
func (c *Client) Discovery() *DiscoveryService {
	return NewDiscoveryService(c.DiscoveryClient, c.log)
}

// Namespaces returns a new NamespaceResolver
func (c *Client) Namespaces() *NamespaceResolver {
	return NewNamespaceResolver(c.KubeClient.CoreV1().Namespaces(), c.log)
}

// Events returns a new EventService
func (c *Client) Events() *EventService {
	return NewEventService(c.KubeClient.CoreV1(), c.log)
}

// Logs returns a new LogService
func (c *Client) Logs() *LogService {
	return NewLogService(c.KubeClient.CoreV1(), c.log)
}
