package k8s

import (
	"context"
	"fmt"

	"github.com/pteich/kubeq/internal/types"
	"go.uber.org/zap"
	corev1 "k8s.io/api/core/v1"
	corev1client "k8s.io/client-go/kubernetes/typed/core/v1"
)

// LogService reads container logs
type LogService struct {
	client corev1client.PodsGetter
	log    *zap.SugaredLogger
}

// NewLogService creates a new LogService
func NewLogService(client corev1client.PodsGetter, log *zap.SugaredLogger) *LogService {
	return &LogService{
		client: client,
		log:    log,
	}
}

// Logs returns the log of one container. An empty container selects the
// pod's only container.
func (s *LogService) Logs(ctx context.Context, namespace, pod, container string) (types.PodLog, error) {
	s.log.Debugw("Fetching logs", "namespace", namespace, "pod", pod, "container", container)

	raw, err := s.client.Pods(namespace).GetLogs(pod, &corev1.PodLogOptions{Container: container}).DoRaw(ctx)
	if err != nil {
		return types.PodLog{}, fmt.Errorf("failed to get logs of %s/%s: %w", namespace, pod, err)
	}

	return types.PodLog{
		Namespace: namespace,
		Name:      pod,
		Container: container,
		Log:       string(raw),
	}, nil
}
