package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/pteich/kubeq/internal/config"
	"github.com/pteich/kubeq/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"sigs.k8s.io/yaml"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestPrinter(t *testing.T, format string) (*Printer, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	p, err := NewPrinter(format, buf)
	require.NoError(t, err)
	p.now = func() time.Time { return now }
	return p, buf
}

func deployment() unstructured.Unstructured {
	return unstructured.Unstructured{Object: map[string]interface{}{
		"apiVersion": "apps/v1",
		"kind":       "Deployment",
		"metadata": map[string]interface{}{
			"name":              "web",
			"namespace":         "shop",
			"creationTimestamp": now.Add(-3 * time.Hour).Format(time.RFC3339),
		},
		"spec": map[string]interface{}{
			"replicas": int64(3),
		},
		"status": map[string]interface{}{
			"conditions": []interface{}{
				map[string]interface{}{"type": "Available", "status": "True"},
			},
		},
	}}
}

func TestNewPrinter_UnknownFormat(t *testing.T) {
	_, err := NewPrinter("xml", &bytes.Buffer{})
	assert.Error(t, err)
}

func TestPrinter_PrintObjects_Table(t *testing.T) {
	p, buf := newTestPrinter(t, config.OutputTable)

	require.NoError(t, p.PrintObjects([]unstructured.Unstructured{deployment()}, nil))

	out := buf.String()
	for _, want := range []string{"APIVERSION", "KIND", "READY", "apps/v1", "Deployment", "shop", "web", "Ready", "3h"} {
		assert.Contains(t, out, want)
	}
}

func TestPrinter_PrintObjects_Columns(t *testing.T) {
	p, buf := newTestPrinter(t, config.OutputTable)

	require.NoError(t, p.PrintObjects([]unstructured.Unstructured{deployment()}, []string{"metadata.name", "spec.replicas", "spec.missing"}))

	out := buf.String()
	assert.Contains(t, out, "METADATA.NAME")
	assert.Contains(t, out, "SPEC.REPLICAS")
	assert.Contains(t, out, "web")
	assert.Contains(t, out, "3")
	assert.Contains(t, out, none)
}

func TestPrinter_PrintObjects_JSON(t *testing.T) {
	p, buf := newTestPrinter(t, config.OutputJSON)

	require.NoError(t, p.PrintObjects([]unstructured.Unstructured{deployment()}, nil))

	var list map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &list))
	assert.Equal(t, "List", list["kind"])
	require.Len(t, list["items"], 1)
}

func TestPrinter_PrintObjects_EmptyJSON(t *testing.T) {
	p, buf := newTestPrinter(t, config.OutputJSON)

	require.NoError(t, p.PrintObjects(nil, nil))
	assert.Contains(t, buf.String(), `"items": []`)
}

func TestPrinter_PrintObject_YAML(t *testing.T) {
	p, buf := newTestPrinter(t, config.OutputYAML)
	obj := deployment()

	require.NoError(t, p.PrintObject(&obj))

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Deployment", decoded["kind"])
}

func TestPrinter_PrintAPIResources(t *testing.T) {
	p, buf := newTestPrinter(t, config.OutputTable)

	require.NoError(t, p.PrintAPIResources([]types.APIResource{
		{GroupVersion: "cert-manager.io/v1", Kind: "Certificate", Plural: "certificates", Namespaced: true},
	}))

	out := buf.String()
	assert.Contains(t, out, "NAMESPACED")
	assert.Contains(t, out, "certificates")
	assert.Contains(t, out, "cert-manager.io/v1")
	assert.Contains(t, out, "true")
}

func TestPrinter_PrintEvents(t *testing.T) {
	p, buf := newTestPrinter(t, config.OutputTable)

	require.NoError(t, p.PrintEvents([]types.Event{{
		Namespace:     "default",
		Object:        "Pod/web",
		Type:          "Warning",
		Reason:        "BackOff",
		Message:       "Back-off restarting failed container",
		LastTimestamp: now.Add(-5 * time.Minute),
	}}))

	out := buf.String()
	assert.Contains(t, out, "Pod/web")
	assert.Contains(t, out, "BackOff")
	assert.Contains(t, out, "5m")
}

func TestPrinter_PrintLog(t *testing.T) {
	p, buf := newTestPrinter(t, config.OutputTable)
	require.NoError(t, p.PrintLog(types.PodLog{Name: "web", Log: "line one\nline two\n"}))
	assert.Equal(t, "line one\nline two\n", buf.String())

	p, buf = newTestPrinter(t, config.OutputJSON)
	require.NoError(t, p.PrintLog(types.PodLog{Name: "web", Log: "hello"}))
	assert.Contains(t, buf.String(), `"log": "hello"`)
}

func TestPrinter_PrintLogs(t *testing.T) {
	logs := []types.PodLog{
		{Namespace: "default", Name: "web", Container: "app", Log: "started"},
		{Namespace: "default", Name: "web", Container: "sidecar", Log: "ready\n"},
	}

	p, buf := newTestPrinter(t, config.OutputTable)
	require.NoError(t, p.PrintLogs(logs))
	out := buf.String()
	assert.Contains(t, out, "default/web app")
	assert.Contains(t, out, "started\n")
	assert.Contains(t, out, "default/web sidecar")
	assert.Less(t, strings.Index(out, "started"), strings.Index(out, "sidecar"))

	p, buf = newTestPrinter(t, config.OutputJSON)
	require.NoError(t, p.PrintLogs(logs))
	assert.Contains(t, buf.String(), `"container": "sidecar"`)
}

func TestPrinter_Age(t *testing.T) {
	p, _ := newTestPrinter(t, config.OutputTable)
	assert.Equal(t, "<unknown>", p.age(time.Time{}))
	assert.Equal(t, "2d", p.age(now.Add(-48*time.Hour)))
}
