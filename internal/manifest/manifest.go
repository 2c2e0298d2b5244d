package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	utiljson "k8s.io/apimachinery/pkg/util/json"
	utilyaml "k8s.io/apimachinery/pkg/util/yaml"
)

// Stdin is the file name that reads from standard input
const Stdin = "-"

const bufferSize = 4096

// ReadFile decodes the manifests in path, or in stdin when path is "-"
func ReadFile(path string, stdin io.Reader) ([]*unstructured.Unstructured, error) {
	if path == Stdin {
		return Decode(stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	objs, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return objs, nil
}

// Decode reads JSON or YAML manifests from r. A stream may hold several YAML
// documents, a JSON or YAML array, or objects of kind List; all are flattened
// into one slice in input order. Required fields are not checked here.
func Decode(r io.Reader) ([]*unstructured.Unstructured, error) {
	decoder := utilyaml.NewYAMLOrJSONDecoder(r, bufferSize)

	var objs []*unstructured.Unstructured
	for {
		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}

		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
			continue
		}

		var value interface{}
		if err := utiljson.Unmarshal(raw, &value); err != nil {
			return nil, err
		}

		decoded, err := flatten(value)
		if err != nil {
			return nil, err
		}
		objs = append(objs, decoded...)
	}

	return objs, nil
}

func flatten(value interface{}) ([]*unstructured.Unstructured, error) {
	switch v := value.(type) {
	case []interface{}:
		var objs []*unstructured.Unstructured
		for i, elem := range v {
			m, ok := elem.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("element %d is not an object", i)
			}
			objs = append(objs, &unstructured.Unstructured{Object: m})
		}
		return objs, nil

	case map[string]interface{}:
		if kind, _ := v["kind"].(string); kind == "List" {
			items, _ := v["items"].([]interface{})
			return flatten(items)
		}
		return []*unstructured.Unstructured{{Object: v}}, nil

	default:
		return nil, fmt.Errorf("expected an object or a list of objects, got %T", value)
	}
}
