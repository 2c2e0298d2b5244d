package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/pteich/kubeq/internal/config"
	"github.com/pteich/kubeq/internal/types"
	"github.com/tidwall/gjson"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/util/duration"
	"sigs.k8s.io/yaml"
)

const none = "<none>"

var (
	primaryColor = lipgloss.Color("#7D56F4")

	headerStyle = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	cellStyle   = lipgloss.NewStyle().PaddingRight(3)

	objectHeads = []string{"APIVERSION", "KIND", "NAMESPACE", "NAME", "READY", "AGE"}
)

// Printer writes results as a table, JSON or YAML
type Printer struct {
	format string
	out    io.Writer
	now    func() time.Time
}

// NewPrinter creates a Printer for one of the config output formats
func NewPrinter(format string, out io.Writer) (*Printer, error) {
	switch format {
	case config.OutputTable, config.OutputJSON, config.OutputYAML:
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
	return &Printer{
		format: format,
		out:    out,
		now:    time.Now,
	}, nil
}

// PrintObjects prints items. In table format an empty columns slice shows
// the default object columns, otherwise each column is a gjson path.
func (p *Printer) PrintObjects(items []unstructured.Unstructured, columns []string) error {
	if p.format != config.OutputTable {
		list := make([]interface{}, 0, len(items))
		for _, item := range items {
			list = append(list, item.Object)
		}
		return p.encode(map[string]interface{}{
			"apiVersion": "v1",
			"kind":       "List",
			"items":      list,
		})
	}

	if len(columns) == 0 {
		rows := make([][]string, 0, len(items))
		for i := range items {
			rows = append(rows, p.objectRow(&items[i]))
		}
		return p.table(objectHeads, rows)
	}

	headers := make([]string, 0, len(columns))
	for _, c := range columns {
		headers = append(headers, strings.ToUpper(c))
	}

	rows := make([][]string, 0, len(items))
	for i := range items {
		data, err := items[i].MarshalJSON()
		if err != nil {
			return err
		}
		row := make([]string, 0, len(columns))
		for _, c := range columns {
			row = append(row, cell(gjson.GetBytes(data, c)))
		}
		rows = append(rows, row)
	}
	return p.table(headers, rows)
}

// PrintObject prints a single object. Tables fall back to YAML, a single
// object reads better as a document.
func (p *Printer) PrintObject(obj *unstructured.Unstructured) error {
	if p.format == config.OutputJSON {
		return p.encode(obj.Object)
	}
	return p.yaml(obj.Object)
}

// PrintAPIResources prints discovered resource types
func (p *Printer) PrintAPIResources(resources []types.APIResource) error {
	if p.format != config.OutputTable {
		return p.encode(resources)
	}

	rows := make([][]string, 0, len(resources))
	for _, r := range resources {
		rows = append(rows, []string{r.Plural, r.GroupVersion, strconv.FormatBool(r.Namespaced), r.Kind})
	}
	return p.table([]string{"NAME", "APIVERSION", "NAMESPACED", "KIND"}, rows)
}

// PrintEvents prints events
func (p *Printer) PrintEvents(events []types.Event) error {
	if p.format != config.OutputTable {
		return p.encode(events)
	}

	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{
			e.Namespace,
			p.age(e.LastTimestamp),
			e.Type,
			e.Reason,
			e.Object,
			e.Message,
		})
	}
	return p.table([]string{"NAMESPACE", "LAST SEEN", "TYPE", "REASON", "OBJECT", "MESSAGE"}, rows)
}

// PrintNamespaces prints namespace names
func (p *Printer) PrintNamespaces(names []string) error {
	if p.format != config.OutputTable {
		return p.encode(names)
	}

	rows := make([][]string, 0, len(names))
	for _, n := range names {
		rows = append(rows, []string{n})
	}
	return p.table([]string{"NAME"}, rows)
}

// PrintLog prints a container log. Tables print the raw log text.
func (p *Printer) PrintLog(podLog types.PodLog) error {
	if p.format != config.OutputTable {
		return p.encode(podLog)
	}
	_, err := io.WriteString(p.out, podLog.Log)
	return err
}

// PrintLogs prints the logs of several containers. Tables put a header line
// naming the container in front of each log.
func (p *Printer) PrintLogs(logs []types.PodLog) error {
	if p.format != config.OutputTable {
		return p.encode(logs)
	}
	for _, podLog := range logs {
		head := podLog.Namespace + "/" + podLog.Name
		if podLog.Container != "" {
			head += " " + podLog.Container
		}
		text := podLog.Log
		if text != "" && !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		if _, err := io.WriteString(p.out, headerStyle.Render(head)+"\n"+text); err != nil {
			return err
		}
	}
	return nil
}

// PrintValue prints any JSON serializable value. Tables fall back to JSON.
func (p *Printer) PrintValue(v interface{}) error {
	if p.format == config.OutputYAML {
		return p.yaml(v)
	}
	return p.json(v)
}

func (p *Printer) objectRow(obj *unstructured.Unstructured) []string {
	return []string{
		obj.GetAPIVersion(),
		obj.GetKind(),
		orNone(obj.GetNamespace()),
		obj.GetName(),
		types.ReadyStatus(types.ConditionsOf(obj)),
		p.age(obj.GetCreationTimestamp().Time),
	}
}

func (p *Printer) age(t time.Time) string {
	if t.IsZero() {
		return "<unknown>"
	}
	return duration.HumanDuration(p.now().Sub(t))
}

func (p *Printer) table(headers []string, rows [][]string) error {
	styled := make([]string, 0, len(headers))
	for _, h := range headers {
		styled = append(styled, headerStyle.Render(h))
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			return cellStyle
		}).
		Headers(styled...).
		Rows(rows...)

	_, err := fmt.Fprintln(p.out, t.Render())
	return err
}

func (p *Printer) encode(v interface{}) error {
	if p.format == config.OutputYAML {
		return p.yaml(v)
	}
	return p.json(v)
}

func (p *Printer) json(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.out, string(data))
	return err
}

func (p *Printer) yaml(v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = p.out.Write(data)
	return err
}

func cell(r gjson.Result) string {
	if !r.Exists() {
		return none
	}
	if r.IsObject() || r.IsArray() {
		return r.Raw
	}
	return r.String()
}

func orNone(s string) string {
	if s == "" {
		return none
	}
	return s
}
