package table

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseJSONL reads one JSON object per line. The header is the union of keys
// in first-seen order.
func ParseJSONL(source string, r io.Reader) (*Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	var objects []object
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var node yaml.Node
		if err := yaml.Unmarshal([]byte(line), &node); err != nil {
			return nil, fmt.Errorf("parse %s line %d: %w", source, lineNo, err)
		}
		obj, err := decodeObject(documentRoot(&node), lineNo)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
		objects = append(objects, obj)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", source, err)
	}

	return fromObjects(source, objects)
}

// ParseDocument reads a YAML or JSON document holding a list of flat objects.
func ParseDocument(source string, data []byte) (*Table, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse table %s: %w", source, err)
	}

	root := documentRoot(&doc)
	if root == nil {
		return nil, fmt.Errorf("%s: %w", source, ErrNoHeader)
	}
	if root.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%s: expected a list of rows", source)
	}

	objects := make([]object, 0, len(root.Content))
	for _, item := range root.Content {
		obj, err := decodeObject(item, item.Line)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
		objects = append(objects, obj)
	}
	return fromObjects(source, objects)
}

type object struct {
	line   int
	keys   []string
	values map[string]string
}

func documentRoot(node *yaml.Node) *yaml.Node {
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil
		}
		return node.Content[0]
	}
	return node
}

func decodeObject(node *yaml.Node, line int) (object, error) {
	if node == nil || node.Kind != yaml.MappingNode {
		return object{}, fmt.Errorf("line %d: row must be an object", line)
	}

	obj := object{line: line, values: make(map[string]string, len(node.Content)/2)}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := strings.TrimSpace(node.Content[i].Value)
		value := node.Content[i+1]
		if key == "" {
			return object{}, fmt.Errorf("line %d: blank field name", line)
		}
		if value.Kind != yaml.ScalarNode {
			return object{}, fmt.Errorf("line %d: field %q must be a scalar", line, key)
		}
		if _, exists := obj.values[key]; exists {
			return object{}, fmt.Errorf("line %d: %w %q", line, ErrDuplicateColumn, key)
		}
		cell := value.Value
		if value.Tag == "!!null" {
			cell = ""
		}
		obj.keys = append(obj.keys, key)
		obj.values[key] = strings.TrimSpace(cell)
	}
	return obj, nil
}

func fromObjects(source string, objects []object) (*Table, error) {
	var header []string
	seen := make(map[string]struct{})
	for _, obj := range objects {
		for _, key := range obj.keys {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			header = append(header, key)
		}
	}

	columns, err := normalizeHeader(header)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	t := &Table{Source: source, Columns: columns, Rows: make([]Row, 0, len(objects))}
	for _, obj := range objects {
		t.Rows = append(t.Rows, Row{Line: obj.line, Values: obj.values})
	}
	return t, nil
}
