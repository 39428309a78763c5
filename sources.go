package bcfg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// parseEnviron converts KEY=VALUE entries into a map. With a prefix, only
// entries named PREFIX_KEY are kept and stored under KEY.
func parseEnviron(environ []string, prefix string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, e := range environ {
		k, v, ok := strings.Cut(e, "=")
		if !ok || k == "" {
			continue
		}
		if prefix != "" {
			name, found := strings.CutPrefix(k, prefix+"_")
			if !found || name == "" {
				continue
			}
			k = name
		}
		values[k] = v
	}
	return values
}

// parseArgs turns an argument vector into key/value pairs.
//
//	--key=value, -k=value    explicit value
//	--key value, -k value    value is the next token unless it is an option
//	--key                    "true"
//	--                       stops option parsing
//
// A next token that reads as a negative number (--offset -5) is a value.
// Positional tokens are ignored.
func parseArgs(args []string) (map[string]string, error) {
	values := make(map[string]string)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		if len(arg) < 2 || arg[0] != '-' {
			continue
		}
		name := strings.TrimPrefix(strings.TrimPrefix(arg, "-"), "-")
		if k, v, ok := strings.Cut(name, "="); ok {
			if k == "" {
				return nil, fmt.Errorf("%w: empty key in %q", ErrMalformedArgs, arg)
			}
			values[k] = v
			continue
		}
		if name == "" || strings.HasPrefix(name, "-") {
			return nil, fmt.Errorf("%w: %q", ErrMalformedArgs, arg)
		}
		if i+1 < len(args) && isValueToken(args[i+1]) {
			values[name] = args[i+1]
			i++
			continue
		}
		values[name] = "true"
	}
	return values, nil
}

func isValueToken(s string) bool {
	if !strings.HasPrefix(s, "-") {
		return true
	}
	_, ok := parseUfloat(s[1:])
	return ok
}

func loadFromFile(path string) (map[string]string, error) {
	ext := filepath.Ext(path)
	if ext != ".yaml" && ext != ".yml" && ext != ".json" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedConfigFileType, ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var values map[string]string
	switch ext {
	case ".json":
		values, err = parseJSON(data)
	default:
		values, err = parseYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrParse, path, err)
	}
	return values, nil
}

// parseJSON keeps numbers as their literal text so large integers survive.
func parseJSON(data []byte) (map[string]string, error) {
	raw := make(map[string]any)
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	values := make(map[string]string, len(raw))
	for k, v := range raw {
		s, err := stringify(v)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		values[k] = s
	}
	return values, nil
}

func stringify(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case bool:
		return strconv.FormatBool(t), nil
	case json.Number:
		return t.String(), nil
	case []any:
		items := make([]string, 0, len(t))
		for _, item := range t {
			if _, nested := item.([]any); nested {
				return "", fmt.Errorf("nested sequences are not supported")
			}
			s, err := stringify(item)
			if err != nil {
				return "", err
			}
			items = append(items, s)
		}
		return strings.Join(items, ","), nil
	}
	return "", fmt.Errorf("unsupported value of type %T", v)
}

// parseYAML stores scalars as written in the file, so 0x10 stays "0x10" and
// dates are not reinterpreted.
func parseYAML(data []byte) (map[string]string, error) {
	raw := make(map[string]yaml.Node)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	values := make(map[string]string, len(raw))
	for k, node := range raw {
		n := node
		s, err := nodeText(&n)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		values[k] = s
	}
	return values, nil
}

func nodeText(n *yaml.Node) (string, error) {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return "", nil
		}
		return n.Value, nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			if item.Kind != yaml.ScalarNode && item.Kind != yaml.AliasNode {
				return "", fmt.Errorf("nested sequences and mappings are not supported")
			}
			s, err := nodeText(item)
			if err != nil {
				return "", err
			}
			items = append(items, s)
		}
		return strings.Join(items, ","), nil
	}
	return "", fmt.Errorf("unsupported yaml node at line %d", n.Line)
}
