package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SettableKeys are the dotted keys accepted by SetValue.
var SettableKeys = []string{
	"api.base_url",
	"api.hospital_code",
	"api.timeout",
	"cache.departments_ttl",
	"session.db_path",
	"ui.markdown_style",
	"tracing.enabled",
	"tracing.exporter",
	"tracing.file_path",
	"tracing.otlp_endpoint",
	"tracing.sample_rate",
}

// SetValue writes a single dotted key into the config file, creating the file
// and any intermediate mappings as needed. Comments and formatting elsewhere
// in the file are preserved by editing the yaml.Node tree.
func SetValue(configPath, key, value string) error {
	if !isSettable(key) {
		return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(SettableKeys, ", "))
	}

	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}
	if doc.Kind == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode}}}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("parsing config: top level is not a mapping")
	}

	parts := strings.Split(key, ".")
	node := root
	for _, part := range parts[:len(parts)-1] {
		node = childMapping(node, part)
	}
	setScalar(node, parts[len(parts)-1], value)

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	return writeAtomic(configPath, buf.Bytes())
}

func isSettable(key string) bool {
	for _, k := range SettableKeys {
		if k == key {
			return true
		}
	}
	return false
}

// childMapping returns the mapping stored under name, creating or replacing it.
func childMapping(parent *yaml.Node, name string) *yaml.Node {
	for i := 0; i < len(parent.Content)-1; i += 2 {
		if parent.Content[i].Value == name {
			if parent.Content[i+1].Kind != yaml.MappingNode {
				parent.Content[i+1] = &yaml.Node{Kind: yaml.MappingNode}
			}
			return parent.Content[i+1]
		}
	}
	child := &yaml.Node{Kind: yaml.MappingNode}
	parent.Content = append(parent.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: name},
		child,
	)
	return child
}

func setScalar(parent *yaml.Node, name, value string) {
	for i := 0; i < len(parent.Content)-1; i += 2 {
		if parent.Content[i].Value == name {
			v := parent.Content[i+1]
			v.Kind = yaml.ScalarNode
			v.Tag = ""
			v.Value = value
			v.Content = nil
			return
		}
	}
	parent.Content = append(parent.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: name},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value},
	)
}

// writeAtomic writes to a temp file in the same directory, then renames.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".rounds.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
