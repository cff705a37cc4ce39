package service

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/grovetools/manuscript/pkg/frontmatter"
)

// exportFields lists the frontmatter keys owned by export. Other keys in an
// existing file belong to the user and are kept.
func exportFields(fm *frontmatter.Frontmatter) map[string]interface{} {
	fields := map[string]interface{}{
		"id":         fm.ID,
		"title":      fm.Title,
		"depth":      fm.Depth,
		"order":      fm.Order,
		"keywords":   fm.Keywords,
		"characters": fm.Characters,
		"locations":  fm.Locations,
		"words":      fm.Words,
		"created":    fm.Created,
		"modified":   fm.Modified,
	}
	optional := map[string]string{
		"parent":   fm.Parent,
		"synopsis": fm.Synopsis,
		"status":   fm.Status,
		"label":    fm.Label,
	}
	for k, v := range optional {
		if v != "" {
			fields[k] = v
		}
	}
	return fields
}

// mergeExport rewrites an existing exported file: export-owned fields are
// updated in place, user fields are preserved, and the body is replaced.
func mergeExport(existing []byte, fm *frontmatter.Frontmatter, body string) ([]byte, error) {
	updated, err := updateFrontmatterFields(existing, exportFields(fm))
	if err != nil {
		return nil, err
	}
	header, _, err := extractFrontmatterString(updated)
	if err != nil {
		return nil, err
	}

	var result bytes.Buffer
	result.WriteString("---\n")
	result.WriteString(strings.TrimSpace(header))
	result.WriteString("\n---\n\n")
	result.WriteString(body)
	return result.Bytes(), nil
}

// updateFrontmatterFields updates specific fields in the frontmatter while preserving existing ones.
func updateFrontmatterFields(content []byte, updates map[string]interface{}) ([]byte, error) {
	frontmatterStr, body, err := extractFrontmatterString(content)
	if err != nil {
		return nil, err
	}

	// If no frontmatter exists, create new one
	if frontmatterStr == "" {
		yamlBytes, err := yaml.Marshal(updates)
		if err != nil {
			return nil, fmt.Errorf("marshaling new frontmatter: %w", err)
		}

		var result bytes.Buffer
		result.WriteString("---\n")
		result.Write(yamlBytes)
		result.WriteString("---\n")
		result.Write(body)

		return result.Bytes(), nil
	}

	// Update existing frontmatter using Node API for formatting preservation
	updatedYAML, err := updateFrontmatterNode([]byte(frontmatterStr), updates)
	if err != nil {
		return nil, err
	}

	return replaceFrontmatter(content, string(updatedYAML)), nil
}

// updateFrontmatterNode updates YAML using the Node API to preserve formatting.
func updateFrontmatterNode(yamlData []byte, updates map[string]interface{}) ([]byte, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(yamlData, &root); err != nil {
		return nil, fmt.Errorf("unmarshaling YAML: %w", err)
	}

	if len(root.Content) == 0 {
		return nil, fmt.Errorf("no YAML document found")
	}
	doc := root.Content[0]

	// Sorted so new keys are appended in a stable order
	keys := make([]string, 0, len(updates))
	for key := range updates {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		updateNodeValue(doc, key, updates[key])
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&root); err != nil {
		return nil, fmt.Errorf("encoding YAML: %w", err)
	}

	return buf.Bytes(), nil
}

// updateNodeValue updates a specific field in a YAML node.
func updateNodeValue(node *yaml.Node, key string, value interface{}) {
	if node.Kind != yaml.MappingNode {
		return
	}

	for i := 0; i < len(node.Content)-1; i += 2 {
		if node.Content[i].Value == key {
			setNodeValue(node.Content[i+1], value)
			return
		}
	}

	// Key not found, add it
	keyNode := &yaml.Node{
		Kind:  yaml.ScalarNode,
		Value: key,
		Tag:   "!!str",
	}
	valueNode := &yaml.Node{}
	setNodeValue(valueNode, value)
	node.Content = append(node.Content, keyNode, valueNode)
}

// setNodeValue overwrites n with value. String slices become flow
// sequences; everything else is a scalar.
func setNodeValue(n *yaml.Node, value interface{}) {
	if items, ok := value.([]string); ok {
		n.Kind = yaml.SequenceNode
		n.Tag = "!!seq"
		n.Style = yaml.FlowStyle
		n.Value = ""
		n.Content = make([]*yaml.Node, len(items))
		for i, item := range items {
			n.Content[i] = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: item}
		}
		return
	}
	n.Kind = yaml.ScalarNode
	n.Style = 0
	n.Content = nil
	n.Value = fmt.Sprint(value)
	n.Tag = resolveYAMLTag(value)
}

// resolveYAMLTag determines the appropriate YAML tag for a value.
func resolveYAMLTag(value interface{}) string {
	switch value.(type) {
	case string:
		return "!!str"
	case int, int64, int32:
		return "!!int"
	case float64, float32:
		return "!!float"
	case bool:
		return "!!bool"
	default:
		return "!!str"
	}
}

// extractFrontmatterString extracts the raw YAML string between delimiters.
func extractFrontmatterString(content []byte) (string, []byte, error) {
	contentStr := string(content)

	if !strings.HasPrefix(contentStr, "---\n") && !strings.HasPrefix(contentStr, "---\r\n") {
		return "", content, nil
	}

	startIdx := strings.Index(contentStr, "\n") + 1

	endIdx := strings.Index(contentStr[startIdx:], "\n---\n")
	if endIdx == -1 {
		endIdx = strings.Index(contentStr[startIdx:], "\r\n---\r\n")
		if endIdx == -1 {
			return "", nil, fmt.Errorf("invalid frontmatter: no closing delimiter found")
		}
	}
	endIdx += startIdx

	yamlContent := contentStr[startIdx:endIdx]

	bodyStart := endIdx + 5 // length of "\n---\n"
	if bodyStart > len(contentStr) {
		bodyStart = len(contentStr)
	}

	return yamlContent, []byte(contentStr[bodyStart:]), nil
}

// replaceFrontmatter replaces existing frontmatter with new YAML string.
func replaceFrontmatter(content []byte, newFrontmatter string) []byte {
	_, body, _ := extractFrontmatterString(content)

	var result bytes.Buffer
	result.WriteString("---\n")
	result.WriteString(strings.TrimSpace(newFrontmatter))
	result.WriteString("\n---\n")
	result.Write(body)

	return result.Bytes()
}
