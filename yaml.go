package tabular

import (
	"encoding/base64"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

func writeYAML(w io.Writer, doc any, cfg *renderConfig) error {
	enc := yaml.NewEncoder(w)
	if cfg.indent != "" {
		enc.SetIndent(len(cfg.indent))
	}
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// MarshalYAML implements yaml.Marshaler, keeping numbers typed.
func (v Value) MarshalYAML() (any, error) { return v.yamlNode(), nil }

// MarshalYAML implements yaml.Marshaler, keeping field order.
func (o *Object) MarshalYAML() (any, error) { return o.yamlNode(), nil }

// MarshalYAML implements yaml.Marshaler, encoding the payload as base64.
func (a Attachment) MarshalYAML() (any, error) {
	return struct {
		Data          string `yaml:"data"`
		MimeType      string `yaml:"mimeType,omitempty"`
		FileName      string `yaml:"fileName,omitempty"`
		FileExtension string `yaml:"fileExtension,omitempty"`
	}{
		Data:          base64.StdEncoding.EncodeToString(a.Data),
		MimeType:      a.MimeType,
		FileName:      a.FileName,
		FileExtension: a.FileExtension,
	}, nil
}

func (v Value) yamlNode() *yaml.Node {
	switch v.kind {
	case KindBool:
		return scalarNode("!!bool", strconv.FormatBool(v.b))
	case KindNumber:
		if _, err := strconv.ParseInt(v.s, 10, 64); err == nil {
			return scalarNode("!!int", v.s)
		}
		return scalarNode("!!float", v.s)
	case KindString:
		return scalarNode("!!str", v.s)
	case KindObject:
		return v.obj.yamlNode()
	case KindArray:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range v.arr {
			n.Content = append(n.Content, e.yamlNode())
		}
		return n
	default:
		return scalarNode("!!null", "null")
	}
}

func (o *Object) yamlNode() *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for k, v := range o.All() {
		n.Content = append(n.Content, scalarNode("!!str", k), v.yamlNode())
	}
	return n
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}
