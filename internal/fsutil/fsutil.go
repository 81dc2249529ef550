// Package fsutil provides file system helpers for writing generated project trees.
package fsutil

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

// Tree represents a project directory that generated files are written into.
// Relative paths passed to its methods use forward slashes and are resolved
// against the tree root.
type Tree struct {
	root string
}

// NewTree constructs a Tree rooted at the given directory.
// The directory does not need to exist yet.
func NewTree(root string) *Tree {
	return &Tree{root: root}
}

// Root returns the absolute or caller-provided root path of the tree.
func (t *Tree) Root() string {
	return t.root
}

// Path resolves a slash-separated relative path against the tree root.
func (t *Tree) Path(rel string) string {
	return filepath.Join(t.root, filepath.FromSlash(rel))
}

// MkdirAll creates a directory (and parents) inside the tree.
func (t *Tree) MkdirAll(rel string) error {
	path := t.Path(rel)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", path, err)
	}
	return nil
}

// Exists reports whether a file or directory exists at the given relative path.
func (t *Tree) Exists(rel string) bool {
	_, err := os.Stat(t.Path(rel))
	return err == nil
}

// WriteFile writes content to a file inside the tree, creating parent
// directories as needed. Existing files are overwritten.
func (t *Tree) WriteFile(rel string, content []byte) error {
	path := t.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent directory for %q: %w", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write file %q: %w", path, err)
	}
	return nil
}

// WriteString writes string content to a file inside the tree.
func (t *Tree) WriteString(rel string, content string) error {
	return t.WriteFile(rel, []byte(content))
}

// EnsureFile writes content only when the file does not exist yet.
// It reports whether the file was created.
func (t *Tree) EnsureFile(rel string, content []byte) (bool, error) {
	if t.Exists(rel) {
		return false, nil
	}
	if err := t.WriteFile(rel, content); err != nil {
		return false, err
	}
	return true, nil
}

// WritePython assembles a Python source file from a module docstring, import
// lines, and a body, separated by blank lines, and writes it into the tree.
func (t *Tree) WritePython(rel string, docstring string, imports []string, body string) error {
	var parts []string
	if docstring != "" {
		parts = append(parts, `"""`+docstring+`"""`)
	}
	if len(imports) > 0 {
		parts = append(parts, strings.Join(imports, "\n"))
	}
	if body = strings.TrimRight(body, "\n"); body != "" {
		parts = append(parts, body)
	}
	return t.WriteString(rel, strings.Join(parts, "\n\n")+"\n")
}

// WriteYAML marshals data with two-space indentation and writes it into the tree.
func (t *Tree) WriteYAML(rel string, data any) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encode yaml for %q: %w", rel, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode yaml for %q: %w", rel, err)
	}
	return t.WriteFile(rel, buf.Bytes())
}

// WriteTemplate renders a Go text template with the given data and writes the
// result to a file inside the tree.
func (t *Tree) WriteTemplate(rel string, tmpl string, data any) error {
	rendered, err := RenderTemplate(rel, tmpl, data)
	if err != nil {
		return err
	}
	return t.WriteFile(rel, rendered)
}

// RenderTemplate renders arbitrary text content as a Go template.
func RenderTemplate(name string, tmpl string, data any) ([]byte, error) {
	parsed, err := template.New(name).Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("parse template %q: %w", name, err)
	}

	var buf bytes.Buffer
	if err := parsed.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute template %q: %w", name, err)
	}
	return buf.Bytes(), nil
}
