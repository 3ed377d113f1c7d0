package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// The names of the two documents that describe a vendor catalog.
const (
	DepthTableFile = "depth_width.json"
	PortTableFile  = "type_ports.json"
)

// DefaultDir is the directory name used when no vendor-specific release
// directory exists.
const DefaultDir = "default"

// ResolveDir finds the catalog directory of a vendor. Search order:
//  1. <root>/<technology>/<vendor>
//  2. <root>/<technology>/default
//  3. <root>/default/<vendor>
func ResolveDir(root, technology, vendor string) (string, error) {
	if root == "" {
		return "", errors.Wrap(ErrNotFound, "no catalog root configured")
	}

	var candidates []string
	if technology != "" && vendor != "" {
		candidates = append(candidates, filepath.Join(root, technology, vendor))
	}

	if technology != "" {
		candidates = append(candidates, filepath.Join(root, technology, DefaultDir))
	}

	if vendor != "" {
		candidates = append(candidates, filepath.Join(root, DefaultDir, vendor))
	}

	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, nil
		}
	}

	return "", errors.Wrapf(ErrNotFound,
		"no catalog for technology %q vendor %q under %s", technology, vendor, root)
}

// Load resolves and loads the catalog of a vendor for a technology.
func Load(root, technology, vendor string) (*Catalog, error) {
	dir, err := ResolveDir(root, technology, vendor)
	if err != nil {
		return nil, err
	}

	c, err := LoadDir(dir, vendor)
	if err != nil {
		return nil, err
	}

	c.technology = technology

	return c, nil
}

// LoadDir loads the two catalog documents from a directory.
func LoadDir(dir, vendor string) (*Catalog, error) {
	depthDoc, err := readDoc(filepath.Join(dir, DepthTableFile))
	if err != nil {
		return nil, err
	}

	portDoc, err := readDoc(filepath.Join(dir, PortTableFile))
	if err != nil {
		return nil, err
	}

	v, err := newSchemaValidator()
	if err != nil {
		return nil, err
	}

	if err := v.validate("#DepthTable", depthDoc); err != nil {
		return nil, errors.WithMessage(err, DepthTableFile)
	}

	if err := v.validate("#PortTable", portDoc); err != nil {
		return nil, errors.WithMessage(err, PortTableFile)
	}

	b := MakeBuilder().WithVendor(vendor).WithDir(dir)

	b, err = parseDepthTable(b, depthDoc)
	if err != nil {
		return nil, errors.WithMessage(err, DepthTableFile)
	}

	b, err = parsePortTable(b, portDoc)
	if err != nil {
		return nil, errors.WithMessage(err, PortTableFile)
	}

	return b.Build()
}

func readDoc(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrapf(ErrNotFound, "%s", path)
	}

	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	return data, nil
}

// parseKey normalizes integer-like keys. Other keys are labels.
func parseKey(key string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(key))
	if err != nil || n <= 0 {
		return 0, false
	}

	return n, true
}

func parseDepthTable(b Builder, doc []byte) (Builder, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(doc, &top); err != nil {
		return b, errors.Wrapf(ErrMalformed, "%v", err)
	}

	labels := make(map[string]json.RawMessage)

	for _, key := range sortedKeys(top) {
		depth, ok := parseKey(key)
		if !ok {
			labels[key] = top[key]
			continue
		}

		var widths map[string]json.RawMessage
		if err := json.Unmarshal(top[key], &widths); err != nil {
			return b, errors.Wrapf(ErrMalformed, "depth %s: %v", key, err)
		}

		for _, wkey := range sortedKeys(widths) {
			width, ok := parseKey(wkey)
			if !ok {
				labels[key+"/"+wkey] = widths[wkey]
				continue
			}

			typed, err := parseEntry(widths[wkey])
			if err != nil {
				return b, errors.WithMessagef(err, "depth %d width %d", depth, width)
			}

			for _, typ := range sortedKeys(typed) {
				b = b.WithMacro(depth, width, typ, typed[typ]...)
			}
		}
	}

	return b.WithLabels(labels), nil
}

// parseEntry decodes a width entry into type -> names.
func parseEntry(raw json.RawMessage) (map[string][]string, error) {
	if names, err := parseNames(raw); err == nil {
		return map[string][]string{Wildcard: names}, nil
	}

	var byType map[string]json.RawMessage
	if err := json.Unmarshal(raw, &byType); err != nil {
		return nil, errors.Wrapf(ErrMalformed, "unexpected entry %s", string(raw))
	}

	typed := make(map[string][]string, len(byType))
	for typ, v := range byType {
		names, err := parseNames(v)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformed, "type %s: %v", typ, err)
		}

		typed[typ] = names
	}

	return typed, nil
}

func parseNames(raw json.RawMessage) ([]string, error) {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		if name == "" {
			return nil, errors.New("empty macro name")
		}

		return []string{name}, nil
	}

	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, err
	}

	if len(names) == 0 {
		return nil, errors.New("empty macro list")
	}

	return names, nil
}

func parsePortTable(b Builder, doc []byte) (Builder, error) {
	var table map[string]PortMap
	if err := json.Unmarshal(doc, &table); err != nil {
		return b, errors.Wrapf(ErrMalformed, "%v", err)
	}

	for _, key := range sortedKeys(table) {
		b = b.WithPorts(key, table[key])
	}

	return b, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
