package metadata

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/bindgen/errors"
)

// Extensions recognized by LoadDir. JSON is read through the YAML decoder.
var Extensions = []string{".json", ".yaml", ".yml"}

// Decode reads every item in r. YAML streams may hold several documents;
// each document is one item. Items named by a conventional file name get
// their kind, module, owner and name filled in from it when absent.
func Decode(r io.Reader, source string) ([]Item, error) {
	hint := hintFromFileName(filepath.Base(source))

	dec := yaml.NewDecoder(r)
	var items []Item
	for {
		var it Item
		err := dec.Decode(&it)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.New(errors.PhaseLoad, errors.KindInvalidInput).
				Pos(source).
				Cause(err).
				Detail("decode metadata").
				Build()
		}
		it.Source = source
		hint.apply(&it)
		if err := it.Validate(); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// LoadFile decodes the items of a single file.
func LoadFile(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindNotFound, err, "read "+path)
	}
	return Decode(bytes.NewReader(data), path)
}

// LoadDir reads every metadata file directly under dir concurrently and
// returns the items grouped in build order.
func LoadDir(ctx context.Context, dir string) ([]Item, error) {
	paths, err := ListFiles(dir)
	if err != nil {
		return nil, err
	}

	results := make([][]Item, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			items, err := LoadFile(path)
			if err != nil {
				return err
			}
			results[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []Item
	for _, items := range results {
		all = append(all, items...)
	}
	Logger().Debug("loaded metadata",
		zap.String("dir", dir),
		zap.Int("files", len(paths)),
		zap.Int("items", len(all)))
	return Group(all), nil
}

// ListFiles returns the metadata files directly under dir, sorted by name.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list metadata dir: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !IsMetadataFile(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

// IsMetadataFile reports whether name has a recognized extension.
func IsMetadataFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// fileHint is what a conventional file name says about its item:
//
//	mod.<module>.fn.<name>.json
//	mod.<module>.impl.<Type>.fn.<name>.json
//	type.<Type>.json
type fileHint struct {
	kind     Kind
	module   string
	selfName string
	name     string
	isType   bool
}

func hintFromFileName(base string) fileHint {
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	parts := strings.Split(stem, ".")
	switch {
	case len(parts) == 4 && parts[0] == "mod" && parts[2] == "fn":
		return fileHint{kind: KindFunction, module: parts[1], name: parts[3]}
	case len(parts) == 6 && parts[0] == "mod" && parts[2] == "impl" && parts[4] == "fn":
		return fileHint{kind: KindMethod, module: parts[1], selfName: parts[3], name: parts[5]}
	case len(parts) == 2 && parts[0] == "type":
		return fileHint{name: parts[1], isType: true}
	default:
		return fileHint{}
	}
}

func (h fileHint) apply(it *Item) {
	if it.Name == "" {
		it.Name = h.name
	}
	if it.Module == "" {
		it.Module = h.module
	}
	if it.SelfName == "" {
		it.SelfName = h.selfName
	}
	if it.Kind == "" {
		switch {
		case h.kind != "":
			it.Kind = h.kind
		case h.isType && len(it.Variants) > 0:
			it.Kind = KindEnum
		case h.isType:
			it.Kind = KindRecord
		}
	}
}
