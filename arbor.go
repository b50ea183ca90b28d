// Package arbor provides typed containers for aggregating simulation output
// and serializing it in three interchangeable formats.
//
// Results accumulate in a Collection, a push-only analytics container with
// map, cut, histogram and plot operations. Collections are organized into
// named output containers for serialization: a Tree holds scalar metadata
// fields plus branches of any storable element type, while a FeedTree is
// generic over a single element type and fully round-trippable.
//
// # Formats
//
// Every container serializes to three formats sharing one logical shape:
//
//   - JSON (.json): verbose object-keyed text
//   - JSONC (.jsonc): compact array-positional text
//   - Msg (.msg): compact binary
//
// # Basic Usage
//
// Filling and writing a Tree:
//
//	import (
//	    "github.com/arloliu/arbor"
//	    "github.com/arloliu/arbor/collection"
//	    "github.com/arloliu/arbor/format"
//	    "github.com/arloliu/arbor/tree"
//	)
//
//	t := tree.New("run-42")
//	t.AddField("desc", "toy decay model")
//	t.AddField("beta", 0.25)
//
//	energies := collection.From([]float64{1.25, 0.5, 7.0})
//	t.AddBranch("energies", energies, format.TagF64)
//	spread, _ := collection.Hist(energies, 50)
//	t.AddBranch("spread", spread, format.TagBin)
//
//	arbor.WriteFile("run-42.msg", t)
//
// Reading it back:
//
//	t, _ := arbor.ReadTreeFile("run-42.msg")
//	b, _ := t.Branch("energies")
//	vals, _ := tree.Extract[float64](b)
//
// This package provides file-level wrappers around the tree package; for
// in-memory payloads use tree.Tree.Encode and tree.Decode directly.
package arbor

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arloliu/arbor/format"
	"github.com/arloliu/arbor/tree"
)

// Encoder is the serialization surface shared by Tree and FeedTree.
type Encoder interface {
	Encode(f format.Format) ([]byte, error)
}

// FormatForPath maps a file extension to its payload format. It fails when
// the extension is not .json, .jsonc or .msg.
func FormatForPath(path string) (format.Format, error) {
	ext := filepath.Ext(path)
	f, ok := format.FromExtension(ext)
	if !ok {
		return 0, fmt.Errorf("unrecognized extension %q", ext)
	}

	return f, nil
}

// WriteFile serializes a container to path in the format implied by the
// path's extension.
func WriteFile(path string, enc Encoder) error {
	f, err := FormatForPath(path)
	if err != nil {
		return err
	}

	data, err := enc.Encode(f)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(file)
	if _, err = w.Write(data); err != nil {
		file.Close()
		return err
	}
	if err = w.Flush(); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}

// ReadTreeFile reconstructs a Tree from path, choosing the format by the
// path's extension.
func ReadTreeFile(path string) (*tree.Tree, error) {
	f, data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	return tree.Decode(data, f)
}

// ReadFeedTreeFile reconstructs a FeedTree from path, choosing the format by
// the path's extension. T must match the element type the file was written
// with.
func ReadFeedTreeFile[T any](path string) (*tree.FeedTree[T], error) {
	f, data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	return tree.DecodeFeedTree[T](data, f)
}

func readFile(path string) (format.Format, []byte, error) {
	f, err := FormatForPath(path)
	if err != nil {
		return 0, nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, nil, err
	}

	return f, data, nil
}
