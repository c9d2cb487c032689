package dict

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/npillmayer/kaiseki/chardef"
	"github.com/npillmayer/kaiseki/errs"
	"golang.org/x/sync/errgroup"
)

// LoadDir loads a system dictionary from the blob files in directory dir.
func LoadDir(ctx context.Context, dir string) (*Dictionary, error) {
	return LoadFS(ctx, os.DirFS(dir), ".")
}

// LoadFS loads a system dictionary from the blob files in directory dir of
// fsys. Blobs are read and decoded concurrently. Any failure fails the whole
// load: missing or unreadable files with an error of kind errs.ErrIO, corrupt
// or incompatible blobs with errs.ErrDeserialize.
func LoadFS(ctx context.Context, fsys fs.FS, dir string) (*Dictionary, error) {
	var (
		mu       sync.Mutex
		payloads = make(map[blobKind][]byte, len(blobFiles))
		size     uint64
	)
	g, gctx := errgroup.WithContext(ctx)
	for kind, name := range blobFiles {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := fs.ReadFile(fsys, path.Join(dir, name))
			if err != nil {
				return errs.IO(name, err)
			}
			payload, err := decodeBlob(data, kind)
			if err != nil {
				return err
			}
			mu.Lock()
			payloads[kind] = payload
			size += uint64(len(data))
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		tracer().Errorf("loading dictionary from %s: %v", dir, err)
		return nil, err
	}
	d := &Dictionary{}
	g, _ = errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.CharDefs, err = chardef.Decode(payloads[blobCharDef])
		return
	})
	g.Go(func() (err error) {
		d.Matrix, err = DecodeMatrix(payloads[blobMatrix])
		return
	})
	g.Go(func() (err error) {
		d.Prefix, err = decodePrefix(payloads[blobTrie], payloads[blobVals])
		return
	})
	g.Go(func() (err error) {
		d.Words, err = DecodeDetails(payloads[blobWordsIdx], payloads[blobWords])
		return
	})
	g.Go(func() (err error) {
		d.Unknown, err = DecodeUnknown(payloads[blobUnknown])
		return
	})
	if err := g.Wait(); err != nil {
		tracer().Errorf("loading dictionary from %s: %v", dir, err)
		return nil, err
	}
	if err := d.validate(); err != nil {
		return nil, errs.Deserializef("dictionary %s: %v", dir, err)
	}
	if d.Words.Len() != d.Prefix.Len() {
		return nil, errs.Deserializef("dictionary %s: %d word details for %d words",
			dir, d.Words.Len(), d.Prefix.Len())
	}
	stats := d.Prefix.Stats()
	tracer().Infof("dictionary loaded from %s (%s): %d words, trie used=%d total=%d fill=%.2f",
		dir, humanize.Bytes(size), d.Prefix.Len(), stats.UsedSlots, stats.TotalSlots, stats.FillRatio())
	return d, nil
}

// WriteDir writes the blob files of d to directory dir, creating it if
// necessary.
func (d *Dictionary) WriteDir(dir string, c Compression) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errs.IO(dir, err)
	}
	writers := map[blobKind]func(io.Writer) (int64, error){
		blobCharDef:  d.CharDefs.WriteTo,
		blobMatrix:   d.Matrix.WriteTo,
		blobTrie:     d.Prefix.trie.WriteTo,
		blobVals:     d.Prefix.writeValsTo,
		blobWordsIdx: d.Words.WriteIndexTo,
		blobWords:    d.Words.WriteDataTo,
		blobUnknown:  d.Unknown.WriteTo,
	}
	var size uint64
	for kind, write := range writers {
		var buf bytes.Buffer
		if _, err := write(&buf); err != nil {
			return err
		}
		var out bytes.Buffer
		if err := encodeBlob(&out, kind, c, buf.Bytes()); err != nil {
			return err
		}
		name := filepath.Join(dir, blobFiles[kind])
		if err := os.WriteFile(name, out.Bytes(), 0o644); err != nil {
			return errs.IO(name, err)
		}
		size += uint64(out.Len())
	}
	tracer().Infof("dictionary written to %s (%s)", dir, humanize.Bytes(size))
	return nil
}
