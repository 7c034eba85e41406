// Package project loads Scratch projects from a blob bucket, either as a
// packaged .sb3 archive or as a bare project.json with its assets stored
// alongside
package project

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	"github.com/kode4food/flagstaff/pkg/api"
	"github.com/kode4food/flagstaff/pkg/log"

	_ "gocloud.dev/blob/azureblob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

type (
	// Loader reads projects and their assets from a bucket
	Loader struct {
		bucket *blob.Bucket
	}

	// Loaded is a parsed project together with the bytes of its costumes
	// and sounds
	Loaded struct {
		Project *api.Project
		Assets  Assets
	}

	// Assets maps md5ext file names to their contents
	Assets map[string][]byte
)

// ProjectFile is the name of the project document inside an archive
const ProjectFile = "project.json"

var (
	ErrOpenBucket      = errors.New("failed to open project bucket")
	ErrProjectNotFound = errors.New("project not found")
	ErrReadProject     = errors.New("failed to read project")
	ErrInvalidArchive  = errors.New("invalid project archive")
)

var zipMagic = []byte("PK\x03\x04")

// Open opens the bucket at the given gocloud URL (file://, mem://, s3://,
// gs:// or azblob://)
func Open(ctx context.Context, bucketURL string) (*Loader, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenBucket, err)
	}
	return NewLoader(bucket), nil
}

// NewLoader creates a Loader reading from an already opened bucket
func NewLoader(bucket *blob.Bucket) *Loader {
	return &Loader{bucket: bucket}
}

// Load reads the project stored under key. Archives are recognized by
// their content; anything else is parsed as project.json and its assets
// are read from the same directory of the bucket
func (l *Loader) Load(ctx context.Context, key string) (*Loaded, error) {
	data, err := l.bucket.ReadAll(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, key)
		}
		return nil, fmt.Errorf("%w: %w", ErrReadProject, err)
	}

	var res *Loaded
	if bytes.HasPrefix(data, zipMagic) {
		res, err = LoadArchive(data)
	} else {
		res, err = l.loadDocument(ctx, key, data)
	}
	if err != nil {
		return nil, err
	}

	slog.Info("Project loaded",
		slog.String("key", key),
		slog.Int("targets", len(res.Project.Targets)),
		slog.Int("assets", len(res.Assets)))
	return res, nil
}

// Close releases the bucket
func (l *Loader) Close() error {
	return l.bucket.Close()
}

// LoadArchive reads an .sb3 archive held in memory
func LoadArchive(data []byte) (*Loaded, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArchive, err)
	}

	var doc []byte
	assets := Assets{}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		content, err := readZipFile(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidArchive, err)
		}
		name := path.Base(f.Name)
		if name == ProjectFile {
			doc = content
			continue
		}
		assets[name] = content
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidArchive, ProjectFile)
	}

	proj, err := Parse(doc)
	if err != nil {
		return nil, err
	}
	measureCostumes(proj, assets)
	return &Loaded{Project: proj, Assets: assets}, nil
}

func (l *Loader) loadDocument(
	ctx context.Context, key string, data []byte,
) (*Loaded, error) {
	proj, err := Parse(data)
	if err != nil {
		return nil, err
	}

	dir := path.Dir(key)
	assets := Assets{}
	for _, name := range assetNames(proj) {
		if _, ok := assets[name]; ok {
			continue
		}
		content, err := l.bucket.ReadAll(ctx, path.Join(dir, name))
		if err != nil {
			slog.Warn("Asset unavailable",
				slog.String("asset", name),
				log.Error(err))
			continue
		}
		assets[name] = content
	}
	measureCostumes(proj, assets)
	return &Loaded{Project: proj, Assets: assets}, nil
}

// Asset returns the bytes of the named asset
func (a Assets) Asset(name string) ([]byte, bool) {
	data, ok := a[name]
	return data, ok
}

func assetNames(p *api.Project) []string {
	var res []string
	for _, t := range p.Targets {
		for _, c := range t.Costumes {
			if c.FullName != "" {
				res = append(res, c.FullName)
			}
		}
		for _, s := range t.Sounds {
			if s.FullName != "" {
				res = append(res, s.FullName)
			}
		}
	}
	return res
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(rc)
}
