package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/spf13/afero"
	"go.trai.ch/stitch/internal/core/ports"
)

// Graft node identifiers of the file system adapters.
const (
	FsNodeID            graft.ID = "adapter.fs.os"
	WalkerNodeID        graft.ID = "adapter.fs.walker"
	ExpanderNodeID      graft.ID = "adapter.fs.expander"
	FingerprinterNodeID graft.ID = "adapter.fs.fingerprinter"
	OracleNodeID        graft.ID = "adapter.fs.oracle"
	JanitorNodeID       graft.ID = "adapter.fs.janitor"
	WriterNodeID        graft.ID = "adapter.fs.writer"
)

func init() {
	graft.Register(graft.Node[afero.Fs]{
		ID:        FsNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (afero.Fs, error) {
			return afero.NewOsFs(), nil
		},
	})

	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{FsNodeID},
		Run: func(ctx context.Context) (*Walker, error) {
			fsys, err := graft.Dep[afero.Fs](ctx)
			if err != nil {
				return nil, err
			}
			return NewWalker(fsys), nil
		},
	})

	graft.Register(graft.Node[ports.PathExpander]{
		ID:        ExpanderNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{FsNodeID, WalkerNodeID},
		Run: func(ctx context.Context) (ports.PathExpander, error) {
			fsys, err := graft.Dep[afero.Fs](ctx)
			if err != nil {
				return nil, err
			}
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewExpander(fsys, walker), nil
		},
	})

	graft.Register(graft.Node[ports.Fingerprinter]{
		ID:        FingerprinterNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{FsNodeID},
		Run: func(ctx context.Context) (ports.Fingerprinter, error) {
			fsys, err := graft.Dep[afero.Fs](ctx)
			if err != nil {
				return nil, err
			}
			return NewFingerprinter(fsys), nil
		},
	})

	graft.Register(graft.Node[ports.StalenessOracle]{
		ID:        OracleNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{FsNodeID},
		Run: func(ctx context.Context) (ports.StalenessOracle, error) {
			fsys, err := graft.Dep[afero.Fs](ctx)
			if err != nil {
				return nil, err
			}
			return NewOracle(fsys), nil
		},
	})

	graft.Register(graft.Node[ports.ArtifactJanitor]{
		ID:        JanitorNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{FsNodeID},
		Run: func(ctx context.Context) (ports.ArtifactJanitor, error) {
			fsys, err := graft.Dep[afero.Fs](ctx)
			if err != nil {
				return nil, err
			}
			return NewJanitor(fsys), nil
		},
	})

	graft.Register(graft.Node[ports.ArtifactWriter]{
		ID:        WriterNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{FsNodeID},
		Run: func(ctx context.Context) (ports.ArtifactWriter, error) {
			fsys, err := graft.Dep[afero.Fs](ctx)
			if err != nil {
				return nil, err
			}
			return NewWriter(fsys), nil
		},
	})
}
