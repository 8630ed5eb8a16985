package bundle

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"github.com/spf13/afero"
	"go.trai.ch/stitch/internal/adapters/fs"
	"go.trai.ch/stitch/internal/adapters/shell"
	"go.trai.ch/stitch/internal/core/ports"
)

// FactoryNodeID is the unique identifier for the bundler factory Graft node.
const FactoryNodeID graft.ID = "adapter.bundle.factory"

func init() {
	graft.Register(graft.Node[ports.BundlerFactory]{
		ID:        FactoryNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.FsNodeID, shell.NodeID},
		Run: func(ctx context.Context) (ports.BundlerFactory, error) {
			fsys, err := graft.Dep[afero.Fs](ctx)
			if err != nil {
				return nil, err
			}
			runner, err := graft.Dep[*shell.Runner](ctx)
			if err != nil {
				return nil, err
			}
			root, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			return NewFactory(fsys, runner, root), nil
		},
	})
}
