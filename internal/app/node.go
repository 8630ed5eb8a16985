package app

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"github.com/spf13/afero"
	"go.trai.ch/stitch/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/stitch/internal/adapters/fs"     //nolint:depguard // Wired in app layer
	"go.trai.ch/stitch/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.trai.ch/stitch/internal/core/ports"
	"go.trai.ch/stitch/internal/engine/coordinator"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.FsNodeID,
			config.NodeID,
			coordinator.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			fsys, err := graft.Dep[afero.Fs](ctx)
			if err != nil {
				return nil, err
			}

			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			coordinators, err := graft.Dep[*coordinator.Factory](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			root, err := os.Getwd()
			if err != nil {
				return nil, err
			}

			return New(fsys, loader, coordinators, log, root), nil
		},
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(app, log), nil
		},
	})
}
