package coordinator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/stitch/internal/adapters/bundle"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/stitch/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/stitch/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/stitch/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/stitch/internal/core/ports"
)

// NodeID is the unique identifier for the coordinator factory Graft node.
const NodeID graft.ID = "engine.coordinator"

func init() {
	graft.Register(graft.Node[*Factory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.ExpanderNodeID,
			fs.FingerprinterNodeID,
			fs.OracleNodeID,
			fs.JanitorNodeID,
			fs.WriterNodeID,
			bundle.FactoryNodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Factory, error) {
			expander, err := graft.Dep[ports.PathExpander](ctx)
			if err != nil {
				return nil, err
			}

			fingerprinter, err := graft.Dep[ports.Fingerprinter](ctx)
			if err != nil {
				return nil, err
			}

			oracle, err := graft.Dep[ports.StalenessOracle](ctx)
			if err != nil {
				return nil, err
			}

			janitor, err := graft.Dep[ports.ArtifactJanitor](ctx)
			if err != nil {
				return nil, err
			}

			writer, err := graft.Dep[ports.ArtifactWriter](ctx)
			if err != nil {
				return nil, err
			}

			bundlers, err := graft.Dep[ports.BundlerFactory](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return NewFactory(Deps{
				Expander:      expander,
				Fingerprinter: fingerprinter,
				Oracle:        oracle,
				Janitor:       janitor,
				Writer:        writer,
				Logger:        log,
				Tracer:        tracer,
			}, bundlers), nil
		},
	})
}
