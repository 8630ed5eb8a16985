package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/stitch/internal/adapters/logger"
	"go.trai.ch/stitch/internal/adapters/telemetry"
	"go.trai.ch/stitch/internal/core/ports"
)

// NodeID is the unique identifier for the shell tool Graft node.
const NodeID graft.ID = "adapter.shell"

// Runner builds Commands sharing a logger and tracer.
type Runner struct {
	Logger ports.Logger
	Tracer ports.Tracer
}

// Command creates a Command for argv.
func (r *Runner) Command(argv []string, opts ...CommandOption) *Command {
	return NewCommand(r.Logger, r.Tracer, argv, opts...)
}

func init() {
	graft.Register(graft.Node[*Runner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, telemetry.TracerNodeID},
		Run: func(ctx context.Context) (*Runner, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			return &Runner{Logger: log, Tracer: tracer}, nil
		},
	})
}
