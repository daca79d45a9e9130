package infra

import (
	"context"

	"go.uber.org/fx"

	"github.com/tonedrill/backend/internal/audio"
)

type AudioTransportDeps struct {
	fx.In

	// Loader is the sampled-instrument backend; absent, the transport runs
	// on the built-in synth.
	Loader audio.Loader `optional:"true"`
}

// AudioTransport provides the process-wide playback transport, released on
// shutdown.
func AudioTransport(lc fx.Lifecycle, deps AudioTransportDeps) *audio.Transport {
	var opts []audio.TransportOption
	if deps.Loader != nil {
		opts = append(opts, audio.WithLoader(deps.Loader))
	}
	transport := audio.NewTransport(opts...)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return transport.Close()
		},
	})

	return transport
}
