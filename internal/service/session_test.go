package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonedrill/backend/internal/audio"
	"github.com/tonedrill/backend/internal/model/types"
	"github.com/tonedrill/backend/internal/pkg/apperr"
)

func TestStartSessionClosedTransportAborts(t *testing.T) {
	transport := audio.NewTransport()
	require.NoError(t, transport.Close())

	svc := NewSession(nil, transport)
	_, err := svc.StartSession(context.Background(), "user-1", &types.StartSessionRequest{
		DrillID: "intervals",
	})
	assert.ErrorIs(t, err, apperr.ErrAudioUnavailable)
}
