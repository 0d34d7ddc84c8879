package barcode

import (
	"context"
	"testing"

	"github.com/seatswap/ticketscan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeQR_RoundTrip(t *testing.T) {
	img, err := testutil.GenerateQRImage(`{"event":"Test Gig","date":"2025-12-31","venue":"Hall A"}`, 256)
	require.NoError(t, err)

	payload, err := DecodeQR(context.Background(), img)
	require.NoError(t, err)
	require.NotNil(t, payload)

	assert.Equal(t, "Test Gig", payload.EventName)
	assert.Equal(t, "2025-12-31", payload.EventDate)
	assert.Equal(t, "Hall A", payload.Venue)
	assert.Equal(t, 3, payload.FieldCount())
}

func TestDecodeQR_NoCode(t *testing.T) {
	img := testutil.GenerateNoiseImage(128, 128, 7)

	payload, err := DecodeQR(context.Background(), img)
	assert.NoError(t, err)
	assert.Nil(t, payload)
}

func TestDecodeQR_NilImage(t *testing.T) {
	payload, err := DecodeQR(context.Background(), nil)
	assert.NoError(t, err)
	assert.Nil(t, payload)
}

func TestDecodeQR_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	img := testutil.GenerateNoiseImage(64, 64, 1)
	_, err := DecodeQR(ctx, img)
	assert.Error(t, err)
}
