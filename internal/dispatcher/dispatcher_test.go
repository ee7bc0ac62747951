package dispatcher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiledeck/tiledeck/internal/errors"
	"github.com/tiledeck/tiledeck/internal/logger"
	"github.com/tiledeck/tiledeck/internal/protocol"
	"github.com/tiledeck/tiledeck/internal/sampler"
)

// stubSampler returns a fixed reading or error.
type stubSampler struct {
	kind  string
	value float64
	err   error
}

func (s *stubSampler) Kind() string { return s.kind }

func (s *stubSampler) Sample(ctx context.Context) (float64, error) {
	return s.value, s.err
}

func TestDispatch_CopiesNonceVerbatim(t *testing.T) {
	d := New(logger.Noop())
	d.Register(&stubSampler{kind: protocol.MetricCPUTemp, value: 63.4})

	resp := d.Dispatch(context.Background(), []byte(`{"type":"GET_CPU_TEMP","nonce":42}`))

	require.NotNil(t, resp)
	assert.Equal(t, "CPU_TEMP", resp.Type)
	assert.Equal(t, protocol.Nonce(42), resp.Nonce)
	assert.Equal(t, 63.4, resp.Value)
}

func TestDispatch_InterleavedNonces(t *testing.T) {
	// The dispatcher tracks nothing per widget: any interleaving of
	// nonces gets each its own response, no drops, no duplicates.
	d := New(logger.Noop())
	d.Register(&stubSampler{kind: protocol.MetricCPUTemp, value: 55})

	for _, nonce := range []protocol.Nonce{42, 7, 42, 4294967295, 0} {
		req := protocol.NewRequest(protocol.MetricCPUTemp, nonce)
		raw, err := req.Encode()
		require.NoError(t, err)

		resp := d.Dispatch(context.Background(), raw)
		require.NotNil(t, resp)
		assert.Equal(t, nonce, resp.Nonce)
	}
}

func TestDispatch_MalformedDroppedAndLogged(t *testing.T) {
	log := logger.NewBufferLogger()
	d := New(log)
	d.Register(&stubSampler{kind: protocol.MetricCPUTemp, value: 55})

	assert.Nil(t, d.Dispatch(context.Background(), []byte("garbage")))
	assert.Nil(t, d.Dispatch(context.Background(), []byte(`{"nonce":1}`)))
	assert.True(t, log.HasLevel("warn"))
}

func TestDispatch_UnknownMetricDropped(t *testing.T) {
	d := New(logger.Noop())

	resp := d.Dispatch(context.Background(), []byte(`{"type":"GET_FAN_SPEED","nonce":9}`))
	assert.Nil(t, resp)
}

func TestDispatch_NonRequestTypeDropped(t *testing.T) {
	// A response tag arriving at the plugin is not a request.
	d := New(logger.Noop())
	d.Register(&stubSampler{kind: protocol.MetricCPUTemp, value: 55})

	resp := d.Dispatch(context.Background(), []byte(`{"type":"CPU_TEMP","nonce":9,"value":1}`))
	assert.Nil(t, resp)
}

func TestDispatch_SamplerFailureOmitsResponse(t *testing.T) {
	// With no cached reading to fall back on, the response is omitted
	// so the tile keeps its placeholder rather than animating to zero.
	d := New(logger.Noop())
	d.Register(&stubSampler{
		kind: protocol.MetricCPUTemp,
		err:  errors.New(errors.ErrSampler, "sensor gone", ""),
	})

	resp := d.Dispatch(context.Background(), []byte(`{"type":"GET_CPU_TEMP","nonce":3}`))
	assert.Nil(t, resp)
}

func TestDispatch_CachedFallbackAnswersAfterFailure(t *testing.T) {
	stub := &stubSampler{kind: protocol.MetricCPUTemp, value: 48.5}
	d := New(logger.Noop())
	d.Register(sampler.NewCached(stub))

	// First request succeeds and primes the cache.
	resp := d.Dispatch(context.Background(), []byte(`{"type":"GET_CPU_TEMP","nonce":1}`))
	require.NotNil(t, resp)
	assert.Equal(t, 48.5, resp.Value)

	// Sensor starts failing; the last good reading is reused.
	stub.err = errors.New(errors.ErrSampler, "sensor gone", "")
	resp = d.Dispatch(context.Background(), []byte(`{"type":"GET_CPU_TEMP","nonce":2}`))
	require.NotNil(t, resp)
	assert.Equal(t, 48.5, resp.Value)
	assert.Equal(t, protocol.Nonce(2), resp.Nonce)
}

func TestKinds(t *testing.T) {
	d := New(logger.Noop())
	d.Register(&stubSampler{kind: protocol.MetricCPUTemp})
	d.Register(&stubSampler{kind: protocol.MetricGPUTemp})

	assert.ElementsMatch(t, []string{"CPU_TEMP", "GPU_TEMP"}, d.Kinds())
}
