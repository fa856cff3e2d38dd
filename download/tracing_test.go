package download_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/gkatanacio/artifact-fetcher/download"
)

func newRecorder(t *testing.T) (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { tp.Shutdown(context.Background()) })

	return recorder, tp
}

func spanAttr(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}

	return attribute.Value{}, false
}

func Test_Service_Download_AttemptSpans(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		serveArtifact(w, payload, "5.2.0", sha1Hex(payload))
	}))
	defer srv.Close()

	recorder, tp := newRecorder(t)
	svc, _ := newTestService(t, download.Options{TracerProvider: tp})

	res, err := svc.Download(context.Background(), download.Request{URL: srv.URL})
	require.NoError(t, err)
	defer os.Remove(res.Path)

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	for i, span := range spans {
		assert.Equal(t, "download.attempt", span.Name())
		number, ok := spanAttr(span, "download.attempt")
		require.True(t, ok)
		assert.Equal(t, int64(i+1), number.AsInt64())
	}

	reason, ok := spanAttr(spans[0], "download.retry")
	require.True(t, ok)
	assert.Equal(t, "server", reason.AsString())
	assert.NotEqual(t, codes.Error, spans[0].Status().Code)

	_, ok = spanAttr(spans[1], "download.retry")
	assert.False(t, ok)
	assert.NotEqual(t, codes.Error, spans[1].Status().Code)
}

func Test_Service_Download_FatalAttemptSpan(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	recorder, tp := newRecorder(t)
	svc, _ := newTestService(t, download.Options{TracerProvider: tp})

	_, err := svc.Download(context.Background(), download.Request{URL: srv.URL, Version: "9.9.9"})
	require.ErrorIs(t, err, download.ErrVersionNotFound)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, string(download.KindVersionNotFound), spans[0].Status().Description)
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}
