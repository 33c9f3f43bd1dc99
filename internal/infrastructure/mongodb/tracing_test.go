package mongodb_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/jhoicas/clientes-api/internal/infrastructure/mongodb"
)

func spanAttr(span sdktrace.ReadOnlySpan, key attribute.Key) string {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value.Emit()
		}
	}
	return ""
}

func TestCustomerRepo_Tracing(t *testing.T) {
	mt := newMockT(t)

	mt.Run("span_por_operacion", func(mt *mtest.T) {
		sr := tracetest.NewSpanRecorder()
		tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch))
		repo := mongodb.NewCustomerRepository(mt.Coll, mongodb.WithTracerProvider(tp))

		_, err := repo.FindByID(context.Background(), primitive.NewObjectID().Hex())
		require.Error(mt, err)

		spans := sr.Ended()
		require.Len(mt, spans, 1)
		assert.Equal(mt, "mongodb.findOne", spans[0].Name())
		assert.Equal(mt, "findOne", spanAttr(spans[0], "db.operation"))
		assert.Equal(mt, "mongodb", spanAttr(spans[0], "db.system"))
		assert.Equal(mt, mt.Coll.Name(), spanAttr(spans[0], "db.mongodb.collection"))
		assert.Equal(mt, codes.Unset, spans[0].Status().Code, "no encontrado no marca error")
	})

	mt.Run("error_marca_span", func(mt *mtest.T) {
		sr := tracetest.NewSpanRecorder()
		tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
		repo := mongodb.NewCustomerRepository(mt.Coll, mongodb.WithTracerProvider(tp))

		_, err := repo.FindByID(context.Background(), "xyz")
		require.Error(mt, err)

		spans := sr.Ended()
		require.Len(mt, spans, 1)
		assert.Equal(mt, codes.Error, spans[0].Status().Code)
	})
}
