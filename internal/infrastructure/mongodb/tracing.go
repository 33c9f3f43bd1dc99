package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.18.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/clientes-api/internal/domain"
)

const instrumentationName = "github.com/jhoicas/clientes-api/internal/infrastructure/mongodb"

// Option configura el repositorio.
type Option func(*CustomerRepo)

// WithTracerProvider usa un TracerProvider distinto del global.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *CustomerRepo) {
		r.tracer.tracer = tp.Tracer(instrumentationName)
	}
}

// opTracer abre un span de cliente por cada llamada al almacén.
type opTracer struct {
	tracer     trace.Tracer
	attributes []attribute.KeyValue
}

func newOpTracer(coll *mongo.Collection) opTracer {
	return opTracer{
		tracer: otel.GetTracerProvider().Tracer(instrumentationName),
		attributes: []attribute.KeyValue{
			semconv.DBSystemMongoDB,
			semconv.DBNameKey.String(coll.Database().Name()),
			semconv.DBMongoDBCollectionKey.String(coll.Name()),
		},
	}
}

func (t opTracer) trace(ctx context.Context, op string) (context.Context, func(err error)) {
	ctx, span := t.tracer.Start(ctx, "mongodb."+op, trace.WithSpanKind(trace.SpanKindClient))

	attrs := make([]attribute.KeyValue, 0, len(t.attributes)+1)
	attrs = append(attrs, t.attributes...)
	attrs = append(attrs, semconv.DBOperationKey.String(op))
	span.SetAttributes(attrs...)

	return ctx, func(err error) {
		code, desc := spanStatus(err)
		span.SetStatus(code, desc)
		if code == codes.Error {
			span.RecordError(err)
		}
		span.End()
	}
}

// spanStatus: la ausencia de documento no es un fallo del almacén.
func spanStatus(err error) (codes.Code, string) {
	switch {
	case err == nil, errors.Is(err, domain.ErrNotFound):
		return codes.Unset, ""
	default:
		return codes.Error, err.Error()
	}
}
