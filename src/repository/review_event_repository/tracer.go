package review_event_repository

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("review_event_repository")
