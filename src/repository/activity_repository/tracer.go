package activity_repository

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("activity_repository")
