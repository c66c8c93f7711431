package directory_repository

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("directory_repository")
