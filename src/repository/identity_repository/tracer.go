package identity_repository

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("identity_repository")
