package session_repository

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("session_repository")
