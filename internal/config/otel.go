package config

type Otel struct {
	ServiceName  string  `env:"OTEL_SERVICE_NAME" envDefault:"box-register"`
	TraceIDRatio float64 `env:"OTEL_TRACE_ID_RATIO" envDefault:"1"`
}
