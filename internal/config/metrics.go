package config

type Metrics struct {
	// Textfile is where the metrics snapshot is dumped on exit. Empty
	// disables it.
	Textfile string `env:"METRICS_TEXTFILE"`
}
