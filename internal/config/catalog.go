package config

type Catalog struct {
	DataFile      string `env:"CATALOG_DATA_FILE" envDefault:"productos.json"`
	ActionLogFile string `env:"CATALOG_ACTION_LOG_FILE" envDefault:"sistema_log.txt"`
	ExportDir     string `env:"CATALOG_EXPORT_DIR" envDefault:"."`
	Actor         string `env:"CATALOG_ACTOR" envDefault:"Usuario"`
	SeedSamples   bool   `env:"CATALOG_SEED_SAMPLES" envDefault:"true"`
}
