package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-collection collection name
//	-driver database driver ("sqlite3" or "pgx")
//	-d database DSN (file path for sqlite3, postgres:// URI for pgx)
//	-c/-config json file path with configs
//	-op-timeout durable operation timeout (e.g., "5s", "1m")
//	-rebuild-interval background rebuild period, 0 disables (e.g., "10m")
//
// The crypto passphrase is deliberately not a flag: secrets come from the
// environment or the JSON file only.
func ParseFlags() *StructuredConfig {
	var collectionName string
	var databaseDriver string
	var databaseDSN string
	var jsonConfigPath string
	var opTimeout time.Duration
	var rebuildInterval time.Duration

	flag.StringVar(&collectionName, "collection", "", "Collection name")
	flag.StringVar(&databaseDriver, "driver", "", "Database driver (sqlite3 or pgx)")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&opTimeout, "op-timeout", 0, "Durable operation timeout (e.g., 5s, 1m)")
	flag.DurationVar(&rebuildInterval, "rebuild-interval", 0, "Background rebuild period, 0 disables (e.g., 10m)")

	flag.Parse()

	return &StructuredConfig{
		Collection: Collection{
			Name: collectionName,
		},
		Storage: Storage{
			DB: DB{
				Driver: databaseDriver,
				DSN:    databaseDSN,
			},
		},
		Sync: Sync{
			OpTimeout:       opTimeout,
			RebuildInterval: rebuildInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}
