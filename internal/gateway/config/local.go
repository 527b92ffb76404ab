package config

import "strings"

func defaults(env string) Config {
	if strings.EqualFold(env, "local") {
		return localConfig()
	}
	return Config{
		Env:      env,
		LogLevel: "info",
		Lexicon: LexiconConfig{
			Backend:           BackendFile,
			RootsPath:         "data/roots.txt",
			SchemesPath:       "data/schemes.txt",
			AutoSave:          true,
			IdentifyCacheSize: 4096,
		},
		Snapshot: SnapshotConfig{
			Region: "us-east-1",
			Bucket: "sarf-lexicon",
			UseSSL: true,
		},
	}
}

func localConfig() Config {
	return Config{
		Env:      "local",
		LogLevel: "debug",
		Lexicon: LexiconConfig{
			Backend:           BackendFile,
			RootsPath:         "data/roots.txt",
			SchemesPath:       "data/schemes.txt",
			AutoSave:          true,
			IdentifyCacheSize: 1024,
		},
		Snapshot: SnapshotConfig{
			Endpoint:  "minio:9000",
			Region:    "us-east-1",
			AccessKey: "sarf",
			SecretKey: "sarf12345",
			Bucket:    "sarf-lexicon",
			UseSSL:    false,
		},
	}
}
