package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type LedgerConfig struct {
	Env           string `yaml:"env"`
	LedgerDB      `yaml:"ledger_db"`
	MetricsServer `yaml:"metrics_server"`
	LogConfig     `yaml:"log_config"`
	KafkaService  `yaml:"kafka-service"`
}

type LedgerDB struct {
	Driver         string `yaml:"driver" env-default:"postgres"`
	Dsn            string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrations_path" env-default:"migrations"`
}

type MetricsServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type KafkaService struct {
	Host  string `yaml:"host"`
	Port  string `yaml:"port"`
	Topic string `yaml:"topic" env-default:"transaction-events"`
}

func MustLoad() *LedgerConfig {

	// Processing env config variable and file
	configPath := os.Getenv("LEDGER_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("LEDGER_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg LedgerConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
