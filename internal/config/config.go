package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type ProcessorConfig struct {
	Env       string `yaml:"env" env-default:"local"`
	OthubDB   `yaml:"othub_db"`
	OTNode    `yaml:"ot_node"`
	Kafka     `yaml:"kafka"`
	Recovery  `yaml:"recovery"`
	Metrics   `yaml:"metrics"`
	LogConfig `yaml:"log_config"`
	MasterKey string         `yaml:"master_key" env:"MASTER_KEY"`
	Wallets   []WalletConfig `yaml:"wallets"`
}

type OthubDB struct {
	Host     string `yaml:"host" env:"DBHOST"`
	Port     string `yaml:"port" env:"DBPORT" env-default:"5432"`
	User     string `yaml:"user" env:"DBUSER"`
	Password string `yaml:"password" env:"DBPASSWORD"`
	Name     string `yaml:"name" env:"OTHUB_DB"`

	// When set, versioned SQL migrations are applied instead of AutoMigrate.
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH"`
}

type OTNode struct {
	Hostname    string `yaml:"hostname" env:"OT_NODE_HOSTNAME"`
	TestnetPort string `yaml:"testnet_port" env:"OT_NODE_TESTNET_PORT"`
	MainnetPort string `yaml:"mainnet_port" env:"OT_NODE_MAINNET_PORT"`
	UseSSL      bool   `yaml:"use_ssl" env-default:"true"`
}

type Kafka struct {
	Host         string `yaml:"host"`
	Port         string `yaml:"port"`
	RequestTopic string `yaml:"request_topic" env-default:"txn-requests"`
	EventsTopic  string `yaml:"events_topic" env-default:"txn-events"`
	GroupID      string `yaml:"group_id" env-default:"othub-processor"`
}

type Recovery struct {
	RequeueDelay       time.Duration `yaml:"requeue_delay" env-default:"180s"`
	TransferRetryDelay time.Duration `yaml:"transfer_retry_delay" env-default:"60s"`
}

type Metrics struct {
	Addr string `yaml:"addr" env-default:":9091"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type WalletConfig struct {
	Name       string `yaml:"name"`
	PublicKey  string `yaml:"public_key"`
	PrivateKey string `yaml:"private_key"`
}

func (db *OthubDB) Dsn() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		db.Host, db.Port, db.User, db.Password, db.Name,
	)
}

func MustLoad() *ProcessorConfig {

	// Processing env config variable and file
	configPath := os.Getenv("OTHUB_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("OTHUB_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg ProcessorConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
