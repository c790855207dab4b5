package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env      string
	LogLevel string

	Database  DatabaseConfigs
	ApiServer APIServerConfigs
	Auth      AuthConfigs
	Storage   StorageConfigs
	File      FileConfigs
	Feed      FeedConfigs
	Redis     RedisConfigs
	Kafka     KafkaConfigs
	SnowFlake SnowFlakeConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
	LogLevel string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&multiStatements=true",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string
	Cert string
	Key  string
}

type APIServerConfigs struct {
	ServerConfigs

	MaxLimit     int
	DefaultLimit int
	AllowOrigins []string
}

type AuthConfigs struct {
	TokenSecret  string
	AccessToken  TokenConfigs
	RefreshToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type StorageConfigs struct {
	// Type is either "local" or "s3".
	Type string

	Local LocalStorageConfigs
	S3    S3Configs
}

type LocalStorageConfigs struct {
	RootDir   string
	URLPrefix string
}

type S3Configs struct {
	Region         string
	Endpoint       string
	PublicEndpoint string
	AccessKey      string
	SecretKey      string
	Bucket         string
	SSLDisabled    bool
}

type FileConfigs struct {
	MaxSize          int64
	ProfileImageSize uint
}

type FeedConfigs struct {
	HotWindow time.Duration
}

type RedisConfigs struct {
	Addr string
}

type KafkaConfigs struct {
	Addr    string
	Enabled bool
}

type SnowFlakeConfigs struct {
	NodeID int64
}
