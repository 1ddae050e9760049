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
	Session   SessionConfigs
	Storage   S3Configs
	File      FileConfigs
	Redis     RedisConfigs
	Cache     CacheConfigs
	Search    SearchConfigs
}

type DatabaseConfigs struct {
	// Driver is either sqlite or mysql.
	Driver string

	// SqliteFile is only used by the sqlite driver.
	SqliteFile string

	Host     string
	Port     string
	Database string
	User     string
	Password string
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

	// PageSize is the number of posts on a feed page.
	PageSize       int
	AllowedOrigins []string
}

type SessionConfigs struct {
	Secret string
	Name   string
}

type AuthConfigs struct {
	TokenSecret string
	AccessToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type S3Configs struct {
	Region         string
	Endpoint       string
	PublicEndpoint string
	AccessKey      string
	SecretKey      string
	SSLDisabled    bool
}

type FileConfigs struct {
	MaxSize       int64
	MaxImageWidth int
	ImageBucket   string
}

type RedisConfigs struct {
	// Addr is empty if the page cache lives in process memory.
	Addr     string
	Password string
	DB       int
}

type CacheConfigs struct {
	IndexKey string
	IndexTTL time.Duration
}

type SearchConfigs struct {
	// IndexDir is empty if the index lives in memory only.
	IndexDir string
}

// Default returns the configurations used when a value is not given by the
// config file nor the environment.
func Default() Configs {
	return Configs{
		Env:      "local",
		LogLevel: "info",
		Database: DatabaseConfigs{
			Driver:     "sqlite",
			SqliteFile: "yatube.db",
		},
		ApiServer: APIServerConfigs{
			ServerConfigs: ServerConfigs{Port: "8000"},
			PageSize:      10,
		},
		Auth: AuthConfigs{
			AccessToken: TokenConfigs{
				Name:       "access_token",
				Expiration: 14 * 24 * time.Hour,
			},
		},
		Session: SessionConfigs{Name: "yatube_session"},
		File: FileConfigs{
			MaxSize:       2 << 20,
			MaxImageWidth: 960,
			ImageBucket:   "images",
		},
		Cache: CacheConfigs{
			IndexKey: "index_page",
			IndexTTL: 20 * time.Second,
		},
	}
}
