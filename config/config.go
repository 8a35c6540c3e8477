package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/booknest/booknest/pkg/logger"
	"github.com/kelseyhightower/envconfig"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ_TIMEOUT" default:"10s"`
	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"HTTP_WRITE_TIMEOUT" default:"1m"`
}

// Collection is the remote backend that owns users and books.
type Collection struct {
	BaseURL string `envconfig:"COLLECTION_API_URL" default:"http://localhost:5000/api"`
}

// Catalog is the public book search API.
type Catalog struct {
	BaseURL string `envconfig:"CATALOG_API_URL" default:"https://www.googleapis.com/books/v1"`
	APIKey  string `envconfig:"CATALOG_API_KEY"`
}

// Identity is the auth provider's REST surface: sign-up/sign-in plus the
// token endpoint used to mint a fresh ID token per outbound call.
type Identity struct {
	BaseURL      string `envconfig:"IDENTITY_API_URL" default:"https://identitytoolkit.googleapis.com/v1"`
	TokenBaseURL string `envconfig:"IDENTITY_TOKEN_URL" default:"https://securetoken.googleapis.com/v1"`
	APIKey       string `envconfig:"FIREBASE_WEB_API_KEY"`
}

type Session struct {
	SigningKey string        `envconfig:"SESSION_SIGNING_KEY" required:"true"`
	TTL        time.Duration `envconfig:"SESSION_TTL" default:"24h"`
}

type Config struct {
	Server     HTTPServer `yaml:"server"`
	Collection Collection
	Catalog    Catalog
	Identity   Identity
	Session    Session
	Log        logger.Log `yaml:"log"`
}

var (
	once sync.Once
	cfg  Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = config
		printConfig(cfg)
	})

	return cfg
}

func printConfig(cfg Config) {
	cfg.Session.SigningKey = "***"
	cfg.Catalog.APIKey = "***"
	cfg.Identity.APIKey = "***"
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
