/*
Brickserver starts a brickgrammar server and begins listening for new
connections.

Usage:

	brickserver [flags]
	brickserver [flags] -c CONFIG_FILE

Once started, the server listens for HTTP requests and responds to them using
a REST API for storing grammars and recording generation runs. By default it
listens on localhost:8080.

If a JWT token secret is not given, one is automatically generated and seeded
from the system's random source. As a consequence, in this mode of operation
all tokens are rendered invalid as soon as the server shuts down. This is
suitable for testing, but a secret must be given via config file or
environment variable if running in production.

The flags are:

	-v, --version
		Give the current version of the brickgrammar server and then exit.

	-c, --config CONFIG_FILE
		Load server configuration from the given TOML file. If not given,
		will default to the value of environment variable
		BRICKGRAMMAR_CONFIG_FILE. If neither is given, built-in defaults are
		used (an in-memory database and a randomly generated token secret).

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. Overrides the listen_address set in the config file, if any.

	--db DRIVER[:PARAMS]
		Use the given DB connection string. DRIVER must be one of the
		following: inmem, sqlite. inmem has no further params. sqlite needs
		the path to the data directory, such as sqlite:path/to/db_dir.
		Overrides the database set in the config file, if any.
*/
package main

import (
	"crypto/rand"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/dekarrin/brickgrammar/internal/version"
	"github.com/dekarrin/brickgrammar/server"
	"github.com/spf13/pflag"
)

const (
	EnvConfigFile = "BRICKGRAMMAR_CONFIG_FILE"
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of the brickgrammar server and then exit.")
	flagConfig  = pflag.StringP("config", "c", "", "Load server configuration from the given TOML file.")
	flagListen  = pflag.StringP("listen", "l", "", "Listen on the given address, overriding the config file.")
	flagDB      = pflag.String("db", "", "Use the given DB connection string, overriding the config file.")
)

func main() {
	returnCode := 0
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		}
		os.Exit(returnCode)
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("brickserver %s (brickgrammar v%s)\n", version.ServerCurrent, version.Current)
		return
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		returnCode = 1
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		returnCode = 1
		return
	}

	if pflag.Lookup("listen").Changed {
		cfg.ListenAddress = *flagListen
	}
	if pflag.Lookup("db").Changed {
		db, err := server.ParseDBConnString(*flagDB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\nDo -h for help.\n", err.Error())
			returnCode = 1
			return
		}
		cfg.DB = db
	}

	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %s\n", err.Error())
		returnCode = 1
		return
	}

	addr, port, err := splitListenAddress(cfg.ListenAddress)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\nDo -h for help.\n", err.Error())
		returnCode = 1
		return
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("FATAL could not start server: %s", err.Error())
	}
	log.Printf("INFO  Server initialized")

	log.Printf("INFO  Starting brickgrammar server %s...", version.ServerCurrent)
	if err := srv.ServeForever(addr, port); err != nil {
		log.Fatalf("FATAL server exited: %s", err.Error())
	}
}

// loadConfig reads the config file named by -c/--config or
// BRICKGRAMMAR_CONFIG_FILE, if any, and fills in a random token secret and
// passphrase when none was given on disk.
func loadConfig() (server.Config, error) {
	path := os.Getenv(EnvConfigFile)
	if pflag.Lookup("config").Changed {
		path = *flagConfig
	}

	var cfg server.Config
	if path != "" {
		var err error
		cfg, err = server.LoadConfig(path)
		if err != nil {
			return server.Config{}, fmt.Errorf("load config: %w", err)
		}
	}

	if len(cfg.TokenSecret) == 0 {
		secret := make([]byte, 64)
		if _, err := rand.Read(secret); err != nil {
			return server.Config{}, fmt.Errorf("generate token secret: %w", err)
		}
		cfg.TokenSecret = secret
		log.Printf("WARN  Using generated token secret; all tokens issued will become invalid at shutdown")
	}

	if cfg.AdminPassphrase == "" {
		passBytes := make([]byte, 18)
		if _, err := rand.Read(passBytes); err != nil {
			return server.Config{}, fmt.Errorf("generate admin passphrase: %w", err)
		}
		cfg.AdminPassphrase = fmt.Sprintf("%x", passBytes)
		log.Printf("WARN  Using generated admin passphrase (login with it once, then set admin_passphrase in config): %s", cfg.AdminPassphrase)
	}

	return cfg, nil
}

func splitListenAddress(listenAddr string) (addr string, port int, err error) {
	bindParts := strings.SplitN(listenAddr, ":", 2)
	if len(bindParts) != 2 {
		return "", 0, fmt.Errorf("listen address is not in ADDRESS:PORT or :PORT format")
	}

	port, err = strconv.Atoi(bindParts[1])
	if err != nil {
		return "", 0, fmt.Errorf("%q is not a valid port number", bindParts[1])
	}

	return bindParts[0], port, nil
}
