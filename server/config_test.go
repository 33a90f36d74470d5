package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseDBConnString(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expect    Database
		expectErr bool
	}{
		{name: "inmem", input: "inmem", expect: Database{Type: DatabaseInMemory}},
		{name: "inmem with empty params is still valid", input: "inmem:", expect: Database{Type: DatabaseInMemory}},
		{name: "inmem with params is an error", input: "inmem:foo", expectErr: true},
		{name: "sqlite with path", input: "sqlite:/var/lib/brickgrammar", expect: Database{Type: DatabaseSQLite, DataDir: "/var/lib/brickgrammar"}},
		{name: "sqlite without path is an error", input: "sqlite", expectErr: true},
		{name: "none is always an error", input: "none", expectErr: true},
		{name: "unknown engine is an error", input: "postgres:localhost", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := ParseDBConnString(tc.input)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expect, actual)
		})
	}
}

func Test_Config_FillDefaults(t *testing.T) {
	cfg := Config{AdminPassphrase: "hunter2"}.FillDefaults()

	assert.NotEmpty(t, cfg.TokenSecret)
	assert.Equal(t, DatabaseInMemory, cfg.DB.Type)
	assert.Equal(t, 1000, cfg.UnauthDelayMillis)
	assert.Equal(t, "localhost:8080", cfg.ListenAddress)
}

func Test_Config_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		cfg       Config
		expectErr bool
	}{
		{
			name:      "valid config",
			cfg:       Config{TokenSecret: []byte("0123456789012345678901234567890123456789"), AdminPassphrase: "hunter2", DB: Database{Type: DatabaseInMemory}},
			expectErr: false,
		},
		{
			name:      "secret too short",
			cfg:       Config{TokenSecret: []byte("short"), AdminPassphrase: "hunter2", DB: Database{Type: DatabaseInMemory}},
			expectErr: true,
		},
		{
			name:      "missing admin passphrase",
			cfg:       Config{TokenSecret: []byte("0123456789012345678901234567890123456789"), DB: Database{Type: DatabaseInMemory}},
			expectErr: true,
		},
		{
			name:      "invalid db config",
			cfg:       Config{TokenSecret: []byte("0123456789012345678901234567890123456789"), AdminPassphrase: "hunter2", DB: Database{Type: DatabaseSQLite}},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_Config_UnauthDelay(t *testing.T) {
	assert.Zero(t, Config{UnauthDelayMillis: 0}.UnauthDelay())
	assert.Zero(t, Config{UnauthDelayMillis: -5}.UnauthDelay())
	assert.Equal(t, 250*1e6, float64(Config{UnauthDelayMillis: 250}.UnauthDelay()))
}
