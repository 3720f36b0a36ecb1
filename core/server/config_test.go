package server_test

import (
	"testing"

	"stash-recipes/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_IsValidRealm(t *testing.T) {
	tests := []struct {
		name  string
		realm string
		want  bool
	}{
		{"PC", server.RealmPC, true},
		{"Xbox", server.RealmXbox, true},
		{"Sony", server.RealmSony, true},
		{"Invalid", "switch", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{Realm: tt.realm}
			assert.Equal(t, tt.want, c.IsValidRealm())
		})
	}
}

func TestConfig_BodyLimit(t *testing.T) {
	assert.Equal(t, 16*1024*1024, server.Config{}.BodyLimit())
	assert.Equal(t, 2*1024*1024, server.Config{BodyLimitMB: 2}.BodyLimit())
}
