package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/klabast/wb-services/controle-cafe/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LogConfig
		wantLevel zapcore.Level
		wantErr   bool
	}{
		{name: "Console debug", cfg: config.LogConfig{Level: "debug", Format: "console"}, wantLevel: zapcore.DebugLevel},
		{name: "JSON warn", cfg: config.LogConfig{Level: "warn", Format: "json"}, wantLevel: zapcore.WarnLevel},
		{name: "Invalid level", cfg: config.LogConfig{Level: "loud", Format: "json"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(&tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !log.Core().Enabled(tt.wantLevel) {
				t.Errorf("Logger should be enabled at %s", tt.wantLevel)
			}
			if tt.wantLevel > zapcore.DebugLevel && log.Core().Enabled(tt.wantLevel-1) {
				t.Errorf("Logger should not be enabled below %s", tt.wantLevel)
			}
		})
	}
}
