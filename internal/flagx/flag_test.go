package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		names []string
		want  []string
	}{
		{
			name:  "separate value",
			args:  []string{"-c", "conf.json", "-a", "localhost"},
			names: []string{"c", "config"},
			want:  []string{"-c", "conf.json"},
		},
		{
			name:  "double dash with equals",
			args:  []string{"--config=alt.json", "-a", "localhost"},
			names: []string{"c", "config"},
			want:  []string{"--config=alt.json"},
		},
		{
			name:  "names given with dashes",
			args:  []string{"-d", "db", "-x", "1"},
			names: []string{"-d"},
			want:  []string{"-d", "db"},
		},
		{
			name:  "boolean flag followed by another flag",
			args:  []string{"-v", "-d", "db"},
			names: []string{"v", "d"},
			want:  []string{"-v", "-d", "db"},
		},
		{
			name:  "order preserved",
			args:  []string{"--config=first.json", "-c", "second.json", "-x", "1"},
			names: []string{"c", "config"},
			want:  []string{"--config=first.json", "-c", "second.json"},
		},
		{
			name:  "positional arguments skipped",
			args:  []string{"serve", "-a", ":8080", "extra"},
			names: []string{"a"},
			want:  []string{"-a", ":8080"},
		},
		{
			name:  "nothing owned",
			args:  []string{"-x", "1"},
			names: []string{"c"},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.names...))
		})
	}
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "a.json", ConfigPath([]string{"-a", ":1", "-c", "a.json"}))
	assert.Equal(t, "b.json", ConfigPath([]string{"-config=b.json"}))
	assert.Equal(t, "", ConfigPath([]string{"-a", ":1"}))
}
