package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, WARN, false)

	l.Debugf("hidden %d", 1)
	l.Infof("hidden %d", 2)
	l.Warnf("shown %d", 3)
	l.Errorf("shown %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown 3")
	assert.Contains(t, out, "[ERROR] shown 4")
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, ERROR, false)
	assert.False(t, l.Enabled(INFO))

	l.SetLevel(DEBUG)
	l.Debugf("now visible")
	assert.Contains(t, buf.String(), "[DEBUG] now visible")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"", INFO},
		{"warning", WARN},
		{" error ", ERROR},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestDefaultLogger(t *testing.T) {
	prev := Default()
	defer SetDefault(prev)

	var buf bytes.Buffer
	SetDefault(New(&buf, DEBUG, false))
	Info("hello %s", "world")
	assert.Contains(t, buf.String(), "[INFO] hello world")

	SetDefault(nil)
	assert.NotNil(t, Default())
}
