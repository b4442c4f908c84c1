package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseState(t *testing.T) {
	tests := []struct {
		in   string
		want State
	}{
		{in: "running", want: StateRunning},
		{in: "starting", want: StateStarting},
		{in: "stopping", want: StateStopping},
		{in: "offline", want: StateOffline},
		{in: " Stopping ", want: StateStopping},
		{in: "installing", want: StateOther},
		{in: "", want: StateOther},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseState(tt.in))
		})
	}
}
