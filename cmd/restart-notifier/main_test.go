package main

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRouteCommand(t *testing.T) {
	tests := []struct {
		name     string
		giveArgs []string
		giveEnv  string
		wantOut  string
		wantErr  bool
	}{
		{
			name:     "first matching rule wins",
			giveArgs: []string{"route", "--rules", "foo/bar/baz=qux,ignore/*/*=,foo/*/*=default", "foo", "bar", "baz"},
			wantOut:  "qux\n",
		},
		{
			name:     "disabled by empty channel",
			giveArgs: []string{"route", "--rules", "foo/bar/baz=qux,ignore/*/*=,foo/*/*=default", "ignore", "x", "y"},
			wantOut:  "(not notified)\n",
		},
		{
			name:     "rules from env",
			giveArgs: []string{"route", "foo", "other", "app"},
			giveEnv:  "foo/bar/baz=qux,ignore/*/*=,foo/*/*=default",
			wantOut:  "default\n",
		},
		{
			name:     "malformed rules",
			giveArgs: []string{"route", "--rules", "foo/bar=qux", "foo", "bar", "baz"},
			wantErr:  true,
		},
		{
			name:     "wrong argument count",
			giveArgs: []string{"route", "--rules", "*/*/*=alerts", "foo"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("RESTART_NOTIFIER_SLACK_NOTIFICATION_CONFIG", tt.giveEnv)

			var out bytes.Buffer

			cmd := newRootCommand(make(chan os.Signal), time.Now())
			cmd.SetOut(&out)
			cmd.SetErr(&out)
			cmd.SetArgs(tt.giveArgs)

			err := cmd.ExecuteContext(t.Context())
			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.wantOut, out.String())
		})
	}
}
