package main

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		in         string
		opts       options
		wantOut    string
		wantErrOut []string
		wantErr    bool
	}{
		{
			name:    "dump",
			in:      "<!DOCTYPE html><p>x",
			wantOut: "| <!DOCTYPE html>\n| <html>\n|   <head>\n|   <body>\n|     <p>\n|       \"x\"\n",
		},
		{
			name:    "html",
			in:      "<!DOCTYPE html><p>x",
			opts:    options{html: true},
			wantOut: "<!DOCTYPE html><html><head></head><body><p>x</p></body></html>\n",
		},
		{
			name:       "errors",
			in:         "<p>x</b>",
			opts:       options{errors: true},
			wantOut:    "| <html>\n|   <head>\n|   <body>\n|     <p>\n|       \"x\"\n",
			wantErrOut: []string{"expected-doctype-but-got-start-tag", "unexpected-end-tag"},
		},
		{
			name:    "fragment dump",
			in:      "<td>x",
			opts:    options{isFragment: true, fragment: "tr"},
			wantOut: "| <td>\n|   \"x\"\n",
		},
		{
			name:    "fragment html",
			in:      "<b>x",
			opts:    options{isFragment: true, html: true},
			wantOut: "<b>x</b>\n",
		},
		{
			name:       "strict",
			in:         "<p>x",
			opts:       options{strict: true},
			wantErrOut: []string{"expected-doctype-but-got-start-tag"},
			wantErr:    true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			logger, _ := test.NewNullLogger()
			tt.opts.encoding = "utf-8"

			var stdout, stderr bytes.Buffer
			err := run(&stdout, &stderr, []byte(tt.in), tt.opts, logger)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantOut, stdout.String())
			if len(tt.wantErrOut) == 0 {
				assert.Empty(t, stderr.String())
			}
			for _, want := range tt.wantErrOut {
				assert.Contains(t, stderr.String(), want)
			}
		})
	}
}

func TestPrintTokens(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	require.NoError(t, printTokens(&out, []byte(`<p class=a>x</p>`), "utf-8"))
	assert.Contains(t, out.String(), `StartTag p class="a"`)
	assert.Contains(t, out.String(), "EndTag p")
}

func TestNewLogger(t *testing.T) {
	t.Parallel()
	logger, err := newLogger("debug")
	require.NoError(t, err)
	assert.Equal(t, "debug", logger.GetLevel().String())

	_, err = newLogger("loud")
	assert.Error(t, err)
}
