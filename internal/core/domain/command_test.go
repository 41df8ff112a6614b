package domain

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResponder struct {
	command string
}

func (m *MockResponder) Respond(_ context.Context, _ time.Duration, _ *Message) error {
	return nil
}

func (m *MockResponder) GetCommand() string {
	return m.command
}

func TestRegister(t *testing.T) {
	cr := &CommandRegistry{}
	mr := &MockResponder{command: "/test"}

	cr.Register(mr)
	assert.Equal(t, 1, len(cr.commands))
}

func TestGetNotRegistered(t *testing.T) {
	cr := &CommandRegistry{}

	_, err := cr.Get("test")
	assert.EqualError(t, err, "can't fetch command, registry not initialized")
}

func TestGetCommandNotFound(t *testing.T) {
	cr := &CommandRegistry{}
	mr := &MockResponder{command: "/test"}

	cr.Register(mr)
	assert.Equal(t, 1, len(cr.commands))

	_, err := cr.Get("/foo")
	assert.EqualError(t, err, "command not found")
}

func TestGetCommandFound(t *testing.T) {
	cr := &CommandRegistry{}
	mr := &MockResponder{command: "/test"}

	cr.Register(mr)

	cmd, err := cr.Get("/test")
	require.NoError(t, err)
	require.NotNil(t, cmd)

	assert.Equal(t, "/test", cmd.GetCommand())
}

func TestListCommands(t *testing.T) {
	cr := &CommandRegistry{}

	cr.Register(&MockResponder{command: "/render"})
	cr.Register(&MockResponder{command: "/alt"})
	cr.Register(&MockResponder{command: "/import"})

	assert.Equal(t, []string{"/alt", "/import", "/render"}, cr.ListCommands())
}

func TestParseCommandFields(t *testing.T) {
	tests := []struct {
		name string
		args string
		want []string
	}{
		{name: "no input", args: "", want: nil},
		{name: "command only", args: "/render", want: []string{}},
		{name: "collapses whitespace", args: "/render  /a.png   100 100", want: []string{"/a.png", "100", "100"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseCommandFields(tc.args))
		})
	}
}

func TestParseCommand(t *testing.T) {
	type TestCase struct {
		description string
		args        string
		want        string
	}

	testCases := []TestCase{
		{
			description: "should return first word",
			args:        "/render",
			want:        "/render",
		},
		{
			description: "should discard following words",
			args:        "/render /a.png 100",
			want:        "/render",
		},
		{
			description: "should strip bot mention",
			args:        "/Render@respimg_bot /a.png",
			want:        "/render",
		},
		{
			description: "empty on no input",
			args:        "",
			want:        "",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			got := ParseCommand(testCase.args)

			assert.Equal(t, testCase.want, got)
		})
	}
}
