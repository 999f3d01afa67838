package shell

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.spur.run/spur/internal/core/domain"
)

func TestBuildArgv(t *testing.T) {
	tests := []struct {
		name     string
		command  domain.Command
		expected []string
	}{
		{
			name:     "Default Shell",
			command:  domain.Command{Text: "echo hello world", Shell: "sh -c"},
			expected: []string{"sh", "-c", "echo hello world"},
		},
		{
			name:     "Shell With Flags",
			command:  domain.Command{Text: "ls", Shell: "bash --noprofile -c"},
			expected: []string{"bash", "--noprofile", "-c", "ls"},
		},
		{
			name:     "Quoted Shell Token",
			command:  domain.Command{Text: "ls", Shell: `"/opt/my shell/sh" -c`},
			expected: []string{"/opt/my shell/sh", "-c", "ls"},
		},
		{
			name:     "No Shell Tokenizes Command",
			command:  domain.Command{Text: "echo hello world"},
			expected: []string{"echo", "hello", "world"},
		},
		{
			name:     "No Shell Keeps Quoted Argument",
			command:  domain.Command{Text: `printf '%s\n' "two words"`},
			expected: []string{"printf", `%s\n`, "two words"},
		},
		{
			name:     "Command Text Is Never Tokenized Under A Shell",
			command:  domain.Command{Text: `echo "a && b"`, Shell: "sh -c"},
			expected: []string{"sh", "-c", `echo "a && b"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			argv, err := buildArgv(tt.command)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, argv)
		})
	}
}

func TestBuildArgv_Errors(t *testing.T) {
	t.Run("Empty Command Without Shell", func(t *testing.T) {
		_, err := buildArgv(domain.Command{Text: ""})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrEmptyCommand)
	})

	t.Run("Blank Shell Tokens", func(t *testing.T) {
		_, err := buildArgv(domain.Command{Text: "ls", Shell: "  "})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrEmptyCommand)
	})

	t.Run("Unterminated Quote In Shell", func(t *testing.T) {
		_, err := buildArgv(domain.Command{Text: "ls", Shell: `sh 'unterminated`})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to tokenize")
	})

	t.Run("Unterminated Quote In Command", func(t *testing.T) {
		_, err := buildArgv(domain.Command{Text: `echo 'unterminated`})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to tokenize")
	})
}

func TestResultFrom(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		res := resultFrom(nil, nil, nil)
		require.NotNil(t, res.ExitCode)
		assert.Equal(t, 0, *res.ExitCode)
	})

	t.Run("Exit Code", func(t *testing.T) {
		cmd := exec.Command("sh", "-c", "exit 3")
		err := cmd.Run()
		require.Error(t, err)

		res := resultFrom(err, nil, nil)
		require.NotNil(t, res.ExitCode)
		assert.Equal(t, 3, *res.ExitCode)
	})

	t.Run("Non Exit Error", func(t *testing.T) {
		res := resultFrom(errors.New("i/o trouble"), nil, nil)
		assert.Nil(t, res.ExitCode)
	})
}
