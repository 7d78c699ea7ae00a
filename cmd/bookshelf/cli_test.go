package main_test

import (
	"bytes"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/bookshelf/cmd/bookshelf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allCommands = []string{"search", "list", "show", "status", "tag", "delete"}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, &bytes.Buffer{}),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range allCommands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_ParsesSearchFlags(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"search", "-t", "Dune", "--author", "Herbert", "--isbn", "9780441172719", "-n", "3", "--save", "--rps", "2"})
	require.NoError(t, err)

	assert.Equal(t, "Dune", cli.Search.Title)
	assert.Equal(t, "Herbert", cli.Search.Author)
	assert.Equal(t, "9780441172719", cli.Search.ISBN)
	assert.Equal(t, 3, cli.Search.Limit)
	assert.True(t, cli.Search.Save)
	assert.InDelta(t, 2.0, cli.Search.RPS, 0.001)
	assert.Equal(t, 3, cli.Search.Retries, "default retries")
}

func TestCLI_RejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"status", "book-1", "abandoned"})

	assert.Error(t, err)
}
