package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zephyrtronium/twentyfour"
	"github.com/zephyrtronium/twentyfour/game"
)

// execute runs the command line in a fresh directory with the given config
// file contents and stdin.
func execute(t *testing.T, conf, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("LOGGING_LEVEL", "")
	t.Setenv("TWENTYFOUR_CORPUS", "")
	t.Setenv("TWENTYFOUR_TIMEOUT", "")
	dir := t.TempDir()
	path := filepath.Join(dir, "twentyfour.yaml")
	if conf != "" {
		require.NoError(t, os.WriteFile(path, []byte(conf), 0644))
	}
	cmd := newRootCmd(&cli{logger: zap.NewNop()})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", path}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), dir, err
}

func TestEvalArgs(t *testing.T) {
	out, _, err := execute(t, "", "", "eval", "1 + 2 * 3", "3 4 +", "* 4 - 10 4", "7 / 2")
	require.NoError(t, err)
	assert.Equal(t, "7\n7\n24\n7/2\n", out)
}

func TestEvalStdin(t *testing.T) {
	out, _, err := execute(t, "", "1 + 1\n\n2 2 *\n", "eval", "-n")
	require.NoError(t, err)
	assert.Equal(t, "2\n4\n", out)

	out, _, err = execute(t, "", "1 +\n 1\n", "eval")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

func TestEvalFile(t *testing.T) {
	in := filepath.Join(t.TempDir(), "exprs.txt")
	require.NoError(t, os.WriteFile(in, []byte("6 4 *\n(1 + 2) * 8\n"), 0644))
	out, _, err := execute(t, "", "", "eval", "-n", "--in", in, "1 - 1")
	require.NoError(t, err)
	assert.Equal(t, "24\n24\n0\n", out)
}

func TestEvalFlags(t *testing.T) {
	out, _, err := execute(t, "", "", "eval", "--float", "1 / 3")
	require.NoError(t, err)
	assert.Equal(t, "0.3333333333\n", out)

	out, _, err = execute(t, "", "", "eval", "--float", "-p", "2", "2 / 3")
	require.NoError(t, err)
	assert.Equal(t, "0.67\n", out)

	out, _, err = execute(t, "", "", "eval", "--echo", "(1+2)*8")
	require.NoError(t, err)
	assert.Equal(t, "(1 + 2) * 8 : [infix] 24\n", out)

	out, _, err = execute(t, "", "", "eval", "--notation", "postfix", "1 2 +", "1 + 2")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "3", lines[0])
	assert.NotEqual(t, "3", lines[1])

	_, _, err = execute(t, "", "", "eval", "--notation", "polish", "1")
	assert.Error(t, err)
}

func TestEvalErrorsContinue(t *testing.T) {
	out, _, err := execute(t, "", "", "eval", "1 / 0", "2 x 3", "5")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "5", lines[2])
}

func TestSolve(t *testing.T) {
	out, _, err := execute(t, "", "", "solve", "3", "3", "8", "8")
	require.NoError(t, err)
	ans := strings.TrimSpace(out)
	assert.True(t, twentyfour.IsCandidateMatch(ans, []int64{3, 3, 8, 8}, 24), "bad answer %q", ans)

	out, _, err = execute(t, "target: 10\n", "", "solve", "5", "5")
	require.NoError(t, err)
	assert.True(t, twentyfour.IsCandidateMatch(strings.TrimSpace(out), []int64{5, 5}, 10))

	out, _, err = execute(t, "", "", "solve", "-t", "1", "5", "5")
	require.NoError(t, err)
	assert.Equal(t, "5 / 5\n", out)

	_, _, err = execute(t, "", "", "solve", "1", "1", "1", "1")
	assert.Error(t, err)
	_, _, err = execute(t, "", "", "solve", "1", "x")
	assert.Error(t, err)
}

func TestGenerate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.txt")
	out, _, err := execute(t, "target: 4\n", "", "generate", "--out", path, "--min", "1", "--max", "4", "--size", "2")
	require.NoError(t, err)
	assert.Equal(t, "wrote 3 puzzles to "+path+"\n", out)
	c, err := game.LoadCorpus(path)
	require.NoError(t, err)
	assert.Equal(t, [][]int64{{1, 3}, {1, 4}, {2, 2}}, [][]int64{c.Puzzle(0), c.Puzzle(1), c.Puzzle(2)})
}

func TestPlay(t *testing.T) {
	corpus := filepath.Join(t.TempDir(), "corpus.txt")
	require.NoError(t, os.WriteFile(corpus, []byte("6 4\n"), 0644))
	conf := "corpus_path: " + corpus + "\n"
	out, _, err := execute(t, conf, "hello\n6 * 4\nquit\n", "play")
	require.NoError(t, err)
	assert.Contains(t, out, "Make 24 with")
	assert.Contains(t, out, "got it")
	assert.Contains(t, out, "Game over.")
	assert.Contains(t, out, "Solved 1 of 2.")
}

func TestPlayGeneratesCorpus(t *testing.T) {
	corpus := filepath.Join(t.TempDir(), "data", "corpus.txt")
	conf := "corpus_path: " + corpus + "\ntarget: 4\nsolver:\n  min: 1\n  max: 4\n  size: 2\n"
	out, _, err := execute(t, conf, "", "play")
	require.NoError(t, err)
	assert.Contains(t, out, "Make 4 with")
	assert.Contains(t, out, "Solved 0 of 1.")
	c, err := game.LoadCorpus(corpus)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())
}

func TestInvalidConfig(t *testing.T) {
	_, _, err := execute(t, "solver:\n  size: 0\n", "", "eval", "1")
	assert.Error(t, err)
}
