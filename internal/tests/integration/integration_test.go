package integration

import (
	"bytes"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tfs "gotest.tools/v3/fs"
	"gotest.tools/v3/icmd"
)

// freeport - find a free TCP port for immediate use. No guarantees!
func freeport(t *testing.T) (port int, addr string) {
	t.Helper()

	l, err := net.ListenTCP("tcp", &net.TCPAddr{IP: net.ParseIP("127.0.0.1")})
	if err != nil {
		t.Fatal(err)
	}

	defer l.Close()

	a := l.Addr().(*net.TCPAddr)

	return a.Port, a.String()
}

// git runs git in dir, with a fixed identity so commits work on clean CI
// machines
func git(t *testing.T, dir string, args ...string) *icmd.Result {
	t.Helper()

	args = append([]string{"-c", "user.name=gitable", "-c", "user.email=gitable@example.com"}, args...)
	result := icmd.RunCmd(icmd.Command("git", args...), icmd.Dir(dir))
	result.Assert(t, icmd.Expected{ExitCode: 0})

	return result
}

// setupRepo creates a git repository with a single commit, in a directory
// named "repo" inside a new temporary directory
func setupRepo(t *testing.T) *tfs.Dir {
	t.Helper()

	tmpDir := tfs.NewDir(t, "gitable-inttests",
		tfs.WithDir("repo",
			tfs.WithFiles(map[string]string{
				"README.md": "# gitable\n",
			}),
		),
	)
	t.Cleanup(tmpDir.Remove)

	repoPath := tmpDir.Join("repo")

	result := icmd.RunCommand("git", "init", repoPath)
	result.Assert(t, icmd.Expected{ExitCode: 0, Out: "Initialized empty Git repository"})

	git(t, repoPath, "add", "-A")
	git(t, repoPath, "commit", "-m", "Initial commit")

	return tmpDir
}

// startGitDaemon serves the repository in tmpDir over the git protocol, and
// returns the daemon's address
func startGitDaemon(t *testing.T, tmpDir *tfs.Dir) string {
	t.Helper()

	pidDir := tfs.NewDir(t, "gitable-inttests-pid")
	t.Cleanup(pidDir.Remove)

	port, addr := freeport(t)
	gitDaemon := icmd.Command("git", "daemon",
		"--verbose",
		"--port="+strconv.Itoa(port),
		"--base-path="+tmpDir.Path(),
		"--pid-file="+pidDir.Join("git.pid"),
		"--export-all",
		tmpDir.Join("repo", ".git"),
	)
	gitDaemon.Stdin = nil
	gitDaemon.Stdout = &bytes.Buffer{}
	gitDaemon.Dir = tmpDir.Path()
	result := icmd.StartCmd(gitDaemon)

	t.Cleanup(func() {
		err := result.Cmd.Process.Kill()
		require.NoError(t, err)

		_, _ = result.Cmd.Process.Wait()
	})

	// give git time to start
	time.Sleep(500 * time.Millisecond)

	return addr
}
