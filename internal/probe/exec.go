package probe

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// runCommand executes an external query tool under the adapter's context.
// The process is killed when the context expires; failure modes are
// converted to the adapter taxonomy. Output is trimmed; an all-whitespace
// result yields an Empty failure.
func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, classifyExecError(ctx, name, err, stderr.Bytes())
	}

	out := bytes.TrimSpace(stdout.Bytes())
	if len(out) == 0 {
		return nil, &Failure{Kind: Empty, Err: fmt.Errorf("%s produced no output", name)}
	}
	return out, nil
}

func classifyExecError(ctx context.Context, name string, err error, stderr []byte) *Failure {
	if ctx.Err() == context.DeadlineExceeded {
		return &Failure{Kind: Timeout, Err: fmt.Errorf("%s killed after deadline", name)}
	}

	msg := strings.ToLower(string(stderr))
	switch {
	case strings.Contains(msg, "permission denied"),
		strings.Contains(msg, "access is denied"),
		strings.Contains(msg, "operation not permitted"),
		strings.Contains(msg, "must be run as root"):
		return denied(fmt.Errorf("%s: %s", name, firstLine(msg)))
	}

	f := AsFailure(err)
	if f.Kind == ProviderUnavailable && len(stderr) > 0 {
		f.Err = fmt.Errorf("%s: %w (%s)", name, err, firstLine(string(stderr)))
	}
	return f
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}
