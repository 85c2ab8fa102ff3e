package display

import (
	"bufio"
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// XrandrProvider enumerates and rotates X11 outputs by shelling out to xrandr.
type XrandrProvider struct {
	Binary string

	// run executes the binary; replaced in tests.
	run func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewXrandrProvider returns a provider using the xrandr binary on PATH.
func NewXrandrProvider() *XrandrProvider {
	return &XrandrProvider{Binary: "xrandr", run: runCommand}
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s %s: %v: %s", name, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// Enumerate lists connected, active outputs ordered left to right.
func (p *XrandrProvider) Enumerate(ctx context.Context) ([]Display, error) {
	out, err := p.run(ctx, p.Binary, "--prop")
	if err != nil {
		return nil, err
	}
	raw, err := ParseXrandr(out)
	if err != nil {
		return nil, err
	}
	return Assign(raw), nil
}

var versionPattern = regexp.MustCompile(`xrandr program version\s+(\S+)`)

// Version reports the installed xrandr version. It fails when the binary
// is missing or cannot reach the X server.
func (p *XrandrProvider) Version(ctx context.Context) (string, error) {
	out, err := p.run(ctx, p.Binary, "--version")
	if err != nil {
		return "", err
	}
	if m := versionPattern.FindSubmatch(out); m != nil {
		return string(m[1]), nil
	}
	return "unknown", nil
}

// ApplyRotation rotates one output. xrandr derives the new mode size itself,
// so width and height are only used for logging by callers.
func (p *XrandrProvider) ApplyRotation(ctx context.Context, d Display, r Rotation, width, height int) error {
	word, ok := xrandrWords[r]
	if !ok {
		return &ChangeError{Code: CodeBadParam, Detail: fmt.Sprintf("unsupported rotation %d", int(r))}
	}
	if _, err := p.run(ctx, p.Binary, "--output", d.DevicePath, "--rotate", word); err != nil {
		return &ChangeError{Code: CodeFailed, Detail: err.Error()}
	}
	return nil
}

var xrandrWords = map[Rotation]string{
	Rotate0:   "normal",
	Rotate90:  "left",
	Rotate180: "inverted",
	Rotate270: "right",
}

var (
	outputLine = regexp.MustCompile(`^(\S+) connected`)
	geometry   = regexp.MustCompile(`^(\d+)x(\d+)\+(-?\d+)\+(-?\d+)$`)
)

// ParseXrandr reads `xrandr --prop` output. Outputs that are connected but
// have no current mode (disabled) are skipped, as are disconnected ones.
// IDs are not assigned; see Assign.
func ParseXrandr(out []byte) ([]Display, error) {
	var (
		displays []Display
		current  *Display
		edid     strings.Builder
		inEDID   bool
	)

	flushEDID := func() {
		if current != nil && edid.Len() > 0 {
			if name := edidMonitorName(edid.String()); name != "" {
				current.Name = name
			}
		}
		edid.Reset()
		inEDID = false
	}

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()

		if !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") {
			flushEDID()
			current = nil
			m := outputLine.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			d, ok := parseOutputLine(m[1], strings.Fields(line)[2:])
			if !ok {
				continue
			}
			displays = append(displays, d)
			current = &displays[len(displays)-1]
			continue
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "EDID:"):
			flushEDID()
			inEDID = true
		case inEDID && isHex(trimmed):
			edid.WriteString(trimmed)
		default:
			flushEDID()
		}
	}
	flushEDID()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read xrandr output: %w", err)
	}
	return displays, nil
}

func parseOutputLine(name string, rest []string) (Display, bool) {
	d := Display{
		Name:       name,
		DevicePath: name,
		Connection: ConnectionFromOutputName(name),
	}
	found := false
	for i, field := range rest {
		if field == "primary" {
			continue
		}
		g := geometry.FindStringSubmatch(field)
		if g == nil {
			break
		}
		d.Width, _ = strconv.Atoi(g[1])
		d.Height, _ = strconv.Atoi(g[2])
		d.X, _ = strconv.Atoi(g[3])
		d.Y, _ = strconv.Atoi(g[4])
		found = true
		if i+1 < len(rest) {
			d.Rotation = rotationFromWord(rest[i+1])
		}
		break
	}
	return d, found
}

func rotationFromWord(word string) Rotation {
	for r, w := range xrandrWords {
		if w == word {
			return r
		}
	}
	// The "(normal left ...)" capability list follows when rotation is normal.
	return Rotate0
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// edidMonitorName pulls the 0xFC display descriptor out of a hex EDID block.
func edidMonitorName(hexEDID string) string {
	b, err := hex.DecodeString(hexEDID)
	if err != nil || len(b) < 128 {
		return ""
	}
	for _, off := range []int{54, 72, 90, 108} {
		desc := b[off : off+18]
		if desc[0] == 0 && desc[1] == 0 && desc[3] == 0xFC {
			name := string(desc[5:18])
			if i := strings.IndexByte(name, '\n'); i >= 0 {
				name = name[:i]
			}
			return strings.TrimSpace(name)
		}
	}
	return ""
}
