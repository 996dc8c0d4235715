// BYZRA ⸻ internal/util/style.go
// defines CLI visual style, color roles, ornaments, and motion

package util

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// color roles as hex strings, overridable from copydetails.toml
type Palette struct {
	CHRM string `toml:"chrm"`
	HEAT string `toml:"heat"`
	HOTP string `toml:"hotp"`
	GUNM string `toml:"gunm"`
	VBLK string `toml:"vblk"`
	CSTL string `toml:"cstl"`
}

var DefaultPalette = Palette{
	CHRM: "#C0C0C0",
	HEAT: "#FF5C00",
	HOTP: "#FF007F",
	GUNM: "#444444",
	VBLK: "#121212",
	CSTL: "#88AABB",
}

// ╭─ STYLE DEFINITIONS ─────────────────────────╮
var (
	BRH lipgloss.Style
	LBL lipgloss.Style
	SUB lipgloss.Style
	NSH lipgloss.Style
	SEC lipgloss.Style
	NLL lipgloss.Style
	ORN lipgloss.Style
)

func init() {
	ApplyPalette(DefaultPalette)
}

// rebuilds the styles; empty roles keep their default
func ApplyPalette(p Palette) {
	pick := func(v, def string) lipgloss.Color {
		if v == "" {
			return lipgloss.Color(def)
		}
		return lipgloss.Color(v)
	}

	chrm := pick(p.CHRM, DefaultPalette.CHRM)
	heat := pick(p.HEAT, DefaultPalette.HEAT)
	hotp := pick(p.HOTP, DefaultPalette.HOTP)
	gunm := pick(p.GUNM, DefaultPalette.GUNM)
	vblk := pick(p.VBLK, DefaultPalette.VBLK)
	cstl := pick(p.CSTL, DefaultPalette.CSTL)

	BRH = lipgloss.NewStyle().Foreground(hotp).Bold(true)
	LBL = lipgloss.NewStyle().Foreground(heat).Bold(true)
	SUB = lipgloss.NewStyle().Foreground(gunm)
	NSH = lipgloss.NewStyle().Foreground(chrm).Bold(true)
	SEC = lipgloss.NewStyle().Foreground(cstl).Bold(true)
	NLL = lipgloss.NewStyle().Foreground(vblk).Faint(true)
	ORN = lipgloss.NewStyle().Foreground(gunm).Bold(true)
}

// true when stdout is an interactive terminal
func Interactive() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ╭─ SPINNER ───────────────────────────────────╮
// runs fn, animating label on the terminal; plain call otherwise
func SpinWhile(label string, fn func() (string, error)) (string, error) {
	if !Interactive() {
		return fn()
	}

	s := spinner.New(spinner.WithSpinner(spinner.Meter))
	ticker := time.NewTicker(s.Spinner.FPS)
	defer ticker.Stop()

	done := make(chan struct{})
	stopped := make(chan struct{})
	result := make(chan struct {
		out string
		err error
	}, 1)

	go func() {
		defer close(stopped)
		frame := 0
		frames := s.Spinner.Frames
		for {
			select {
			case <-ticker.C:
				fmt.Fprintf(os.Stdout, "\r%s %s", ORN.Render(frames[frame]), LBL.Render(label))
				frame = (frame + 1) % len(frames)
			case <-done:
				return
			}
		}
	}()

	go func() {
		out, err := fn()
		result <- struct {
			out string
			err error
		}{out, err}
	}()

	res := <-result
	close(done)
	<-stopped
	ClearLine()
	return res.out, res.err
}

// ╭─ CLEAR ─────────────────────────────────────╮
// erases the spinner line
func ClearLine() {
	fmt.Fprint(os.Stdout, "\r\033[K")
}
