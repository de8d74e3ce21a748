// Package session runs the interactive dictionary menu.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuidict/internal/dictionary"
	"github.com/verte-zerg/tuidict/internal/model"
	"github.com/verte-zerg/tuidict/internal/picker"
)

const (
	actionLoad = iota + 1
	actionSearch
	actionRandom
	actionExit
)

const (
	menuText = "\n--- Dictionary Menu ---\n" +
		"1. Load dictionary\n" +
		"2. Search for a word\n" +
		"3. Get a random word\n" +
		"4. Exit\n" +
		"\nEnter your choice: "
	loadPrompt   = "Enter dictionary file name: "
	searchPrompt = "Enter a word to search: "

	msgInvalid   = "Invalid option. Please try again."
	msgEmpty     = "Error Dictionary empty!!!"
	msgNotFound  = "Word not found."
	msgLoaded    = "\nDictionary Successfully Loaded!!\n"
	msgFarewell  = "\nExiting Program..... \nGoodbye!\n"
	msgLoadError = "Failed to load '%s'. Please check the file and try again.\n"
)

// Recorder receives every search and random draw.
type Recorder interface {
	Record(ctx context.Context, lookup model.Lookup) error
}

// LoadFunc loads a dictionary from a path.
type LoadFunc func(path string) (*dictionary.Dictionary, error)

// Session is a single interactive menu loop.
type Session struct {
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer

	state    State
	filename string

	picker   *picker.Picker
	recorder Recorder
	load     LoadFunc
	preload  string
	width    int
	now      func() time.Time

	labelStyle lipgloss.Style
	errorStyle lipgloss.Style
}

// Option configures a Session.
type Option func(*Session)

// WithPicker sets the random picker.
func WithPicker(p *picker.Picker) Option {
	return func(s *Session) {
		s.picker = p
	}
}

// WithRecorder records lookups. A nil recorder disables recording.
func WithRecorder(r Recorder) Option {
	return func(s *Session) {
		s.recorder = r
	}
}

// WithLoader replaces the dictionary loader.
func WithLoader(load LoadFunc) Option {
	return func(s *Session) {
		s.load = load
	}
}

// WithWidth wraps definitions to the given display width. Zero disables wrapping.
func WithWidth(width int) Option {
	return func(s *Session) {
		s.width = width
	}
}

// WithErrorOutput sets where diagnostics outside the transcript are written.
func WithErrorOutput(w io.Writer) Option {
	return func(s *Session) {
		s.errOut = w
	}
}

// Preload loads path before the first menu is shown.
func Preload(path string) Option {
	return func(s *Session) {
		s.preload = path
	}
}

// New constructs a session reading from in and writing to out.
func New(in io.Reader, out io.Writer, opts ...Option) *Session {
	renderer := lipgloss.NewRenderer(out)
	s := &Session{
		in:         bufio.NewReader(in),
		out:        out,
		errOut:     os.Stderr,
		state:      Unloaded{},
		load:       dictionary.Load,
		now:        time.Now,
		labelStyle: renderer.NewStyle().Bold(true),
		errorStyle: renderer.NewStyle().Foreground(lipgloss.Color("#FF4D4F")),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.picker == nil {
		s.picker = picker.New()
	}
	return s
}

// State returns the current session state.
func (s *Session) State() State {
	return s.state
}

// Run shows the menu until Exit is chosen or input ends.
func (s *Session) Run(ctx context.Context) error {
	if s.preload != "" {
		if err := s.loadFile(s.preload); err != nil {
			return err
		}
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.print(menuText); err != nil {
			return err
		}
		input, ok := s.readLine()
		if !ok {
			return s.print(msgFarewell)
		}

		choice, ok := parseChoice(input)
		if !ok {
			choice = 0
		}

		var done bool
		var err error
		switch choice {
		case actionLoad:
			done, err = s.handleLoad()
		case actionSearch:
			done, err = s.handleSearch(ctx)
		case actionRandom:
			err = s.handleRandom(ctx)
		case actionExit:
			return s.print(msgFarewell)
		default:
			err = s.println(msgInvalid)
		}
		if err != nil {
			return err
		}
		if done {
			return s.print(msgFarewell)
		}
	}
}

func (s *Session) handleLoad() (bool, error) {
	if err := s.print(loadPrompt); err != nil {
		return false, err
	}
	input, ok := s.readLine()
	if !ok {
		return true, nil
	}
	return false, s.loadFile(strings.TrimSpace(input))
}

func (s *Session) loadFile(filename string) error {
	s.filename = filename
	dict, err := s.load(filename)
	if err != nil {
		if !isLoadFailure(err) {
			s.logErrf("unexpected load error: %v\n", err)
		}
		return s.print(fmt.Sprintf(msgLoadError, filename))
	}
	s.state = Loaded{Dictionary: dict}
	if err := s.println(msgLoaded); err != nil {
		return err
	}
	if dict.Header != "" {
		return s.println(dict.Header)
	}
	return nil
}

func (s *Session) handleSearch(ctx context.Context) (bool, error) {
	dict, ok := dictionaryOf(s.state)
	if !ok {
		return false, s.println(s.errorStyle.Render(msgEmpty))
	}
	if err := s.print(searchPrompt); err != nil {
		return false, err
	}
	input, ok := s.readLine()
	if !ok {
		return true, nil
	}
	term := strings.TrimSpace(input)
	entry, found := dict.Find(term)
	s.record(ctx, model.Lookup{
		DictionaryPath: dict.Path,
		Kind:           model.LookupSearch,
		Term:           term,
		Found:          found,
		EntryName:      entry.Name,
	})
	if !found {
		return false, s.println(msgNotFound)
	}
	return false, s.display(entry)
}

func (s *Session) handleRandom(ctx context.Context) error {
	dict, ok := dictionaryOf(s.state)
	if !ok {
		return s.println(s.errorStyle.Render(msgEmpty))
	}
	entry, ok := s.picker.Pick(dict)
	if !ok {
		return s.println(s.errorStyle.Render(msgEmpty))
	}
	s.record(ctx, model.Lookup{
		DictionaryPath: dict.Path,
		Kind:           model.LookupRandom,
		Found:          true,
		EntryName:      entry.Name,
	})
	return s.display(entry)
}

func (s *Session) display(entry dictionary.Entry) error {
	_, err := io.WriteString(s.out, FormatEntry(entry, s.width, s.labelStyle))
	return err
}

func (s *Session) record(ctx context.Context, lookup model.Lookup) {
	if s.recorder == nil {
		return
	}
	lookup.LookedUpAt = s.now()
	if err := s.recorder.Record(ctx, lookup); err != nil {
		s.logErrf("failed to record lookup: %v\n", err)
	}
}

// readLine returns the next input line without its terminator. It reports
// false once input is exhausted.
func (s *Session) readLine() (string, bool) {
	line, err := s.in.ReadString('\n')
	if err != nil {
		if line == "" {
			return "", false
		}
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), true
}

func (s *Session) print(text string) error {
	_, err := io.WriteString(s.out, text)
	return err
}

func (s *Session) println(text string) error {
	_, err := fmt.Fprintln(s.out, text)
	return err
}

func (s *Session) logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(s.errOut, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

// parseChoice reads the leading integer of input: optional leading
// whitespace, an optional sign, then digits. Anything after the digits is
// ignored, so "2x" is 2.
func parseChoice(input string) (int, bool) {
	text := strings.TrimLeft(input, " \t\v\f\r\n")
	end := 0
	if end < len(text) && (text[end] == '+' || text[end] == '-') {
		end++
	}
	digits := end
	for end < len(text) && text[end] >= '0' && text[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(text[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func isLoadFailure(err error) bool {
	return errors.Is(err, dictionary.ErrFileNotFound) ||
		errors.Is(err, dictionary.ErrFileUnreadable) ||
		errors.Is(err, dictionary.ErrEmptyFile)
}
