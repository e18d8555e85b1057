// Package platform supplies the process-environment capability: home
// directory lookup, environment-variable expansion, and user-directory
// expansion. A single Env is constructed at startup from the detected
// platform and passed explicitly wherever expansion is needed.
package platform

import (
	"os"
	"os/user"
	"strings"

	"github.com/clickpath/clickpath/pkg/filesystem"
	"github.com/clickpath/clickpath/pkg/pathtext"
)

// Env answers environment questions for the engine. Construct with New;
// the options exist so tests can run hermetically.
type Env struct {
	conv      *pathtext.Conventions
	home      string
	lookup    func(string) (string, bool)
	userHome  func(string) (string, bool)
	dirExists func(string) bool
}

// Option customizes an Env.
type Option func(*Env)

// WithHome fixes the home directory instead of asking the OS.
func WithHome(dir string) Option {
	return func(e *Env) { e.home = dir }
}

// WithLookup replaces the environment-variable lookup.
func WithLookup(fn func(string) (string, bool)) Option {
	return func(e *Env) { e.lookup = fn }
}

// WithUserHome replaces the ~user home lookup.
func WithUserHome(fn func(string) (string, bool)) Option {
	return func(e *Env) { e.userHome = fn }
}

// New builds an Env over fsys. Defaults: process environment, os/user
// lookup for ~user, and the OS-reported home with "/" as last resort.
func New(conv *pathtext.Conventions, fsys filesystem.FS, opts ...Option) *Env {
	e := &Env{
		conv:   conv,
		lookup: os.LookupEnv,
		userHome: func(name string) (string, bool) {
			u, err := user.Lookup(name)
			if err != nil {
				return "", false
			}
			return u.HomeDir, true
		},
		dirExists: func(p string) bool { return filesystem.IsDir(fsys, p) },
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.home == "" {
		if h, err := os.UserHomeDir(); err == nil {
			e.home = h
		} else {
			e.home = "/"
		}
	}
	return e
}

// Home returns the home directory.
func (e *Env) Home() string { return e.home }

func isVarChar(b byte) bool {
	return b == '_' ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z') ||
		('0' <= b && b <= '9')
}

// ExpandVars substitutes $NAME and ${NAME} references, plus %NAME% when
// the conventions use that syntax. References to unset variables are left
// in place so the caller can tell nothing changed.
func (e *Env) ExpandVars(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c == '$' && i+1 < len(s) {
			if s[i+1] == '{' {
				if j := strings.IndexByte(s[i+2:], '}'); j >= 0 {
					if v, ok := e.lookup(s[i+2 : i+2+j]); ok {
						b.WriteString(v)
						i += j + 3
						continue
					}
				}
			} else if isVarChar(s[i+1]) {
				j := i + 1
				for j < len(s) && isVarChar(s[j]) {
					j++
				}
				if v, ok := e.lookup(s[i+1 : j]); ok {
					b.WriteString(v)
				} else {
					b.WriteString(s[i:j])
				}
				i = j
				continue
			}
		} else if c == '%' && e.conv.PercentEnv() && i+1 < len(s) {
			if j := strings.IndexByte(s[i+1:], '%'); j > 0 {
				if v, ok := e.lookup(s[i+1 : i+1+j]); ok {
					b.WriteString(v)
					i += j + 2
					continue
				}
			}
		}
		b.WriteByte(c)
		i++
	}
	return b.String()
}

// ExpandUser expands a leading ~ or ~user. The input is returned
// unchanged when the user is unknown or the target directory does not
// exist, so callers can detect failure by comparing with the input.
func (e *Env) ExpandUser(s string) string {
	if s == "" || s[0] != '~' {
		return s
	}
	i := 1
	for i < len(s) && !e.conv.IsSeparator(s[i]) {
		i++
	}
	home := e.home
	if i > 1 {
		h, ok := e.userHome(s[1:i])
		if !ok {
			return s
		}
		home = h
	}
	if home == "" || !e.dirExists(home) {
		return s
	}
	return home + s[i:]
}
