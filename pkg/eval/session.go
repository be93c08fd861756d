package eval

import (
	"os"
	"sort"
	"strings"
)

// Session is the context that commands run in: a working directory and an
// environment. Builtins change the Session instead of the process, so that
// several sessions can live in one process.
type Session struct {
	Dir string
	Env map[string]string
}

// NewSession returns a Session that starts from the working directory and the
// environment of the process.
func NewSession() (*Session, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return &Session{Dir: dir, Env: parseEnviron(os.Environ())}, nil
}

func parseEnviron(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}

// Getenv looks up an environment variable of the session.
func (s *Session) Getenv(name string) (string, bool) {
	v, ok := s.Env[name]
	return v, ok
}

// Setenv sets an environment variable of the session.
func (s *Session) Setenv(name, value string) {
	if s.Env == nil {
		s.Env = make(map[string]string)
	}
	s.Env[name] = value
}

// Environ returns the environment in the KEY=value form used by os/exec,
// sorted by key.
func (s *Session) Environ() []string {
	environ := make([]string, 0, len(s.Env))
	for k, v := range s.Env {
		environ = append(environ, k+"="+v)
	}
	sort.Strings(environ)
	return environ
}
