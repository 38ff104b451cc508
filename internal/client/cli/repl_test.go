package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls   []string
	movieID string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) WhoAmI(ctx context.Context) error {
	f.calls = append(f.calls, "whoami")
	return nil
}
func (f *fakeExec) EditProfile(ctx context.Context) error {
	f.calls = append(f.calls, "profile")
	return nil
}
func (f *fakeExec) ChangeEmail(ctx context.Context) error {
	f.calls = append(f.calls, "email")
	return nil
}
func (f *fakeExec) ChangePassword(ctx context.Context) error {
	f.calls = append(f.calls, "password")
	return nil
}
func (f *fakeExec) SetAvatar(ctx context.Context) error {
	f.calls = append(f.calls, "avatar")
	return nil
}
func (f *fakeExec) SetBackground(ctx context.Context) error {
	f.calls = append(f.calls, "background")
	return nil
}
func (f *fakeExec) DeleteAvatar(ctx context.Context) error {
	f.calls = append(f.calls, "delavatar")
	return nil
}
func (f *fakeExec) DeleteBackground(ctx context.Context) error {
	f.calls = append(f.calls, "delbackground")
	return nil
}
func (f *fakeExec) ShowMovie(ctx context.Context, id string) error {
	f.calls = append(f.calls, "movie")
	f.movieID = id
	return nil
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"whoami",
		"profile",
		"movie 42",
		"avatar",
		"foobar",
		"logout",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "whoami", "profile", "movie", "avatar", "logout"}
	if len(exec.calls) < len(wantOrder) {
		t.Fatalf("few calls: %+v", exec.calls)
	}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}
	if exec.movieID != "42" {
		t.Fatalf("movie id not passed: %q", exec.movieID)
	}
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("movie\nquit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
