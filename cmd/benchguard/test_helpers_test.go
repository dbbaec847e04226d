package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"benchguard/internal/measure"
	"benchguard/internal/notify"
	"benchguard/internal/orchestrator"
	"benchguard/internal/runner"
	"benchguard/internal/store"
)

// memStore is an in-memory store.Store for command tests.
type memStore struct {
	sets    map[string]*measure.Set
	putErr  error
	getErr  error
	delErr  error
	deleted []string
}

func newMemStore() *memStore {
	return &memStore{sets: make(map[string]*measure.Set)}
}

func (m *memStore) Put(_ context.Context, set measure.Set) error {
	if m.putErr != nil {
		return m.putErr
	}
	if err := set.Validate(); err != nil {
		return err
	}
	m.sets[set.Label] = &set
	return nil
}

func (m *memStore) Get(_ context.Context, label string) (*measure.Set, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	set, ok := m.sets[label]
	if !ok {
		return nil, store.ErrNotFound
	}
	return set, nil
}

func (m *memStore) Labels(_ context.Context) ([]string, error) {
	labels := make([]string, 0, len(m.sets))
	for label := range m.sets {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels, nil
}

func (m *memStore) Delete(_ context.Context, label string) error {
	if m.delErr != nil {
		return m.delErr
	}
	if _, ok := m.sets[label]; !ok {
		return store.ErrNotFound
	}
	delete(m.sets, label)
	m.deleted = append(m.deleted, label)
	return nil
}

func (m *memStore) Close() error { return nil }

// fakeCheckout satisfies orchestrator.Checkout without a git binary.
type fakeCheckout struct {
	lastRef string
}

func (f *fakeCheckout) Clone(context.Context, string, string) error { return nil }

func (f *fakeCheckout) Checkout(_ context.Context, _, ref string) error {
	f.lastRef = ref
	return nil
}

func (f *fakeCheckout) RevParse(context.Context, string, string) (string, error) {
	return "sha-" + f.lastRef, nil
}

// fakeSuiteRunner serves canned samples keyed by the checked-out ref.
type fakeSuiteRunner struct {
	git     *fakeCheckout
	samples map[string]map[string]measure.Sample
	err     error
}

func (f *fakeSuiteRunner) RunSuite(context.Context, string, string) (map[string]measure.Sample, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.samples[f.git.lastRef], nil
}

type recordingNotifier struct {
	messages []string
}

func (r *recordingNotifier) Notify(_ context.Context, message string) error {
	r.messages = append(r.messages, message)
	return nil
}

// withFakes swaps every command factory for the given fakes and returns a
// restore function for defer.
func withFakes(s store.Store, git orchestrator.Checkout, r runner.Runner, n notify.Notifier) func() {
	oldStore, oldGit, oldRunner, oldNotifier := newStoreFunc, newGitFunc, newRunnerFunc, newNotifierFunc
	newStoreFunc = func() (store.Store, error) { return s, nil }
	newGitFunc = func() orchestrator.Checkout { return git }
	newRunnerFunc = func(*slog.Logger) (runner.Runner, error) { return r, nil }
	newNotifierFunc = func() (notify.Notifier, error) { return n, nil }
	return func() {
		newStoreFunc, newGitFunc, newRunnerFunc, newNotifierFunc = oldStore, oldGit, oldRunner, oldNotifier
	}
}

// executeCommand executes a cobra command and returns its combined output.
func executeCommand(root *cobra.Command, args ...string) (string, error) {
	resetFlags(root)
	oldExit := exit
	exit = func(code int) {
		if code != 0 {
			panic(fmt.Sprintf("exit-%d", code))
		}
	}
	defer func() { exit = oldExit }()
	defer func() {
		if r := recover(); r != nil {
			if s, ok := r.(string); ok && strings.HasPrefix(s, "exit-") {
				return
			}
			panic(r)
		}
	}()
	root.SetArgs(args)
	b := new(bytes.Buffer)
	root.SetOut(b)
	root.SetErr(b)
	root.SetIn(bytes.NewBufferString(""))
	err := root.Execute()
	return b.String(), err
}

// resetFlags resets all flags to their default values so commands can be
// executed repeatedly within one test binary.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			f.Value.Set(f.DefValue)
			f.Changed = false
		}
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
