// Package fixtures provides test doubles shared by unit and integration tests.
package fixtures

import (
	"fmt"
	"sync"
)

// FakeWindow records every host window call in order so tests can assert
// on wiring and sequencing. Run returns immediately.
type FakeWindow struct {
	mu sync.Mutex

	Calls       []string
	Navigations []string
	Evals       []string
	InitScripts []string
	Bindings    map[string]interface{}
	FocusCount  int
	Terminated  bool
	BindErr     error
}

// NewFakeWindow creates an empty fake host window.
func NewFakeWindow() *FakeWindow {
	return &FakeWindow{Bindings: make(map[string]interface{})}
}

func (w *FakeWindow) record(call string) {
	w.Calls = append(w.Calls, call)
}

func (w *FakeWindow) Run() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.record("run")
}

func (w *FakeWindow) Terminate() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.record("terminate")
	w.Terminated = true
}

// Dispatch runs f synchronously; the fake has no UI thread.
func (w *FakeWindow) Dispatch(f func()) {
	f()
}

func (w *FakeWindow) Navigate(url string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.record("navigate:" + url)
	w.Navigations = append(w.Navigations, url)
}

func (w *FakeWindow) Eval(js string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.record("eval")
	w.Evals = append(w.Evals, js)
}

func (w *FakeWindow) InitScript(js string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.record("init-script")
	w.InitScripts = append(w.InitScripts, js)
}

func (w *FakeWindow) Bind(name string, fn interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.BindErr != nil {
		return w.BindErr
	}
	w.record("bind:" + name)
	w.Bindings[name] = fn
	return nil
}

func (w *FakeWindow) Focus() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.record("focus")
	w.FocusCount++
}

func (w *FakeWindow) Handle() uintptr {
	return 0
}

// CallIndex returns the position of the first call matching prefix, or -1.
func (w *FakeWindow) CallIndex(prefix string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, call := range w.Calls {
		if len(call) >= len(prefix) && call[:len(prefix)] == prefix {
			return i
		}
	}
	return -1
}

// LastNavigation returns the most recent navigation target.
func (w *FakeWindow) LastNavigation() (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.Navigations) == 0 {
		return "", fmt.Errorf("no navigations recorded")
	}
	return w.Navigations[len(w.Navigations)-1], nil
}

// EvalCount returns how many scripts have been evaluated.
func (w *FakeWindow) EvalCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.Evals)
}

// LastEval returns the most recent evaluated script.
func (w *FakeWindow) LastEval() (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.Evals) == 0 {
		return "", fmt.Errorf("no evals recorded")
	}
	return w.Evals[len(w.Evals)-1], nil
}
